package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skillswap/internal/config"
	"skillswap/internal/db"
	"skillswap/internal/models"
	"skillswap/internal/realtime"
	"skillswap/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB, pub realtime.Publisher) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	// Repository
	repo := sqlite.New(conn, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	projectsHandler := NewProjectsHandler(repo, repo, repo, repo)
	bidsHandler := NewBidsHandler(repo, repo, repo, repo, pub)
	freelancersHandler := NewFreelancersHandler(repo, repo)
	reviewsHandler := NewReviewsHandler(repo, repo, repo)
	messagesHandler := NewMessagesHandler(repo, repo, repo, pub)
	notificationsHandler := NewNotificationsHandler(repo)
	adminHandler := NewAdminHandler(repo, repo, repo, repo)
	analyticsHandler := NewAnalyticsHandler(repo, repo, repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/api/projects", projectsHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects/{id:[0-9]+}", projectsHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/projects/{projectId:[0-9]+}/bids", bidsHandler.ListProjectBids).Methods("GET")
	r.HandleFunc("/api/freelancers", freelancersHandler.ListFreelancers).Methods("GET")
	r.HandleFunc("/api/freelancers/{userId:[0-9]+}", freelancersHandler.GetByUserID).Methods("GET")
	r.HandleFunc("/api/reviews/freelancer/{freelancerId:[0-9]+}", reviewsHandler.ListByFreelancer).Methods("GET")

	// Protected routes
	auth := r.PathPrefix("/api").Subrouter()
	auth.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	client := RequireRole(models.RoleClient)
	freelancer := RequireRole(models.RoleFreelancer)
	admin := RequireRole(models.RoleAdmin)

	auth.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Projects
	auth.Handle("/projects", client(http.HandlerFunc(projectsHandler.CreateProject))).Methods("POST")
	auth.Handle("/projects/my-projects", client(http.HandlerFunc(projectsHandler.MyProjects))).Methods("GET")
	auth.Handle("/projects/freelancer/my-projects", freelancer(http.HandlerFunc(projectsHandler.FreelancerProjects))).Methods("GET")
	auth.Handle("/projects/accept-bid/{id:[0-9]+}", client(http.HandlerFunc(projectsHandler.AcceptBid))).Methods("PUT")
	auth.Handle("/projects/{id:[0-9]+}", client(http.HandlerFunc(projectsHandler.UpdateProject))).Methods("PUT")
	auth.Handle("/projects/{id:[0-9]+}", client(http.HandlerFunc(projectsHandler.DeleteProject))).Methods("DELETE")
	auth.Handle("/projects/{id:[0-9]+}/mark-complete", client(http.HandlerFunc(projectsHandler.MarkComplete))).Methods("PUT")
	auth.Handle("/projects/{id:[0-9]+}/progress", freelancer(http.HandlerFunc(projectsHandler.UpdateProgress))).Methods("PUT")

	// Bids
	auth.Handle("/projects/{projectId:[0-9]+}/bids", freelancer(http.HandlerFunc(bidsHandler.PlaceBid))).Methods("POST")
	auth.Handle("/projects/bid/{bidId:[0-9]+}", freelancer(http.HandlerFunc(bidsHandler.UpdateBid))).Methods("PUT")
	auth.Handle("/projects/bid/{bidId:[0-9]+}/counter", client(http.HandlerFunc(bidsHandler.CounterBid))).Methods("PUT")
	auth.Handle("/projects/freelancer/my-bids", freelancer(http.HandlerFunc(bidsHandler.MyBids))).Methods("GET")
	auth.Handle("/projects/analytics/summary", admin(http.HandlerFunc(bidsHandler.BidAnalytics))).Methods("GET")
	auth.Handle("/projects/freelancer/analytics", freelancer(http.HandlerFunc(bidsHandler.FreelancerAnalytics))).Methods("GET")

	// Freelancer profiles
	auth.Handle("/freelancers/me", freelancer(http.HandlerFunc(freelancersHandler.Me))).Methods("GET")
	auth.Handle("/freelancers/profile", freelancer(http.HandlerFunc(freelancersHandler.UpsertProfile))).Methods("PUT")
	auth.Handle("/freelancers/profile/completeness", freelancer(http.HandlerFunc(freelancersHandler.Completeness))).Methods("GET")
	auth.Handle("/freelancers/profile", freelancer(http.HandlerFunc(freelancersHandler.DeleteProfile))).Methods("DELETE")

	// Reviews
	auth.Handle("/reviews", client(http.HandlerFunc(reviewsHandler.CreateReview))).Methods("POST")

	// Messages
	auth.HandleFunc("/messages", messagesHandler.SendMessage).Methods("POST")
	auth.HandleFunc("/messages/conversations", messagesHandler.Conversations).Methods("GET")
	auth.HandleFunc("/messages/{userId:[0-9]+}", messagesHandler.Conversation).Methods("GET")
	auth.HandleFunc("/messages/{id:[0-9]+}/read", messagesHandler.MarkRead).Methods("PUT")

	// Notifications
	auth.HandleFunc("/notifications", notificationsHandler.CreateNotification).Methods("POST")
	auth.HandleFunc("/notifications", notificationsHandler.ListMine).Methods("GET")
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", notificationsHandler.MarkRead).Methods("PUT")

	// Admin
	auth.Handle("/admin/pending-freelancers", admin(http.HandlerFunc(adminHandler.PendingFreelancers))).Methods("GET")
	auth.Handle("/admin/verify-freelancer/{id:[0-9]+}", admin(http.HandlerFunc(adminHandler.VerifyFreelancer))).Methods("PUT")
	auth.Handle("/admin/reject-freelancer/{id:[0-9]+}", admin(http.HandlerFunc(adminHandler.RejectFreelancer))).Methods("DELETE")
	auth.Handle("/admin/analytics", admin(http.HandlerFunc(adminHandler.PlatformAnalytics))).Methods("GET")

	// Client analytics
	auth.Handle("/analytics/client-dashboard", client(http.HandlerFunc(analyticsHandler.ClientDashboard))).Methods("GET")

	return r
}
