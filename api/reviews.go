package api

import (
	"net/http"

	"log/slog"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type ReviewsHandler struct {
	reviewRepo  repository.ReviewRepo
	projectRepo repository.ProjectRepo
	profileRepo repository.FreelancerRepo
}

func NewReviewsHandler(rr repository.ReviewRepo, pr repository.ProjectRepo, fr repository.FreelancerRepo) *ReviewsHandler {
	return &ReviewsHandler{reviewRepo: rr, projectRepo: pr, profileRepo: fr}
}

type createReviewRequest struct {
	ProjectID int64  `json:"projectId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// CreateReview records a client review of a completed project. One review
// per project per client; the freelancer's running average is recomputed.
func (h *ReviewsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	clientID := userIDFromContext(ctx)

	project, err := h.projectRepo.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if project.ClientID != clientID {
		writeError(w, "Not authorized to review this project", http.StatusForbidden)
		return
	}
	if project.Status != models.ProjectCompleted {
		writeError(w, "Only completed projects can be reviewed", http.StatusConflict)
		return
	}
	if project.FreelancerID == nil {
		writeError(w, "Project has no assigned freelancer", http.StatusConflict)
		return
	}

	if existing, err := h.reviewRepo.GetReviewByProjectAndClient(ctx, req.ProjectID, clientID); err != nil {
		writeError(w, "Error checking reviews", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Project already reviewed", http.StatusConflict)
		return
	}

	review := models.Review{
		ProjectID:    req.ProjectID,
		ClientID:     clientID,
		FreelancerID: *project.FreelancerID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	id, err := h.reviewRepo.CreateReview(ctx, &review)
	if err != nil {
		writeError(w, "Error creating review", http.StatusInternalServerError)
		return
	}
	review.ID = id

	if err := h.recomputeRating(r, *project.FreelancerID); err != nil {
		logger.Error("recompute rating", slog.Any("err", err))
	}

	writeJSON(w, map[string]any{"success": true, "review": review}, http.StatusCreated)
}

func (h *ReviewsHandler) recomputeRating(r *http.Request, freelancerID int64) error {
	ctx := r.Context()
	reviews, err := h.reviewRepo.ListReviewsByFreelancer(ctx, freelancerID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return h.profileRepo.UpdateRating(ctx, freelancerID, 0, 0)
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return h.profileRepo.UpdateRating(ctx, freelancerID, avg, int64(len(reviews)))
}

// ListByFreelancer returns a freelancer's reviews plus the average rating.
func (h *ReviewsHandler) ListByFreelancer(w http.ResponseWriter, r *http.Request) {
	freelancerID, ok := pathID(r, "freelancerId")
	if !ok {
		writeError(w, "Invalid freelancer id", http.StatusBadRequest)
		return
	}
	reviews, err := h.reviewRepo.ListReviewsByFreelancer(r.Context(), freelancerID)
	if err != nil {
		writeError(w, "Error listing reviews", http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	var avg float64
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}

	writeJSON(w, map[string]any{
		"success":       true,
		"reviews":       reviews,
		"averageRating": avg,
	}, http.StatusOK)
}
