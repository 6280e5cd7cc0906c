package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	profileRepo   repository.FreelancerRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, pr repository.FreelancerRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, profileRepo: pr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authUser struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    authUser `json:"user"`
}

func (h *AuthHandler) issueToken(userID int64, role models.Role, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"email":   email,
		"exp":     time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleClient
	}
	if !role.Valid() || role == models.RoleAdmin {
		writeError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: string(hash),
	}
	userID, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	// Freelancers get an empty profile row so the profile endpoints work
	// immediately after signup.
	if role == models.RoleFreelancer {
		profile := models.FreelancerProfile{UserID: userID, Skills: []string{}, VerificationLevel: "Basic"}
		if _, err := h.profileRepo.CreateProfile(ctx, &profile); err != nil {
			writeError(w, "Error creating freelancer profile", http.StatusInternalServerError)
			return
		}
	}

	tokenStr, err := h.issueToken(userID, role, req.Email)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{
		Success: true,
		Token:   tokenStr,
		User:    authUser{ID: userID, Name: req.Name, Email: req.Email, Role: role},
	}, http.StatusCreated)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("signin lookup", slog.Any("err", err))
		writeError(w, "Error signing in", http.StatusInternalServerError)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.issueToken(user.ID, user.Role, user.Email)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{
		Success: true,
		Token:   tokenStr,
		User:    authUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}, http.StatusOK)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	writeJSON(w, map[string]any{"success": true, "message": "signed out"}, http.StatusOK)
}
