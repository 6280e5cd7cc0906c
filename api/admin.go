package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"skillswap/internal/analytics"
	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type AdminHandler struct {
	userRepo    repository.UserRepo
	profileRepo repository.FreelancerRepo
	projectRepo repository.ProjectRepo
	bidRepo     repository.BidRepo
}

func NewAdminHandler(ur repository.UserRepo, fr repository.FreelancerRepo, pr repository.ProjectRepo, br repository.BidRepo) *AdminHandler {
	return &AdminHandler{userRepo: ur, profileRepo: fr, projectRepo: pr, bidRepo: br}
}

func (h *AdminHandler) PendingFreelancers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.ListProfiles(r.Context(), true)
	if err != nil {
		writeError(w, "Error listing profiles", http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.FreelancerProfile{}
	}
	writeJSON(w, map[string]any{"success": true, "freelancers": profiles}, http.StatusOK)
}

type verifyFreelancerRequest struct {
	Level string `json:"level"`
}

func (h *AdminHandler) VerifyFreelancer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid profile id", http.StatusBadRequest)
		return
	}

	// level is optional; an empty body keeps the default
	var req verifyFreelancerRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	level := req.Level
	if level == "" {
		level = "Verified"
	}

	if err := h.profileRepo.SetVerification(r.Context(), id, true, level); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "Freelancer profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "Error verifying freelancer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "freelancer verified"}, http.StatusOK)
}

func (h *AdminHandler) RejectFreelancer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid profile id", http.StatusBadRequest)
		return
	}
	if err := h.profileRepo.DeleteProfile(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "Freelancer profile not found", http.StatusNotFound)
			return
		}
		writeError(w, "Error rejecting freelancer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "freelancer rejected"}, http.StatusOK)
}

// PlatformAnalytics is the admin rollup: user counts by role, project and
// bid totals, signup trend and popular skills.
func (h *AdminHandler) PlatformAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.userRepo.CountUsersByRole(ctx, models.RoleClient)
	if err != nil {
		writeError(w, "Error counting users", http.StatusInternalServerError)
		return
	}
	freelancers, err := h.userRepo.CountUsersByRole(ctx, models.RoleFreelancer)
	if err != nil {
		writeError(w, "Error counting users", http.StatusInternalServerError)
		return
	}
	projects, err := h.projectRepo.CountProjects(ctx)
	if err != nil {
		writeError(w, "Error counting projects", http.StatusInternalServerError)
		return
	}
	bids, err := h.bidRepo.CountBids(ctx)
	if err != nil {
		writeError(w, "Error counting bids", http.StatusInternalServerError)
		return
	}
	users, err := h.userRepo.ListUsers(ctx)
	if err != nil {
		writeError(w, "Error listing users", http.StatusInternalServerError)
		return
	}
	profiles, err := h.profileRepo.ListProfiles(ctx, false)
	if err != nil {
		writeError(w, "Error listing profiles", http.StatusInternalServerError)
		return
	}

	summary := analytics.SummarizePlatform(clients, freelancers, projects, bids, users, profiles)
	writeJSON(w, map[string]any{"success": true, "analytics": summary}, http.StatusOK)
}
