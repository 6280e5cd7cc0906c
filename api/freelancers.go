package api

import (
	"net/http"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type FreelancersHandler struct {
	profileRepo repository.FreelancerRepo
	userRepo    repository.UserRepo
}

func NewFreelancersHandler(fr repository.FreelancerRepo, ur repository.UserRepo) *FreelancersHandler {
	return &FreelancersHandler{profileRepo: fr, userRepo: ur}
}

func (h *FreelancersHandler) ListFreelancers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.ListProfiles(r.Context(), false)
	if err != nil {
		writeError(w, "Error listing freelancers", http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.FreelancerProfile{}
	}
	writeJSON(w, map[string]any{"success": true, "freelancers": profiles}, http.StatusOK)
}

func (h *FreelancersHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	profile, err := h.profileRepo.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Freelancer profile not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"success": true, "profile": profile}, http.StatusOK)
}

func (h *FreelancersHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileRepo.GetProfileByUserID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Freelancer profile not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"success": true, "profile": profile}, http.StatusOK)
}

type upsertProfileRequest struct {
	Skills     []string `json:"skills"`
	Expertise  string   `json:"expertise"`
	Experience string   `json:"experience"`
	Portfolio  string   `json:"portfolio"`
}

// UpsertProfile creates the profile on first call and updates it afterwards.
// Verification state is never writable here.
func (h *FreelancersHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req upsertProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	userID := userIDFromContext(ctx)
	profile, err := h.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}

	if req.Skills == nil {
		req.Skills = []string{}
	}

	if profile == nil {
		profile = &models.FreelancerProfile{
			UserID:            userID,
			Skills:            req.Skills,
			Expertise:         req.Expertise,
			Experience:        req.Experience,
			Portfolio:         req.Portfolio,
			VerificationLevel: "Basic",
		}
		id, err := h.profileRepo.CreateProfile(ctx, profile)
		if err != nil {
			writeError(w, "Error creating profile", http.StatusInternalServerError)
			return
		}
		profile.ID = id
		writeJSON(w, map[string]any{"success": true, "profile": profile}, http.StatusCreated)
		return
	}

	profile.Skills = req.Skills
	profile.Expertise = req.Expertise
	profile.Experience = req.Experience
	profile.Portfolio = req.Portfolio
	if err := h.profileRepo.UpdateProfile(ctx, profile); err != nil {
		writeError(w, "Error updating profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "profile": profile}, http.StatusOK)
}

// Completeness reports what share of the four profile fields are filled in.
func (h *FreelancersHandler) Completeness(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileRepo.GetProfileByUserID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Freelancer profile not found", http.StatusNotFound)
		return
	}

	filled := 0
	missing := []string{}
	if len(profile.Skills) > 0 {
		filled++
	} else {
		missing = append(missing, "skills")
	}
	if profile.Expertise != "" {
		filled++
	} else {
		missing = append(missing, "expertise")
	}
	if profile.Experience != "" {
		filled++
	} else {
		missing = append(missing, "experience")
	}
	if profile.Portfolio != "" {
		filled++
	} else {
		missing = append(missing, "portfolio")
	}

	writeJSON(w, map[string]any{
		"success":      true,
		"completeness": filled * 100 / 4,
		"missing":      missing,
	}, http.StatusOK)
}

func (h *FreelancersHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := h.profileRepo.GetProfileByUserID(ctx, userIDFromContext(ctx))
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Freelancer profile not found", http.StatusNotFound)
		return
	}
	if err := h.profileRepo.DeleteProfile(ctx, profile.ID); err != nil {
		writeError(w, "Error deleting profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "profile deleted"}, http.StatusOK)
}
