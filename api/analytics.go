package api

import (
	"net/http"
	"time"

	"skillswap/internal/analytics"
	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type AnalyticsHandler struct {
	projectRepo repository.ProjectRepo
	reviewRepo  repository.ReviewRepo
	profileRepo repository.FreelancerRepo
	userRepo    repository.UserRepo
}

func NewAnalyticsHandler(pr repository.ProjectRepo, rr repository.ReviewRepo, fr repository.FreelancerRepo, ur repository.UserRepo) *AnalyticsHandler {
	return &AnalyticsHandler{projectRepo: pr, reviewRepo: rr, profileRepo: fr, userRepo: ur}
}

// parseDateParam accepts a YYYY-MM-DD query value and returns the UTC day
// boundary in unix millis. Zero means the filter is absent.
func parseDateParam(raw string, endOfDay bool) (int64, bool) {
	if raw == "" {
		return 0, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t.UTC().UnixMilli(), true
}

// ClientDashboard aggregates the client's projects, optionally restricted
// to a from/to creation date range.
func (h *AnalyticsHandler) ClientDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := parseDateParam(q.Get("from"), false)
	if !ok {
		writeError(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, ok := parseDateParam(q.Get("to"), true)
	if !ok {
		writeError(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	projects, err := h.projectRepo.ListProjectsByClient(ctx, userIDFromContext(ctx))
	if err != nil {
		writeError(w, "Error listing projects", http.StatusInternalServerError)
		return
	}

	filtered := projects[:0:0]
	for _, p := range projects {
		if from > 0 && p.Created < from {
			continue
		}
		if to > 0 && p.Created >= to {
			continue
		}
		filtered = append(filtered, p)
	}

	reviews := analytics.ReviewsByFreelancer{}
	names := map[int64]string{}
	for _, p := range filtered {
		if p.Status != models.ProjectCompleted || p.FreelancerID == nil {
			continue
		}
		fid := *p.FreelancerID
		if _, done := reviews[fid]; done {
			continue
		}
		rs, err := h.reviewRepo.ListReviewsByFreelancer(ctx, fid)
		if err != nil {
			writeError(w, "Error listing reviews", http.StatusInternalServerError)
			return
		}
		reviews[fid] = rs

		if profile, err := h.profileRepo.GetProfileByID(ctx, fid); err == nil && profile != nil {
			if user, err := h.userRepo.GetUserByID(ctx, profile.UserID); err == nil && user != nil {
				names[fid] = user.Name
			}
		}
	}

	dashboard := analytics.SummarizeClientProjects(filtered, reviews, names)
	writeJSON(w, map[string]any{"success": true, "dashboard": dashboard}, http.StatusOK)
}
