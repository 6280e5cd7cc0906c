package api

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gorilla/mux"

	"skillswap/internal/models"
	"skillswap/pkg/metrics"
	"skillswap/pkg/repository"
)

type ProjectsHandler struct {
	projectRepo      repository.ProjectRepo
	bidRepo          repository.BidRepo
	profileRepo      repository.FreelancerRepo
	notificationRepo repository.NotificationRepo
}

func NewProjectsHandler(pr repository.ProjectRepo, br repository.BidRepo, fr repository.FreelancerRepo, nr repository.NotificationRepo) *ProjectsHandler {
	return &ProjectsHandler{projectRepo: pr, bidRepo: br, profileRepo: fr, notificationRepo: nr}
}

func pathID(r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type createProjectRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	Deadline     int64  `json:"deadline" validate:"required,gt=0"`
	IsHourly     bool   `json:"isHourly"`
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := models.Project{
		ClientID:     userIDFromContext(r.Context()),
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deadline:     req.Deadline,
		IsHourly:     req.IsHourly,
		Status:       models.ProjectOpen,
	}
	id, err := h.projectRepo.CreateProject(r.Context(), &p)
	if err != nil {
		logger.Error("create project", slog.Any("err", err))
		writeError(w, "Error creating project", http.StatusInternalServerError)
		return
	}
	p.ID = id

	writeJSON(w, map[string]any{"success": true, "project": p}, http.StatusCreated)
}

func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeError(w, "Error listing projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, map[string]any{"success": true, "projects": projects}, http.StatusOK)
}

func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	p, err := h.projectRepo.GetProjectByID(r.Context(), id)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"success": true, "project": p}, http.StatusOK)
}

type updateProjectRequest struct {
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	Requirements *string             `json:"requirements,omitempty"`
	Deadline     *int64              `json:"deadline,omitempty"`
	IsHourly     *bool               `json:"isHourly,omitempty"`
	HourLogs     *[]models.HourLog   `json:"hourLogs,omitempty"`
	Milestones   *[]models.Milestone `json:"milestones,omitempty"`
}

// UpdateProject is a partial update: absent fields keep their prior value.
func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	var req updateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if p.ClientID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to update this project", http.StatusForbidden)
		return
	}

	if req.Title != nil && *req.Title != "" {
		p.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		p.Description = *req.Description
	}
	if req.Requirements != nil {
		p.Requirements = *req.Requirements
	}
	if req.Deadline != nil && *req.Deadline > 0 {
		p.Deadline = *req.Deadline
	}
	if req.IsHourly != nil {
		p.IsHourly = *req.IsHourly
	}
	if req.HourLogs != nil {
		p.HourLogs = *req.HourLogs
	}
	if req.Milestones != nil {
		p.Milestones = *req.Milestones
	}

	if err := h.projectRepo.UpdateProject(ctx, p); err != nil {
		writeError(w, "Error updating project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "project": p}, http.StatusOK)
}

func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if p.ClientID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to delete this project", http.StatusForbidden)
		return
	}
	if err := h.projectRepo.DeleteProject(ctx, id); err != nil {
		writeError(w, "Error deleting project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "project deleted"}, http.StatusOK)
}

type projectWithBids struct {
	models.Project
	Bids []models.Bid `json:"bids"`
}

// MyProjects lists the authenticated client's projects with their bids.
func (h *ProjectsHandler) MyProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projects, err := h.projectRepo.ListProjectsByClient(ctx, userIDFromContext(ctx))
	if err != nil {
		writeError(w, "Error listing projects", http.StatusInternalServerError)
		return
	}

	out := make([]projectWithBids, 0, len(projects))
	for _, p := range projects {
		bids, err := h.bidRepo.ListBidsByProject(ctx, p.ID)
		if err != nil {
			writeError(w, "Error listing bids", http.StatusInternalServerError)
			return
		}
		if bids == nil {
			bids = []models.Bid{}
		}
		out = append(out, projectWithBids{Project: p, Bids: bids})
	}
	writeJSON(w, map[string]any{"success": true, "projects": out}, http.StatusOK)
}

// FreelancerProjects lists projects assigned to the authenticated freelancer.
func (h *ProjectsHandler) FreelancerProjects(w http.ResponseWriter, r *http.Request) {
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
	projects, err := h.projectRepo.ListProjectsByFreelancer(ctx, profile.ID)
	if err != nil {
		writeError(w, "Error listing projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, map[string]any{"success": true, "projects": projects}, http.StatusOK)
}

type acceptBidRequest struct {
	BidID        int64 `json:"bidId"`
	FreelancerID int64 `json:"freelancerId"`
}

// AcceptBid moves an open project to in-progress, assigns the bidding
// freelancer and rejects sibling bids, all in one repository transaction.
// The project comes from the path, the winning bid and freelancer from the
// request body.
func (h *ProjectsHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	var req acceptBidRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BidID <= 0 || req.FreelancerID <= 0 {
		writeError(w, "Missing bidId or freelancerId", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	project, err := h.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if project.ClientID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to accept bids on this project", http.StatusForbidden)
		return
	}

	updated, accepted, err := h.bidRepo.AcceptBid(ctx, projectID, req.BidID, req.FreelancerID)
	switch {
	case errors.Is(err, repository.ErrConflict):
		writeError(w, "Project is no longer open", http.StatusConflict)
		return
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, "Bid not found", http.StatusNotFound)
		return
	case err != nil:
		logger.Error("accept bid", slog.Any("err", err))
		writeError(w, "Error accepting bid", http.StatusInternalServerError)
		return
	}
	metrics.IncrementContractsFormed()

	if profile, err := h.profileRepo.GetProfileByID(ctx, accepted.FreelancerID); err == nil && profile != nil {
		n := models.Notification{
			UserID:  profile.UserID,
			Type:    models.NotificationBid,
			Message: "Your bid on \"" + updated.Title + "\" was accepted.",
			Link:    "/projects/" + strconv.FormatInt(updated.ID, 10),
		}
		if _, err := h.notificationRepo.CreateNotification(ctx, &n); err != nil {
			logger.Error("accept notification", slog.Any("err", err))
		}
	}

	writeJSON(w, map[string]any{"success": true, "project": updated, "bid": accepted}, http.StatusOK)
}

// MarkComplete transitions an in-progress project to completed.
func (h *ProjectsHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if p.ClientID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to complete this project", http.StatusForbidden)
		return
	}
	if !p.Status.CanTransition(models.ProjectCompleted) {
		writeError(w, "Only in-progress projects can be completed", http.StatusConflict)
		return
	}

	p.Status = models.ProjectCompleted
	p.Progress = 100
	if err := h.projectRepo.UpdateProject(ctx, p); err != nil {
		writeError(w, "Error updating project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "project": p}, http.StatusOK)
}

type updateProgressRequest struct {
	Progress int `json:"progress"`
}

// UpdateProgress lets the assigned freelancer report progress in 0..100.
func (h *ProjectsHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	var req updateProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		writeError(w, "Progress must be between 0 and 100", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	p, err := h.projectRepo.GetProjectByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userIDFromContext(ctx))
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil || p.FreelancerID == nil || *p.FreelancerID != profile.ID {
		writeError(w, "Not authorized to update progress on this project", http.StatusForbidden)
		return
	}
	if p.Status != models.ProjectInProgress {
		writeError(w, "Project is not in progress", http.StatusConflict)
		return
	}

	p.Progress = req.Progress
	if err := h.projectRepo.UpdateProject(ctx, p); err != nil {
		writeError(w, "Error updating project", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "project": p}, http.StatusOK)
}
