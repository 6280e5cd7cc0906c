package api

import (
	"net/http"
	"strconv"

	"log/slog"

	"skillswap/internal/analytics"
	"skillswap/internal/models"
	"skillswap/internal/realtime"
	"skillswap/pkg/metrics"
	"skillswap/pkg/repository"
)

type BidsHandler struct {
	bidRepo          repository.BidRepo
	projectRepo      repository.ProjectRepo
	profileRepo      repository.FreelancerRepo
	notificationRepo repository.NotificationRepo
	publisher        realtime.Publisher
}

func NewBidsHandler(br repository.BidRepo, pr repository.ProjectRepo, fr repository.FreelancerRepo, nr repository.NotificationRepo, pub realtime.Publisher) *BidsHandler {
	return &BidsHandler{bidRepo: br, projectRepo: pr, profileRepo: fr, notificationRepo: nr, publisher: pub}
}

// publish is best-effort: broadcast failures are logged, never surfaced.
func (h *BidsHandler) publish(r *http.Request, topic string, payload any) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(r.Context(), topic, payload); err != nil {
		logger.Error("publish event", slog.String("topic", topic), slog.Any("err", err))
	}
}

type placeBidRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Message string  `json:"message"`
}

func (h *BidsHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	var req placeBidRequest
	if !decodeJSON(w, r, &req) {
		metrics.IncrementBidsPlaced("rejected")
		return
	}

	ctx := r.Context()
	project, err := h.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		metrics.IncrementBidsPlaced("failed")
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		metrics.IncrementBidsPlaced("rejected")
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	if project.Status != models.ProjectOpen {
		metrics.IncrementBidsPlaced("rejected")
		writeError(w, "Project is not open for bids", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userIDFromContext(ctx))
	if err != nil {
		metrics.IncrementBidsPlaced("failed")
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		metrics.IncrementBidsPlaced("rejected")
		writeError(w, "Freelancer profile not found", http.StatusNotFound)
		return
	}

	bid := models.Bid{
		ProjectID:    projectID,
		FreelancerID: profile.ID,
		Amount:       req.Amount,
		Message:      req.Message,
		Status:       models.BidPending,
	}
	id, err := h.bidRepo.CreateBid(ctx, &bid)
	if err != nil {
		metrics.IncrementBidsPlaced("failed")
		writeError(w, "Error placing bid", http.StatusInternalServerError)
		return
	}
	bid.ID = id
	metrics.IncrementBidsPlaced("success")

	n := models.Notification{
		UserID:  project.ClientID,
		Type:    models.NotificationBid,
		Message: "New bid on \"" + project.Title + "\"",
		Link:    "/projects/" + strconv.FormatInt(projectID, 10),
	}
	if _, err := h.notificationRepo.CreateNotification(ctx, &n); err != nil {
		logger.Error("bid notification", slog.Any("err", err))
	}

	h.publish(r, "bid.placed", map[string]any{
		"projectId": projectID,
		"bidId":     bid.ID,
		"amount":    bid.Amount,
	})

	writeJSON(w, map[string]any{"success": true, "bid": bid}, http.StatusCreated)
}

type updateBidRequest struct {
	Amount  *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Message *string  `json:"message,omitempty"`
}

// UpdateBid is a partial update by the owning freelancer. Absent fields
// keep their prior values.
func (h *BidsHandler) UpdateBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := pathID(r, "bidId")
	if !ok {
		writeError(w, "Invalid bid id", http.StatusBadRequest)
		return
	}
	var req updateBidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	bid, err := h.bidRepo.GetBidByID(ctx, bidID)
	if err != nil {
		writeError(w, "Error fetching bid", http.StatusInternalServerError)
		return
	}
	if bid == nil {
		writeError(w, "Bid not found", http.StatusNotFound)
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userIDFromContext(ctx))
	if err != nil {
		writeError(w, "Error fetching profile", http.StatusInternalServerError)
		return
	}
	if profile == nil || bid.FreelancerID != profile.ID {
		writeError(w, "Not authorized to update this bid", http.StatusForbidden)
		return
	}

	if req.Amount != nil {
		bid.Amount = *req.Amount
	}
	if req.Message != nil {
		bid.Message = *req.Message
	}
	if err := h.bidRepo.UpdateBid(ctx, bid); err != nil {
		writeError(w, "Error updating bid", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "bid": bid}, http.StatusOK)
}

type counterBidRequest struct {
	CounterAmount float64 `json:"counterAmount" validate:"required,gt=0"`
}

// CounterBid records a client counter-offer on a bid. The counter is
// informational: bid status stays pending until the freelancer updates the
// bid or the client accepts it.
func (h *BidsHandler) CounterBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := pathID(r, "bidId")
	if !ok {
		writeError(w, "Invalid bid id", http.StatusBadRequest)
		return
	}
	var req counterBidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	bid, err := h.bidRepo.GetBidByID(ctx, bidID)
	if err != nil {
		writeError(w, "Error fetching bid", http.StatusInternalServerError)
		return
	}
	if bid == nil {
		writeError(w, "Bid not found", http.StatusNotFound)
		return
	}

	project, err := h.projectRepo.GetProjectByID(ctx, bid.ProjectID)
	if err != nil {
		writeError(w, "Error fetching project", http.StatusInternalServerError)
		return
	}
	if project == nil || project.ClientID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to counter this bid", http.StatusForbidden)
		return
	}

	bid.CounterAmount = &req.CounterAmount
	bid.Countered = true
	if err := h.bidRepo.UpdateBid(ctx, bid); err != nil {
		writeError(w, "Error updating bid", http.StatusInternalServerError)
		return
	}

	if profile, err := h.profileRepo.GetProfileByID(ctx, bid.FreelancerID); err == nil && profile != nil {
		n := models.Notification{
			UserID:  profile.UserID,
			Type:    models.NotificationBid,
			Message: "Counter-offer on your bid for \"" + project.Title + "\"",
			Link:    "/projects/" + strconv.FormatInt(project.ID, 10),
		}
		if _, err := h.notificationRepo.CreateNotification(ctx, &n); err != nil {
			logger.Error("counter notification", slog.Any("err", err))
		}
	}

	h.publish(r, "bid.countered", map[string]any{
		"projectId":     bid.ProjectID,
		"bidId":         bid.ID,
		"counterAmount": req.CounterAmount,
	})

	writeJSON(w, map[string]any{"success": true, "bid": bid}, http.StatusOK)
}

func (h *BidsHandler) ListProjectBids(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}
	bids, err := h.bidRepo.ListBidsByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, "Error listing bids", http.StatusInternalServerError)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	writeJSON(w, map[string]any{"success": true, "bids": bids}, http.StatusOK)
}

func (h *BidsHandler) MyBids(w http.ResponseWriter, r *http.Request) {
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
	bids, err := h.bidRepo.ListBidsByFreelancer(ctx, profile.ID)
	if err != nil {
		writeError(w, "Error listing bids", http.StatusInternalServerError)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	writeJSON(w, map[string]any{"success": true, "bids": bids}, http.StatusOK)
}

// BidAnalytics summarizes every bid on the platform.
func (h *BidsHandler) BidAnalytics(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bidRepo.ListBids(r.Context())
	if err != nil {
		writeError(w, "Error listing bids", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "analytics": analytics.SummarizeBids(bids)}, http.StatusOK)
}

// FreelancerAnalytics summarizes the authenticated freelancer's own bids.
func (h *BidsHandler) FreelancerAnalytics(w http.ResponseWriter, r *http.Request) {
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
	bids, err := h.bidRepo.ListBidsByFreelancer(ctx, profile.ID)
	if err != nil {
		writeError(w, "Error listing bids", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "analytics": analytics.SummarizeBids(bids)}, http.StatusOK)
}
