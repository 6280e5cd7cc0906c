package api

import (
	"errors"
	"net/http"

	"skillswap/internal/models"
	"skillswap/pkg/repository"
)

type NotificationsHandler struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationsHandler(nr repository.NotificationRepo) *NotificationsHandler {
	return &NotificationsHandler{notificationRepo: nr}
}

type createNotificationRequest struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	Type    string `json:"type"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link"`
}

func (h *NotificationsHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	typ := models.NotificationType(req.Type)
	if req.Type == "" {
		typ = models.NotificationSystem
	}
	if !typ.Valid() {
		writeError(w, "Invalid notification type", http.StatusBadRequest)
		return
	}

	n := models.Notification{
		UserID:  req.UserID,
		Type:    typ,
		Message: req.Message,
		Link:    req.Link,
	}
	id, err := h.notificationRepo.CreateNotification(r.Context(), &n)
	if err != nil {
		writeError(w, "Error creating notification", http.StatusInternalServerError)
		return
	}
	n.ID = id
	writeJSON(w, map[string]any{"success": true, "notification": n}, http.StatusCreated)
}

// ListMine returns the authenticated user's notifications, newest first.
func (h *NotificationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notificationRepo.ListNotificationsByUser(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, "Error listing notifications", http.StatusInternalServerError)
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	writeJSON(w, map[string]any{"success": true, "notifications": notes}, http.StatusOK)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid notification id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	n, err := h.notificationRepo.GetNotificationByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching notification", http.StatusInternalServerError)
		return
	}
	if n == nil {
		writeError(w, "Notification not found", http.StatusNotFound)
		return
	}
	if n.UserID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to mark this notification", http.StatusForbidden)
		return
	}
	if err := h.notificationRepo.MarkNotificationRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "Notification not found", http.StatusNotFound)
			return
		}
		writeError(w, "Error marking notification read", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "marked read"}, http.StatusOK)
}
