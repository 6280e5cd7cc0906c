package api

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"skillswap/internal/models"
	"skillswap/internal/realtime"
	"skillswap/pkg/repository"
)

type MessagesHandler struct {
	messageRepo      repository.MessageRepo
	userRepo         repository.UserRepo
	notificationRepo repository.NotificationRepo
	publisher        realtime.Publisher
}

func NewMessagesHandler(mr repository.MessageRepo, ur repository.UserRepo, nr repository.NotificationRepo, pub realtime.Publisher) *MessagesHandler {
	return &MessagesHandler{messageRepo: mr, userRepo: ur, notificationRepo: nr, publisher: pub}
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
}

// messageDigest fingerprints a message for integrity checks downstream.
func messageDigest(senderID, receiverID int64, content string, ts int64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%d:%s:%d", senderID, receiverID, content, ts))
	return hex.EncodeToString(sum[:])
}

func (h *MessagesHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	senderID := userIDFromContext(ctx)
	if req.ReceiverID == senderID {
		writeError(w, "Cannot message yourself", http.StatusBadRequest)
		return
	}

	receiver, err := h.userRepo.GetUserByID(ctx, req.ReceiverID)
	if err != nil {
		writeError(w, "Error fetching receiver", http.StatusInternalServerError)
		return
	}
	if receiver == nil {
		writeError(w, "Receiver not found", http.StatusNotFound)
		return
	}

	ts := time.Now().UTC().UnixMilli()
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Metadata:   messageDigest(senderID, req.ReceiverID, req.Content, ts),
	}
	id, err := h.messageRepo.CreateMessage(ctx, &msg)
	if err != nil {
		writeError(w, "Error sending message", http.StatusInternalServerError)
		return
	}
	msg.ID = id

	n := models.Notification{
		UserID:  req.ReceiverID,
		Type:    models.NotificationMessage,
		Message: "New message received",
		Link:    "/messages",
	}
	if _, err := h.notificationRepo.CreateNotification(ctx, &n); err != nil {
		logger.Error("message notification", slog.Any("err", err))
	}

	if h.publisher != nil {
		payload := map[string]any{"messageId": msg.ID, "senderId": senderID, "receiverId": req.ReceiverID}
		if err := h.publisher.Publish(ctx, "message.sent", payload); err != nil {
			logger.Error("publish event", slog.String("topic", "message.sent"), slog.Any("err", err))
		}
	}

	writeJSON(w, map[string]any{"success": true, "data": msg}, http.StatusCreated)
}

type conversationSummary struct {
	UserID      int64          `json:"userId"`
	LastMessage models.Message `json:"lastMessage"`
	Unread      int            `json:"unread"`
}

// Conversations folds the user's messages into one entry per counterparty
// with the latest message and an unread count.
func (h *MessagesHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFromContext(ctx)
	msgs, err := h.messageRepo.ListMessagesByUser(ctx, userID)
	if err != nil {
		writeError(w, "Error listing messages", http.StatusInternalServerError)
		return
	}

	byPeer := map[int64]*conversationSummary{}
	order := []int64{}
	for _, m := range msgs {
		peer := m.SenderID
		if peer == userID {
			peer = m.ReceiverID
		}
		cs, ok := byPeer[peer]
		if !ok {
			cs = &conversationSummary{UserID: peer}
			byPeer[peer] = cs
			order = append(order, peer)
		}
		// messages arrive oldest first; the last write wins
		cs.LastMessage = m
		if m.ReceiverID == userID && !m.ReadStatus {
			cs.Unread++
		}
	}

	out := make([]conversationSummary, 0, len(order))
	for _, peer := range order {
		out = append(out, *byPeer[peer])
	}
	writeJSON(w, map[string]any{"success": true, "conversations": out}, http.StatusOK)
}

// Conversation returns the full thread with one counterparty, oldest first.
func (h *MessagesHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	peerID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	msgs, err := h.messageRepo.ListConversation(r.Context(), userIDFromContext(r.Context()), peerID)
	if err != nil {
		writeError(w, "Error listing conversation", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, map[string]any{"success": true, "messages": msgs}, http.StatusOK)
}

// MarkRead marks a message read; only the receiver may do that.
func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	msg, err := h.messageRepo.GetMessageByID(ctx, id)
	if err != nil {
		writeError(w, "Error fetching message", http.StatusInternalServerError)
		return
	}
	if msg == nil {
		writeError(w, "Message not found", http.StatusNotFound)
		return
	}
	if msg.ReceiverID != userIDFromContext(ctx) {
		writeError(w, "Not authorized to mark this message", http.StatusForbidden)
		return
	}
	if err := h.messageRepo.MarkMessageRead(ctx, id); err != nil {
		writeError(w, "Error marking message read", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "marked read"}, http.StatusOK)
}
