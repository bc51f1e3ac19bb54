package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/models"
	"adminpanel/push"
)

type NotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (h *Handlers) ListNotifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	records, err := h.Notifications.ListAll(ctx)
	if err != nil {
		log.Printf("ListNotifications error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Broadcast persists the notification record before any delivery attempt so
// the intent is never lost, then tries the dispatcher once. A failed
// dispatch leaves the record unsent and reports degraded success.
func (h *Handlers) Broadcast(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and message are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	record := &models.NotificationRecord{
		Title:     req.Title,
		Message:   req.Message,
		Topic:     models.BroadcastTopic,
		CreatedAt: primitive.NewDateTimeFromTime(h.now()),
		SentBy:    c.GetString("userId"),
		Sent:      false,
	}

	created, err := h.Notifications.CreateOne(ctx, record)
	if err != nil {
		log.Printf("Broadcast persist error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification"})
		return
	}

	if h.Dispatcher == nil {
		c.JSON(http.StatusOK, gin.H{
			"id":        created.ID.Hex(),
			"delivered": false,
			"message":   "Notification saved; no dispatcher configured",
		})
		return
	}

	err = h.Dispatcher.Dispatch(ctx, push.Broadcast{
		NotificationID: created.ID.Hex(),
		Topic:          created.Topic,
		Title:          created.Title,
		Body:           created.Message,
	})
	if err != nil {
		log.Printf("Broadcast dispatch error: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"id":        created.ID.Hex(),
			"delivered": false,
			"message":   "Notification saved but not delivered",
		})
		return
	}

	// The record must agree with the response. Retry the single-field write
	// once; if it still fails, say so instead of reporting a clean send.
	sentAt := primitive.NewDateTimeFromTime(h.now())
	markErr := h.Notifications.MarkSent(ctx, created.ID, sentAt)
	if markErr != nil {
		log.Printf("Broadcast mark-sent error: %v, retrying", markErr)
		markErr = h.Notifications.MarkSent(ctx, created.ID, sentAt)
	}
	if markErr != nil {
		log.Printf("Broadcast mark-sent retry error: %v", markErr)
		c.JSON(http.StatusOK, gin.H{
			"id":        created.ID.Hex(),
			"delivered": true,
			"message":   "Notification sent but its record is still marked unsent",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        created.ID.Hex(),
		"delivered": true,
		"message":   "Notification sent to all users",
	})
}
