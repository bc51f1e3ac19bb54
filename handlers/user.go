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
	"adminpanel/store"
)

type UserUpdateRequest struct {
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Instagram        string `json:"instagram"`
	Telegram         string `json:"telegram"`
	WhatsApp         string `json:"whatsApp"`
	Bio              string `json:"bio"`
	Image            string `json:"image"`
	IsPublic         bool   `json:"isPublic"`
	PhoneIsAvailable bool   `json:"phoneIsAvailable"`
}

// filterUsers matches name, surname or email case-insensitively and phone
// by plain substring.
func filterUsers(users []models.UserProfile, term string) []models.UserProfile {
	if term == "" {
		return users
	}
	lower := strings.ToLower(term)

	result := []models.UserProfile{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), lower) ||
			strings.Contains(strings.ToLower(u.Surname), lower) ||
			strings.Contains(strings.ToLower(u.Email), lower) ||
			strings.Contains(u.Phone, term) {
			result = append(result, u)
		}
	}
	return result
}

func (h *Handlers) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		log.Printf("ListUsers error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, filterUsers(users, c.Query("q")))
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user := &models.UserProfile{
		Name:             req.Name,
		Surname:          req.Surname,
		Phone:            req.Phone,
		Email:            req.Email,
		Instagram:        req.Instagram,
		Telegram:         req.Telegram,
		WhatsApp:         req.WhatsApp,
		Bio:              req.Bio,
		Image:            req.Image,
		IsPublic:         req.IsPublic,
		PhoneIsAvailable: req.PhoneIsAvailable,
		Updated:          primitive.NewDateTimeFromTime(h.now()),
	}

	updated, err := h.Users.ReplaceOne(ctx, id, user)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("UpdateUser error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ToggleAdmin flips the admin flag with a single-field write. Revoking your
// own rights is allowed; the next request simply fails the admin check.
func (h *Handlers) ToggleAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.GetOne(ctx, id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("ToggleAdmin error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	newValue := !user.IsAdmin
	if c.GetString("userId") == id.Hex() && !newValue {
		log.Printf("ToggleAdmin: admin %s is revoking their own rights", id.Hex())
	}

	if err := h.Users.SetAdmin(ctx, id, newValue, primitive.NewDateTimeFromTime(h.now())); err != nil {
		log.Printf("ToggleAdmin error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "isAdmin": newValue})
}
