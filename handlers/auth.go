package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/auth"
	"adminpanel/store"
)

type SendCodeRequest struct {
	Phone          string `json:"phone"`
	ChallengeToken string `json:"challengeToken"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *Handlers) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	switch err := h.Auth.SendCode(ctx, req.Phone, req.ChallengeToken); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
	case auth.ErrInvalidPhone:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format. Use the international format: +79991234567"})
	case auth.ErrChallengeFailed:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge verification failed. Refresh and try again."})
	case auth.ErrSendFailed:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not send the code. SMS quota may be exceeded, contact the administrator."})
	default:
		log.Printf("SendCode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
	}
}

func (h *Handlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, profile, err := h.Auth.VerifyCode(ctx, req.Phone, req.Code)
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{
			"token":   token,
			"userId":  profile.ID.Hex(),
			"isAdmin": profile.IsAdmin,
		})
	case auth.ErrInvalidPhone:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format. Use the international format: +79991234567"})
	case auth.ErrInvalidCode:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code. Try again."})
	case auth.ErrCodeExpired:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code expired. Request a new one."})
	case auth.ErrTooManyAttempts:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Request a new code."})
	case auth.ErrUnknownUser:
		c.JSON(http.StatusForbidden, gin.H{"error": "No account found for this phone number"})
	default:
		log.Printf("VerifyCode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
	}
}

// Me returns the signed-in principal's profile. The admin middleware has
// already vetted the flag, so this is informational for the frontend.
func (h *Handlers) Me(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.Users.GetOne(ctx, userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		log.Printf("Me error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
