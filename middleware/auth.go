package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/auth"
	"adminpanel/store"
)

// JWTAuth validates the Bearer token and puts the principal id into the
// request context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "No authorization token provided",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid authorization header",
				"message": "Format should be: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims := &auth.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token validation failed",
			})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// RequireAdmin re-reads the principal's profile document on every request
// and grants access only when it exists and carries the admin flag. Any
// lookup failure is a denial; the decision is never cached.
func RequireAdmin(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
		if err != nil {
			denyAccess(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		profile, err := users.GetOne(ctx, userID)
		if err != nil {
			if err != store.ErrNotFound {
				log.Printf("RequireAdmin: profile lookup failed for %s: %v", userID.Hex(), err)
			}
			denyAccess(c)
			return
		}
		if !profile.IsAdmin {
			denyAccess(c)
			return
		}

		c.Next()
	}
}

func denyAccess(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"error":   "Access denied",
		"message": "Administrator rights required",
		"signOut": true,
	})
	c.Abort()
}
