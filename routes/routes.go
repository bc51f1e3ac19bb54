package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"adminpanel/handlers"
	"adminpanel/middleware"
	"adminpanel/store"
)

type Deps struct {
	Handlers  *handlers.Handlers
	Users     store.UserStore
	JWTSecret []byte
	Limiter   *middleware.IPRateLimiter
	Origins   []string
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := deps.Handlers

	// Public login flow
	authGroup := router.Group("/api/auth")
	authGroup.POST("/send-code", middleware.RateLimit(deps.Limiter), h.SendCode)
	authGroup.POST("/verify-code", h.VerifyCode)

	// Everything else requires a valid token AND a fresh admin check.
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuth(deps.JWTSecret), middleware.RequireAdmin(deps.Users))

	admin.GET("/me", h.Me)

	admin.GET("/posts", h.ListPosts)
	admin.POST("/posts", h.CreatePost)
	admin.PUT("/posts/:id", h.UpdatePost)
	admin.DELETE("/posts/:id", h.DeletePost)

	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.POST("/users/:id/toggle-admin", h.ToggleAdmin)

	admin.GET("/notifications", h.ListNotifications)
	admin.POST("/notifications", h.Broadcast)

	admin.POST("/upload", h.UploadImage)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
