package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"adminpanel/auth"
	"adminpanel/config"
	"adminpanel/database"
	"adminpanel/handlers"
	"adminpanel/middleware"
	"adminpanel/push"
	"adminpanel/routes"
	"adminpanel/storage"
	"adminpanel/store"
)

func main() {
	log.Println("Starting admin panel backend...")

	cfg := config.Load()
	if cfg.JWTSecret == "" || cfg.MongoURI == "" {
		log.Fatal("JWT_SECRET and MONGODB_URI must be set")
	}

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.Connect(cfg.MongoURI); err != nil {
			dbErr = err
			log.Printf("MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", dbErr)
	}
	defer func() {
		if err := database.Disconnect(); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	}()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	posts := store.NewMongoPostStore(database.Posts)
	users := store.NewMongoUserStore(database.Users)
	notifications := store.NewMongoNotificationStore(database.Notifications)
	verifications := store.NewMongoVerificationStore(database.Verifications)
	subscriptions := store.NewMongoSubscriptionStore(database.PushSubs)

	var captcha auth.CaptchaVerifier
	if cfg.CaptchaVerifyURL != "" {
		captcha = auth.NewHTTPCaptchaVerifier(cfg.CaptchaVerifyURL, cfg.CaptchaSecret)
	} else {
		log.Println("CAPTCHA_VERIFY_URL not set, challenge checks disabled")
		captcha = auth.NoopVerifier{}
	}
	defer captcha.Close()

	var sms auth.SMSSender
	if cfg.SMSProviderURL != "" {
		sms = auth.NewHTTPSMSSender(cfg.SMSProviderURL)
	} else {
		log.Println("SMS_PROVIDER_URL not set, codes will be logged")
		sms = auth.LogSender{}
	}

	authService := auth.NewService(verifications, users, captcha, sms, []byte(cfg.JWTSecret), cfg.TokenDuration, cfg.CodeDuration)

	var dispatcher push.Dispatcher
	switch {
	case cfg.DispatchURL != "":
		dispatcher = push.NewHTTPDispatcher(cfg.DispatchURL)
		log.Println("Using HTTP dispatch endpoint for broadcasts")
	case cfg.VAPIDPublicKey != "" || cfg.VAPIDPrivateKey != "":
		pub, priv, err := push.EnsureVAPIDKeys(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		if err != nil {
			log.Fatal("Failed to prepare VAPID keys: ", err)
		}
		dispatcher = push.NewWebPushDispatcher(subscriptions, pub, priv, cfg.VAPIDSubscriber)
		log.Println("Using webpush fan-out for broadcasts")
	default:
		log.Println("No dispatcher configured, broadcasts will only be persisted")
	}

	var images storage.ImageStore
	if cfg.CloudinaryURL != "" {
		cloudinaryStore, err := storage.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Cloudinary configuration error: ", err)
		}
		images = cloudinaryStore
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	h := handlers.New(posts, users, notifications, authService, images, dispatcher)

	router := routes.SetupRouter(routes.Deps{
		Handlers:  h,
		Users:     users,
		JWTSecret: []byte(cfg.JWTSecret),
		Limiter:   middleware.NewIPRateLimiter(cfg.SendCodeLimit, cfg.SendCodeWindow),
		Origins:   cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	log.Println("Server stopped gracefully")
}
