package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	MongoURI  string
	JWTSecret string

	CloudinaryURL string

	// Push dispatch. When DispatchURL is set the broadcast goes through the
	// HTTP topic endpoint; otherwise VAPID keys enable webpush fan-out.
	DispatchURL     string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	SMSProviderURL string

	CaptchaVerifyURL string
	CaptchaSecret    string

	TokenDuration  time.Duration
	CodeDuration   time.Duration
	SendCodeLimit  int
	SendCodeWindow time.Duration
	AllowedOrigins []string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),

		MongoURI:  getEnv("MONGODB_URI", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),

		DispatchURL:     getEnv("DISPATCH_URL", ""),
		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "mailto:admin@example.com"),

		SMSProviderURL: getEnv("SMS_PROVIDER_URL", ""),

		CaptchaVerifyURL: getEnv("CAPTCHA_VERIFY_URL", ""),
		CaptchaSecret:    getEnv("CAPTCHA_SECRET", ""),

		TokenDuration:  getEnvAsDuration("TOKEN_DURATION", 24*time.Hour),
		CodeDuration:   getEnvAsDuration("CODE_DURATION", 5*time.Minute),
		SendCodeLimit:  getEnvAsInt("SEND_CODE_LIMIT", 5),
		SendCodeWindow: getEnvAsDuration("SEND_CODE_WINDOW", time.Minute),
		AllowedOrigins: []string{
			getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		},
	}
}
