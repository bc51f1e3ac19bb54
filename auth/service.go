package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"adminpanel/models"
	"adminpanel/store"
)

// Claims is the session token payload. Consumed by the request middleware.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidCode     = errors.New("auth: invalid verification code")
	ErrCodeExpired     = errors.New("auth: verification code expired")
	ErrTooManyAttempts = errors.New("auth: too many verification attempts")
	ErrSendFailed      = errors.New("auth: failed to send verification code")
	ErrUnknownUser     = errors.New("auth: no profile for this phone number")
)

const maxVerifyAttempts = 5

// Service implements the phone login flow: challenge check, code issue over
// SMS, code verification, JWT issuance.
type Service struct {
	Verifications store.VerificationStore
	Users         store.UserStore
	Captcha       CaptchaVerifier
	SMS           SMSSender
	JWTSecret     []byte
	TokenTTL      time.Duration
	CodeTTL       time.Duration

	now func() time.Time
}

func NewService(verifications store.VerificationStore, users store.UserStore, captcha CaptchaVerifier, sms SMSSender, jwtSecret []byte, tokenTTL, codeTTL time.Duration) *Service {
	return &Service{
		Verifications: verifications,
		Users:         users,
		Captcha:       captcha,
		SMS:           sms,
		JWTSecret:     jwtSecret,
		TokenTTL:      tokenTTL,
		CodeTTL:       codeTTL,
		now:           time.Now,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendCode validates the challenge token, stores a hashed one-time code and
// hands it to the SMS collaborator. Nothing is persisted when the challenge
// or the phone number is rejected.
func (s *Service) SendCode(ctx context.Context, rawPhone, challengeToken string) error {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return err
	}

	if err := s.Captcha.Verify(ctx, challengeToken); err != nil {
		return ErrChallengeFailed
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := s.now()
	verification := &models.Verification{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: primitive.NewDateTimeFromTime(now.Add(s.CodeTTL)),
		CreatedAt: primitive.NewDateTimeFromTime(now),
	}
	if err := s.Verifications.Upsert(ctx, verification); err != nil {
		return err
	}

	message := fmt.Sprintf("Your verification code is %s", code)
	if err := s.SMS.Send(ctx, phone, message); err != nil {
		return ErrSendFailed
	}
	return nil
}

// VerifyCode checks the submitted code against the pending verification and,
// on success, resolves the profile for that phone and issues a session token.
// A missing profile means there is no principal to sign in.
func (s *Service) VerifyCode(ctx context.Context, rawPhone, code string) (string, *models.UserProfile, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return "", nil, err
	}
	if code == "" {
		return "", nil, ErrInvalidCode
	}

	verification, err := s.Verifications.GetByPhone(ctx, phone)
	if err == store.ErrNotFound {
		return "", nil, ErrCodeExpired
	}
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	if now.After(verification.ExpiresAt.Time()) {
		_ = s.Verifications.Delete(ctx, verification.ID)
		return "", nil, ErrCodeExpired
	}
	if verification.Attempts >= maxVerifyAttempts {
		_ = s.Verifications.Delete(ctx, verification.ID)
		return "", nil, ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(verification.CodeHash), []byte(code)) != nil {
		_ = s.Verifications.IncrementAttempts(ctx, verification.ID)
		return "", nil, ErrInvalidCode
	}

	_ = s.Verifications.Delete(ctx, verification.ID)

	profile, err := s.Users.GetByPhone(ctx, phone)
	if err == store.ErrNotFound {
		return "", nil, ErrUnknownUser
	}
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(profile.ID.Hex(), now)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *Service) issueToken(userID string, now time.Time) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}
