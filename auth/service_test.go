package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/models"
	"adminpanel/store"
)

type fakeVerificationStore struct {
	byPhone map[string]*models.Verification
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{byPhone: map[string]*models.Verification{}}
}

func (s *fakeVerificationStore) Upsert(ctx context.Context, v *models.Verification) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	v.Attempts = 0
	s.byPhone[v.Phone] = v
	return nil
}

func (s *fakeVerificationStore) GetByPhone(ctx context.Context, phone string) (*models.Verification, error) {
	v, ok := s.byPhone[phone]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *v
	return &copy, nil
}

func (s *fakeVerificationStore) IncrementAttempts(ctx context.Context, id primitive.ObjectID) error {
	for _, v := range s.byPhone {
		if v.ID == id {
			v.Attempts++
		}
	}
	return nil
}

func (s *fakeVerificationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for phone, v := range s.byPhone {
		if v.ID == id {
			delete(s.byPhone, phone)
		}
	}
	return nil
}

type fakeUserStore struct {
	byPhone map[string]models.UserProfile
}

func (s *fakeUserStore) ListAll(ctx context.Context) ([]models.UserProfile, error) { return nil, nil }
func (s *fakeUserStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.UserProfile, error) {
	return nil, store.ErrNotFound
}
func (s *fakeUserStore) ReplaceOne(ctx context.Context, id primitive.ObjectID, user *models.UserProfile) (*models.UserProfile, error) {
	return nil, store.ErrNotFound
}
func (s *fakeUserStore) SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool, updated primitive.DateTime) error {
	return store.ErrNotFound
}
func (s *fakeUserStore) GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	u, ok := s.byPhone[phone]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

type captureSender struct {
	phone   string
	message string
	fail    bool
}

func (s *captureSender) Send(ctx context.Context, phone, message string) error {
	if s.fail {
		return assert.AnError
	}
	s.phone = phone
	s.message = message
	return nil
}

func codeFromMessage(message string) string {
	return message[strings.LastIndex(message, " ")+1:]
}

func newTestService(verifications store.VerificationStore, users store.UserStore, sms SMSSender) *Service {
	return NewService(verifications, users, NoopVerifier{}, sms, []byte("test-secret"), 24*time.Hour, 5*time.Minute)
}

func TestSendAndVerifyCode(t *testing.T) {
	verifications := newFakeVerificationStore()
	userID := primitive.NewObjectID()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{
		"+79991234567": {ID: userID, Phone: "+79991234567", IsAdmin: true},
	}}
	sms := &captureSender{}
	svc := newTestService(verifications, users, sms)

	require.NoError(t, svc.SendCode(context.Background(), "+7 999 123 45 67", "token"))
	assert.Equal(t, "+79991234567", sms.phone)

	code := codeFromMessage(sms.message)
	require.Len(t, code, 6)

	token, profile, err := svc.VerifyCode(context.Background(), "+79991234567", code)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, userID, profile.ID)
	assert.True(t, profile.IsAdmin)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID.Hex(), claims.UserID)

	// The code is one-shot.
	_, _, err = svc.VerifyCode(context.Background(), "+79991234567", code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyCodeWrongCode(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	sms := &captureSender{}
	svc := newTestService(verifications, users, sms)

	require.NoError(t, svc.SendCode(context.Background(), "+79991234567", "token"))

	_, _, err := svc.VerifyCode(context.Background(), "+79991234567", "000000x")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, 1, verifications.byPhone["+79991234567"].Attempts)
}

func TestVerifyCodeAttemptCap(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	sms := &captureSender{}
	svc := newTestService(verifications, users, sms)

	require.NoError(t, svc.SendCode(context.Background(), "+79991234567", "token"))
	verifications.byPhone["+79991234567"].Attempts = 5

	_, _, err := svc.VerifyCode(context.Background(), "+79991234567", "123456")
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// The verification was discarded; even the right code is useless now.
	_, _, err = svc.VerifyCode(context.Background(), "+79991234567", codeFromMessage(sms.message))
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyCodeExpired(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	sms := &captureSender{}
	svc := newTestService(verifications, users, sms)

	require.NoError(t, svc.SendCode(context.Background(), "+79991234567", "token"))

	svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	_, _, err := svc.VerifyCode(context.Background(), "+79991234567", codeFromMessage(sms.message))
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyCodeUnknownUser(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	sms := &captureSender{}
	svc := newTestService(verifications, users, sms)

	require.NoError(t, svc.SendCode(context.Background(), "+79991234567", "token"))

	_, _, err := svc.VerifyCode(context.Background(), "+79991234567", codeFromMessage(sms.message))
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSendCodeSMSFailure(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	svc := newTestService(verifications, users, &captureSender{fail: true})

	err := svc.SendCode(context.Background(), "+79991234567", "token")
	assert.ErrorIs(t, err, ErrSendFailed)
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(ctx context.Context, token string) error { return ErrChallengeFailed }
func (rejectingVerifier) Close()                                         {}

func TestSendCodeChallengeFailure(t *testing.T) {
	verifications := newFakeVerificationStore()
	users := &fakeUserStore{byPhone: map[string]models.UserProfile{}}
	sms := &captureSender{}
	svc := NewService(verifications, users, rejectingVerifier{}, sms, []byte("s"), time.Hour, time.Minute)

	err := svc.SendCode(context.Background(), "+79991234567", "bad-token")
	assert.ErrorIs(t, err, ErrChallengeFailed)
	assert.Empty(t, verifications.byPhone, "nothing persisted on challenge failure")
	assert.Empty(t, sms.message)
}
