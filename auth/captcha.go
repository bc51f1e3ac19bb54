package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrChallengeFailed = errors.New("auth: challenge verification failed")

// CaptchaVerifier is the challenge widget's server side. It is an injected
// resource with an explicit lifecycle; callers own Close.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
	Close()
}

// HTTPCaptchaVerifier checks challenge tokens against a siteverify-style
// endpoint.
type HTTPCaptchaVerifier struct {
	verifyURL string
	secret    string
	client    *http.Client
}

func NewHTTPCaptchaVerifier(verifyURL, secret string) *HTTPCaptchaVerifier {
	return &HTTPCaptchaVerifier{
		verifyURL: verifyURL,
		secret:    secret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPCaptchaVerifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrChallengeFailed
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return ErrChallengeFailed
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ErrChallengeFailed
	}
	if !result.Success {
		return ErrChallengeFailed
	}
	return nil
}

func (v *HTTPCaptchaVerifier) Close() {
	v.client.CloseIdleConnections()
}

// NoopVerifier accepts every token. Used when no captcha endpoint is
// configured, e.g. local development.
type NoopVerifier struct{}

func (NoopVerifier) Verify(ctx context.Context, token string) error { return nil }
func (NoopVerifier) Close()                                         {}
