package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SMSSender delivers the verification code. The provider is an external
// collaborator; only its HTTP contract is known here.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

type HTTPSMSSender struct {
	providerURL string
	client      *http.Client
}

func NewHTTPSMSSender(providerURL string) *HTTPSMSSender {
	return &HTTPSMSSender{
		providerURL: providerURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSMSSender) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   phone,
		"body": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.providerURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender prints codes instead of delivering them. Development only.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, phone, message string) error {
	log.Printf("SMS to %s: %s", phone, message)
	return nil
}
