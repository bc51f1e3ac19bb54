// Package push delivers broadcast notifications. Two dispatcher variants
// exist: an HTTP topic endpoint and direct webpush fan-out to stored
// subscriptions.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Broadcast struct {
	NotificationID string `json:"notificationId"`
	Topic          string `json:"topic"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}

// Dispatcher attempts delivery once. Failure is reported to the caller;
// there is no retry and no later reconciliation.
type Dispatcher interface {
	Dispatch(ctx context.Context, b Broadcast) error
}

// HTTPDispatcher posts the broadcast to a topic-fanout endpoint. Any 2xx
// response counts as delivered.
type HTTPDispatcher struct {
	url    string
	client *http.Client
}

func NewHTTPDispatcher(url string) *HTTPDispatcher {
	return &HTTPDispatcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, b Broadcast) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("dispatch endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
