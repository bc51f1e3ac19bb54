package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adminpanel/models"
	"adminpanel/push"
)

func TestBroadcastValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty title", map[string]interface{}{"title": "", "message": "hello"}},
		{"empty message", map[string]interface{}{"title": "hello", "message": ""}},
		{"whitespace only", map[string]interface{}{"title": " ", "message": "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := new(MockNotificationStore)
			h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, nil)
			router := adminRouter(h, "admin1")

			rr := doJSON(t, router, http.MethodPost, "/notifications", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			notifications.AssertNotCalled(t, "CreateOne", mock.Anything, mock.Anything)
		})
	}
}

func TestBroadcastDispatchFailure(t *testing.T) {
	notifications := new(MockNotificationStore)
	notifications.On("CreateOne", mock.Anything, mock.MatchedBy(func(rec *models.NotificationRecord) bool {
		return rec.Title == "Maintenance" && !rec.Sent && rec.Topic == models.BroadcastTopic
	})).Return(nil, nil)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("endpoint unreachable"))

	h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, dispatcher)
	router := adminRouter(h, "admin1")

	rr := doJSON(t, router, http.MethodPost, "/notifications", map[string]interface{}{
		"title":   "Maintenance",
		"message": "Down at midnight",
	})

	// Degraded success: the record is saved, delivery failed, nothing blew up.
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["delivered"])
	assert.Equal(t, "Notification saved but not delivered", resp["message"])

	notifications.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	notifications.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestBroadcastDispatchSuccess(t *testing.T) {
	notifications := new(MockNotificationStore)
	notifications.On("CreateOne", mock.Anything, mock.Anything).Return(nil, nil)
	notifications.On("MarkSent", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(b push.Broadcast) bool {
		return b.Topic == models.BroadcastTopic && b.Title == "Release" && b.Body == "v2 is live" && b.NotificationID != ""
	})).Return(nil)

	h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, dispatcher)
	router := adminRouter(h, "admin1")

	rr := doJSON(t, router, http.MethodPost, "/notifications", map[string]interface{}{
		"title":   "Release",
		"message": "v2 is live",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["delivered"])

	notifications.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestBroadcastMarkSentRetriesOnce(t *testing.T) {
	notifications := new(MockNotificationStore)
	notifications.On("CreateOne", mock.Anything, mock.Anything).Return(nil, nil)
	notifications.On("MarkSent", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()
	notifications.On("MarkSent", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, dispatcher)
	router := adminRouter(h, "admin1")

	rr := doJSON(t, router, http.MethodPost, "/notifications", map[string]interface{}{
		"title":   "Release",
		"message": "v2 is live",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["delivered"])
	assert.Equal(t, "Notification sent to all users", resp["message"])

	notifications.AssertNumberOfCalls(t, "MarkSent", 2)
	notifications.AssertExpectations(t)
}

func TestBroadcastMarkSentFailureIsReported(t *testing.T) {
	notifications := new(MockNotificationStore)
	notifications.On("CreateOne", mock.Anything, mock.Anything).Return(nil, nil)
	notifications.On("MarkSent", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("write conflict"))

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, dispatcher)
	router := adminRouter(h, "admin1")

	rr := doJSON(t, router, http.MethodPost, "/notifications", map[string]interface{}{
		"title":   "Release",
		"message": "v2 is live",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	// The push went out but the record still says unsent; the response must
	// not pretend otherwise.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["delivered"])
	assert.Equal(t, "Notification sent but its record is still marked unsent", resp["message"])

	notifications.AssertNumberOfCalls(t, "MarkSent", 2)
}

func TestBroadcastWithoutDispatcher(t *testing.T) {
	notifications := new(MockNotificationStore)
	notifications.On("CreateOne", mock.Anything, mock.Anything).Return(nil, nil)

	h := New(newFakePostStore(), newFakeUserStore(), notifications, nil, nil, nil)
	router := adminRouter(h, "admin1")

	rr := doJSON(t, router, http.MethodPost, "/notifications", map[string]interface{}{
		"title":   "Hello",
		"message": "World",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["delivered"])

	notifications.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
}
