package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/auth"
	"adminpanel/push"
	"adminpanel/storage"
	"adminpanel/store"
)

// Handlers carries every collaborator the admin workflows need. Dispatcher
// and Images may be nil when the corresponding service is not configured.
type Handlers struct {
	Posts         store.PostStore
	Users         store.UserStore
	Notifications store.NotificationStore
	Auth          *auth.Service
	Images        storage.ImageStore
	Dispatcher    push.Dispatcher

	now func() time.Time
}

func New(posts store.PostStore, users store.UserStore, notifications store.NotificationStore, authService *auth.Service, images storage.ImageStore, dispatcher push.Dispatcher) *Handlers {
	return &Handlers{
		Posts:         posts,
		Users:         users,
		Notifications: notifications,
		Auth:          authService,
		Images:        images,
		Dispatcher:    dispatcher,
		now:           time.Now,
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate converts an optional date-time string from the editor into a
// nullable timestamp. Empty or unparseable input becomes null.
func parseDate(s string) *primitive.DateTime {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			dt := primitive.NewDateTimeFromTime(t)
			return &dt
		}
	}
	return nil
}
