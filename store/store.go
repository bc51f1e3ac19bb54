// Package store adapts the editable record types to and from their mongo
// collections. Every write returns the canonical stored document so callers
// never need a follow-up read.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/models"
)

var ErrNotFound = errors.New("store: document not found")

type PostStore interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	GetOne(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	CreateOne(ctx context.Context, post *models.Post) (*models.Post, error)
	ReplaceOne(ctx context.Context, id primitive.ObjectID, post *models.Post) (*models.Post, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	ListAll(ctx context.Context) ([]models.UserProfile, error)
	GetOne(ctx context.Context, id primitive.ObjectID) (*models.UserProfile, error)
	GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error)
	ReplaceOne(ctx context.Context, id primitive.ObjectID, user *models.UserProfile) (*models.UserProfile, error)
	SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool, updated primitive.DateTime) error
}

type NotificationStore interface {
	ListAll(ctx context.Context) ([]models.NotificationRecord, error)
	CreateOne(ctx context.Context, rec *models.NotificationRecord) (*models.NotificationRecord, error)
	MarkSent(ctx context.Context, id primitive.ObjectID, at primitive.DateTime) error
}

type VerificationStore interface {
	Upsert(ctx context.Context, v *models.Verification) error
	GetByPhone(ctx context.Context, phone string) (*models.Verification, error)
	IncrementAttempts(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SubscriptionStore interface {
	ListAll(ctx context.Context) ([]models.PushSubscription, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
