package handlers

import (
	"context"
	"io"
	"sort"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/models"
	"adminpanel/push"
	"adminpanel/store"
)

// fakePostStore is an in-memory PostStore with the same write-returns-
// document semantics as the mongo implementation.
type fakePostStore struct {
	posts map[primitive.ObjectID]models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]models.Post{}}
}

func (s *fakePostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	result := []models.Post{}
	for _, p := range s.posts {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created > result[j].Created })
	return result, nil
}

func (s *fakePostStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakePostStore) CreateOne(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	s.posts[post.ID] = *post
	return post, nil
}

func (s *fakePostStore) ReplaceOne(ctx context.Context, id primitive.ObjectID, post *models.Post) (*models.Post, error) {
	existing, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	existing.Title = post.Title
	existing.Description = post.Description
	existing.ImageURL = post.ImageURL
	existing.Type = post.Type
	existing.AuthorPhone = post.AuthorPhone
	existing.Updated = post.Updated
	existing.PostValidUntil = post.PostValidUntil
	existing.PromotedUntil = post.PromotedUntil
	existing.EventDetails = post.EventDetails
	existing.PromoDetails = post.PromoDetails
	s.posts[id] = existing
	return &existing, nil
}

func (s *fakePostStore) DeleteOne(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]models.UserProfile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.UserProfile{}}
}

func (s *fakeUserStore) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	result := []models.UserProfile{}
	for _, u := range s.users {
		result = append(result, u)
	}
	return result, nil
}

func (s *fakeUserStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.UserProfile, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	for _, u := range s.users {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) ReplaceOne(ctx context.Context, id primitive.ObjectID, user *models.UserProfile) (*models.UserProfile, error) {
	existing, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	existing.Name = user.Name
	existing.Surname = user.Surname
	existing.Phone = user.Phone
	existing.Email = user.Email
	existing.Instagram = user.Instagram
	existing.Telegram = user.Telegram
	existing.WhatsApp = user.WhatsApp
	existing.Bio = user.Bio
	existing.Image = user.Image
	existing.IsPublic = user.IsPublic
	existing.PhoneIsAvailable = user.PhoneIsAvailable
	existing.Updated = user.Updated
	s.users[id] = existing
	return &existing, nil
}

func (s *fakeUserStore) SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool, updated primitive.DateTime) error {
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.IsAdmin = isAdmin
	u.Updated = updated
	s.users[id] = u
	return nil
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.NotificationRecord), args.Error(1)
}

func (m *MockNotificationStore) CreateOne(ctx context.Context, rec *models.NotificationRecord) (*models.NotificationRecord, error) {
	args := m.Called(ctx, rec)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	rec.ID = primitive.NewObjectID()
	return rec, nil
}

func (m *MockNotificationStore) MarkSent(ctx context.Context, id primitive.ObjectID, at primitive.DateTime) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, b push.Broadcast) error {
	return m.Called(ctx, b).Error(0)
}

type fakeImageStore struct {
	uploads int
	url     string
}

func (s *fakeImageStore) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	s.uploads++
	return s.url, nil
}
