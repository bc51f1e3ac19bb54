package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adminpanel/models"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserProfile{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.UserProfile, error) {
	var user models.UserProfile
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := s.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceOne overwrites the admin-editable profile fields. Likes and the
// admin flag are left alone; the flag has its own single-field write.
func (s *MongoUserStore) ReplaceOne(ctx context.Context, id primitive.ObjectID, user *models.UserProfile) (*models.UserProfile, error) {
	update := bson.M{"$set": bson.M{
		"name":             user.Name,
		"surname":          user.Surname,
		"phone":            user.Phone,
		"email":            user.Email,
		"instagram":        user.Instagram,
		"telegram":         user.Telegram,
		"whatsApp":         user.WhatsApp,
		"bio":              user.Bio,
		"image":            user.Image,
		"isPublic":         user.IsPublic,
		"phoneIsAvailable": user.PhoneIsAvailable,
		"updated":          user.Updated,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.UserProfile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoUserStore) SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool, updated primitive.DateTime) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isAdmin": isAdmin,
		"updated": updated,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
