package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adminpanel/models"
)

type MongoVerificationStore struct {
	coll *mongo.Collection
}

func NewMongoVerificationStore(coll *mongo.Collection) *MongoVerificationStore {
	return &MongoVerificationStore{coll: coll}
}

// Upsert keeps at most one pending verification per phone number; a new
// code replaces the old one and resets the attempt counter.
func (s *MongoVerificationStore) Upsert(ctx context.Context, v *models.Verification) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"phone": v.Phone},
		bson.M{"$set": bson.M{
			"phone":     v.Phone,
			"codeHash":  v.CodeHash,
			"expiresAt": v.ExpiresAt,
			"attempts":  0,
			"createdAt": v.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoVerificationStore) GetByPhone(ctx context.Context, phone string) (*models.Verification, error) {
	var v models.Verification
	err := s.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoVerificationStore) IncrementAttempts(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"attempts": 1}})
	return err
}

func (s *MongoVerificationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
