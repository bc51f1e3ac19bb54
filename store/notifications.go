package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adminpanel/models"
)

type MongoNotificationStore struct {
	coll *mongo.Collection
}

func NewMongoNotificationStore(coll *mongo.Collection) *MongoNotificationStore {
	return &MongoNotificationStore{coll: coll}
}

func (s *MongoNotificationStore) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.NotificationRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoNotificationStore) CreateOne(ctx context.Context, rec *models.NotificationRecord) (*models.NotificationRecord, error) {
	rec.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *MongoNotificationStore) MarkSent(ctx context.Context, id primitive.ObjectID, at primitive.DateTime) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"sent":   true,
		"sentAt": at,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
