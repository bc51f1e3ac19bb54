package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adminpanel/models"
)

type MongoPostStore struct {
	coll *mongo.Collection
}

func NewMongoPostStore(coll *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{coll: coll}
}

// ListAll returns every post ordered by creation time, newest first.
func (s *MongoPostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) GetOne(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) CreateOne(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ReplaceOne overwrites every editable field and returns the document as
// written. Created, authorId and likeList are owned by the create path and
// the consumer application, so they survive the overwrite.
func (s *MongoPostStore) ReplaceOne(ctx context.Context, id primitive.ObjectID, post *models.Post) (*models.Post, error) {
	update := bson.M{"$set": bson.M{
		"title":          post.Title,
		"description":    post.Description,
		"imageUrl":       post.ImageURL,
		"type":           post.Type,
		"authorPhone":    post.AuthorPhone,
		"updated":        post.Updated,
		"postValidUntil": post.PostValidUntil,
		"promotedUntil":  post.PromotedUntil,
		"eventDetails":   post.EventDetails,
		"promoDetails":   post.PromoDetails,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Post
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPostStore) DeleteOne(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
