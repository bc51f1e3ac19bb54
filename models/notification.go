package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BroadcastTopic is the only delivery scope the panel supports.
const BroadcastTopic = "all"

// NotificationRecord is the durable audit trail of a broadcast attempt.
// It is written with Sent=false before any delivery is tried and flipped
// to true only after the dispatcher reports success.
type NotificationRecord struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	Topic     string              `bson:"topic" json:"topic"`
	CreatedAt primitive.DateTime  `bson:"createdAt" json:"createdAt"`
	SentBy    string              `bson:"sentBy" json:"sentBy"`
	Sent      bool                `bson:"sent" json:"sent"`
	SentAt    *primitive.DateTime `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}
