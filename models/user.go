package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserProfile documents are created by the consumer application; the admin
// panel only edits them.
type UserProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Surname          string             `bson:"surname" json:"surname"`
	Phone            string             `bson:"phone" json:"phone"`
	Email            string             `bson:"email" json:"email"`
	Instagram        string             `bson:"instagram" json:"instagram"`
	Telegram         string             `bson:"telegram" json:"telegram"`
	WhatsApp         string             `bson:"whatsApp" json:"whatsApp"`
	Bio              string             `bson:"bio" json:"bio"`
	Image            string             `bson:"image" json:"image"`
	IsPublic         bool               `bson:"isPublic" json:"isPublic"`
	PhoneIsAvailable bool               `bson:"phoneIsAvailable" json:"phoneIsAvailable"`
	IsAdmin          bool               `bson:"isAdmin" json:"isAdmin"`
	Likes            []string           `bson:"likes" json:"likes"`
	Updated          primitive.DateTime `bson:"updated" json:"updated"`
}
