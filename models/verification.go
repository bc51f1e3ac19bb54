package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Verification holds one pending phone login. The code itself is never
// stored, only its bcrypt hash.
type Verification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Phone     string             `bson:"phone" json:"-"`
	CodeHash  string             `bson:"codeHash" json:"-"`
	ExpiresAt primitive.DateTime `bson:"expiresAt" json:"-"`
	Attempts  int                `bson:"attempts" json:"-"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"-"`
}
