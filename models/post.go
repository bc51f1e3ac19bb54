package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post types match the values stored by the consumer application.
const (
	PostTypeNews  = 0
	PostTypeEvent = 1
	PostTypePromo = 2
)

type EventDetails struct {
	Location  string              `bson:"location" json:"location"`
	StartTime *primitive.DateTime `bson:"startTime" json:"startTime"`
	EndTime   *primitive.DateTime `bson:"endTime" json:"endTime"`
}

type PromoDetails struct {
	Discount   int                 `bson:"discount" json:"discount"`
	ValidUntil *primitive.DateTime `bson:"validUntil" json:"validUntil"`
}

type Post struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	ImageURL       string              `bson:"imageUrl" json:"imageUrl"`
	Type           int                 `bson:"type" json:"type"`
	AuthorID       string              `bson:"authorId" json:"authorId"`
	AuthorPhone    string              `bson:"authorPhone" json:"authorPhone"`
	Created        primitive.DateTime  `bson:"created" json:"created"`
	Updated        primitive.DateTime  `bson:"updated" json:"updated"`
	PostValidUntil *primitive.DateTime `bson:"postValidUntil" json:"postValidUntil"`
	PromotedUntil  *primitive.DateTime `bson:"promotedUntil" json:"promotedUntil"`
	LikeList       []string            `bson:"likeList" json:"likeList"`
	EventDetails   *EventDetails       `bson:"eventDetails" json:"eventDetails"`
	PromoDetails   *PromoDetails       `bson:"promoDetails" json:"promoDetails"`
}

// ValidType reports whether t is one of the known post types.
func ValidType(t int) bool {
	return t == PostTypeNews || t == PostTypeEvent || t == PostTypePromo
}

// NormalizeForCreate enforces the type/detail invariant on a new post:
// event details are kept only for event posts that actually carry data,
// promo details only for promo posts with a positive discount.
func (p *Post) NormalizeForCreate() {
	if p.Type != PostTypeEvent {
		p.EventDetails = nil
	} else if p.EventDetails != nil && p.EventDetails.Location == "" && p.EventDetails.StartTime == nil {
		p.EventDetails = nil
	}

	if p.Type != PostTypePromo {
		p.PromoDetails = nil
	} else if p.PromoDetails != nil && p.PromoDetails.Discount <= 0 {
		p.PromoDetails = nil
	}
}

// NormalizeForUpdate re-derives the detail variant from the current type.
// Switching type clears the other variant's fields; an event post without
// submitted details still gets an empty EventDetails block, matching how
// edits have always been saved.
func (p *Post) NormalizeForUpdate() {
	switch p.Type {
	case PostTypeEvent:
		if p.EventDetails == nil {
			p.EventDetails = &EventDetails{}
		}
		p.PromoDetails = nil
	case PostTypePromo:
		if p.PromoDetails == nil {
			p.PromoDetails = &PromoDetails{}
		}
		p.EventDetails = nil
	default:
		p.EventDetails = nil
		p.PromoDetails = nil
	}
}
