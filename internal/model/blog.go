package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog visibility options
const (
	VisibilityPublic    = "Public"
	VisibilityCommunity = "Community Only"
)

// Blog represents a blog post document in MongoDB
type Blog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user" bson:"user"`
	Title      string             `json:"title" bson:"title"`
	Topic      string             `json:"topic" bson:"topic"`
	Content    string             `json:"content" bson:"content"`
	Image      string             `json:"image,omitempty" bson:"image,omitempty"`
	Visibility string             `json:"visibility" bson:"visibility"`
	Views      int64              `json:"views" bson:"views"`
	AuthorName string             `json:"authorName,omitempty" bson:"author_name,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CommunityHighlight is a dashboard card for a recent public blog.
type CommunityHighlight struct {
	ID        primitive.ObjectID `json:"id"`
	Type      string             `json:"type"`
	Title     string             `json:"title"`
	Topic     string             `json:"topic"`
	Author    string             `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
}
