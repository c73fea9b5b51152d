package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity entry types. One per content entity kind.
const (
	ActivityBlog     = "blog"
	ActivityDonation = "donation"
	ActivitySale     = "sale"
	ActivitySwap     = "swap"
)

// User represents a user document in MongoDB. The activities and
// recommended_plants sequences are embedded in the user document and
// owned exclusively by it; content entities never write them directly.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Username       string             `json:"username,omitempty" bson:"username,omitempty"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profile_picture,omitempty"`
	IsAdmin        bool               `json:"isAdmin" bson:"is_admin"`

	// Most-recent-first. Mutated only through the user repository's
	// array operations.
	Activities        []ActivityEntry       `json:"activities" bson:"activities"`
	RecommendedPlants []RecommendationEntry `json:"recommendedPlants" bson:"recommended_plants"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// ActivityEntry is one row of the user's activity ledger. SourceID
// references the entity that produced the entry, so deleting that
// entity removes exactly its own rows; two blogs sharing a title
// cannot collide on removal.
type ActivityEntry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      string             `json:"type" bson:"type"`
	SourceID  primitive.ObjectID `json:"sourceId" bson:"source_id"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// RecommendationEntry is a plant the user may want, derived from one
// of their own swap requests. An entry is valid only while the
// referenced swap exists, belongs to the user and is still open.
type RecommendationEntry struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PlantName string              `json:"plantName" bson:"plant_name"`
	FromSwap  *primitive.ObjectID `json:"fromSwap,omitempty" bson:"from_swap,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"created_at"`
}
