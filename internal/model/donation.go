package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation lifecycle statuses
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationCancelled = "cancelled"
)

// Donation represents a plant donation offer document in MongoDB
type Donation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	PlantName string             `json:"plantName" bson:"plant_name"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Image     string             `json:"image" bson:"image"`
	Status    string             `json:"status" bson:"status"`
	OwnerName string             `json:"ownerName,omitempty" bson:"owner_name,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ValidDonationStatus reports whether s is a known donation status.
func ValidDonationStatus(s string) bool {
	switch s {
	case DonationPending, DonationCompleted, DonationCancelled:
		return true
	}
	return false
}
