package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Swap lifecycle statuses
const (
	SwapOpen   = "open"
	SwapClosed = "closed"
)

// Swap represents a plant swap request document in MongoDB. The user
// offers have_* and asks for need_*.
type Swap struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"user" bson:"user"`
	HavePlantName string             `json:"havePlantName" bson:"have_plant_name"`
	HaveQuantity  int64              `json:"haveQuantity" bson:"have_quantity"`
	HaveImage     string             `json:"haveImage,omitempty" bson:"have_image,omitempty"`
	NeedPlantName string             `json:"needPlantName" bson:"need_plant_name"`
	NeedQuantity  int64              `json:"needQuantity" bson:"need_quantity"`
	Status        string             `json:"status" bson:"status"`
	OwnerName     string             `json:"ownerName,omitempty" bson:"owner_name,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ValidSwapStatus reports whether s is a known swap status.
func ValidSwapStatus(s string) bool {
	return s == SwapOpen || s == SwapClosed
}
