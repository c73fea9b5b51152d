package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellPlant lifecycle statuses
const (
	SellPlantAvailable = "available"
	SellPlantSold      = "sold"
)

// SellPlant represents a plant-for-sale listing document in MongoDB
type SellPlant struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	PlantName string             `json:"plantName" bson:"plant_name"`
	PlantType string             `json:"plantType" bson:"plant_type"`
	Price     float64            `json:"price" bson:"price"`
	Amount    int64              `json:"amount" bson:"amount"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Status    string             `json:"status" bson:"status"`
	OwnerName string             `json:"ownerName,omitempty" bson:"owner_name,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ValidSellPlantStatus reports whether s is a known listing status.
func ValidSellPlantStatus(s string) bool {
	return s == SellPlantAvailable || s == SellPlantSold
}
