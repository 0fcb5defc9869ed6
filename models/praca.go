package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PracaStatus enum. The status is derived from the square's adoptions,
// never edited directly by clients.
type PracaStatus string

const (
	PracaAvailable PracaStatus = "AVAILABLE"
	PracaInProcess PracaStatus = "IN_PROCESS"
	PracaAdopted   PracaStatus = "ADOPTED"
)

// Praca represents a public square open for adoption by companies
type Praca struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Street       string             `bson:"street,omitempty" json:"street,omitempty"`
	Neighborhood string             `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	City         string             `bson:"city" json:"city"`
	Latitude     *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	PhotoURL     *string            `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	AreaM2       float64            `bson:"areaM2" json:"areaM2"`
	Status       PracaStatus        `bson:"status" json:"status"`
	RegisteredBy primitive.ObjectID `bson:"registeredBy,omitempty" json:"registeredBy,omitempty"`
}
