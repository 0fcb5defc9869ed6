package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Empresa represents a company able to adopt squares. Representatives is
// the list of user ids allowed to act on the company's behalf.
type Empresa struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	LegalName       string               `bson:"legalName" json:"legalName"`
	TradeName       string               `bson:"tradeName,omitempty" json:"tradeName,omitempty"`
	CNPJ            string               `bson:"cnpj" json:"cnpj"`
	Email           string               `bson:"email" json:"email"`
	Phone           string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Representatives []primitive.ObjectID `bson:"representatives" json:"representatives"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
}
