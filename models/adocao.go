package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdocaoStatus enum
type AdocaoStatus string

const (
	AdocaoProposal    AdocaoStatus = "PROPOSAL"
	AdocaoUnderReview AdocaoStatus = "UNDER_REVIEW"
	AdocaoApproved    AdocaoStatus = "APPROVED"
	AdocaoCompleted   AdocaoStatus = "COMPLETED"
	AdocaoRejected    AdocaoStatus = "REJECTED"
	AdocaoFinalized   AdocaoStatus = "FINALIZED"
)

// ParseAdocaoStatus parses a status name against the closed enumeration.
func ParseAdocaoStatus(value string) (AdocaoStatus, bool) {
	switch AdocaoStatus(value) {
	case AdocaoProposal, AdocaoUnderReview, AdocaoApproved, AdocaoCompleted, AdocaoRejected, AdocaoFinalized:
		return AdocaoStatus(value), true
	default:
		return "", false
	}
}

// PracaStatusFor maps an adoption status to the square status it implies.
// PROPOSAL and UNDER_REVIEW put the square in process; APPROVED and
// COMPLETED mark it adopted. Other statuses leave the square untouched.
func PracaStatusFor(status AdocaoStatus) (PracaStatus, bool) {
	switch status {
	case AdocaoProposal, AdocaoUnderReview:
		return PracaInProcess, true
	case AdocaoApproved, AdocaoCompleted:
		return PracaAdopted, true
	default:
		return "", false
	}
}

// Adocao represents a company's proposal to adopt a public square
type Adocao struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartDate          time.Time          `bson:"startDate" json:"startDate"`
	EndDate            *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	ProjectDescription string             `bson:"projectDescription,omitempty" json:"projectDescription,omitempty"`
	Status             AdocaoStatus       `bson:"status" json:"status"`
	Empresa            primitive.ObjectID `bson:"empresa" json:"empresa"`
	Praca              primitive.ObjectID `bson:"praca" json:"praca"`
}
