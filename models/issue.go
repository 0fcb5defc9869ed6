package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueType enum
type IssueType string

const (
	Pothole    IssueType = "POTHOLE"
	Lighting   IssueType = "LIGHTING"
	Trash      IssueType = "TRASH"
	Sanitation IssueType = "SANITATION"
	OtherIssue IssueType = "OTHER"
)

// IssueStatus enum
type IssueStatus string

const (
	IssueOpen        IssueStatus = "OPEN"
	IssueUnderReview IssueStatus = "UNDER_REVIEW"
	IssueInProgress  IssueStatus = "IN_PROGRESS"
	IssueResolved    IssueStatus = "RESOLVED"
	IssueRejected    IssueStatus = "REJECTED"
)

// ResolvedStatuses are the statuses excluded from duplicate detection.
// An issue is "unresolved" when its status is in none of these.
var ResolvedStatuses = []IssueStatus{IssueResolved, IssueRejected}

// IsUnresolved reports whether an issue in the given status still counts
// against new reports of the same type.
func IsUnresolved(status IssueStatus) bool {
	for _, s := range ResolvedStatuses {
		if status == s {
			return false
		}
	}
	return true
}

// ParseIssueStatus parses a status name against the closed enumeration.
func ParseIssueStatus(value string) (IssueStatus, bool) {
	switch IssueStatus(value) {
	case IssueOpen, IssueUnderReview, IssueInProgress, IssueResolved, IssueRejected:
		return IssueStatus(value), true
	default:
		return "", false
	}
}

// ParseIssueType parses a type name against the closed enumeration.
func ParseIssueType(value string) (IssueType, bool) {
	switch IssueType(value) {
	case Pothole, Lighting, Trash, Sanitation, OtherIssue:
		return IssueType(value), true
	default:
		return "", false
	}
}

// Issue represents a community-reported problem tied to a geographic point
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Latitude    float64            `bson:"latitude" json:"latitude"`
	Longitude   float64            `bson:"longitude" json:"longitude"`
	PhotoURL    *string            `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Status      IssueStatus        `bson:"status" json:"status"`
	Type        IssueType          `bson:"type" json:"type"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
