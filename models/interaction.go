package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InteractionType enum
type InteractionType string

const (
	Comment InteractionType = "COMMENT"
	Support InteractionType = "SUPPORT"
	Like    InteractionType = "LIKE"
)

// ParseInteractionType parses a type name against the closed enumeration.
func ParseInteractionType(value string) (InteractionType, bool) {
	switch InteractionType(value) {
	case Comment, Support, Like:
		return InteractionType(value), true
	default:
		return "", false
	}
}

// Interaction represents a comment, support or like attached to an issue
type Interaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Issue     primitive.ObjectID `bson:"issue" json:"issue"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Type      InteractionType    `bson:"type" json:"type"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureInteractionIndex creates a unique compound index for
// (issue, user, type), restricted to SUPPORT and LIKE interactions.
// Comments stay unlimited; the index serializes concurrent support/like
// inserts at the storage layer so the uniqueness rule holds across
// multiple server instances.
func EnsureInteractionIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "issue", Value: 1}, {Key: "user", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"type": bson.M{"$in": []InteractionType{Support, Like}},
			}),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
