// Package repositories holds the store collaborators the services depend
// on, plus their MongoDB implementations.
package repositories

import (
	"context"
	"errors"
	"time"

	"communitex-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrConflict is returned when a write loses against a storage-level
// uniqueness constraint (e.g. a second SUPPORT for the same issue and user
// racing past the application-level check).
var ErrConflict = errors.New("conflicting write rejected by storage constraint")

type IssueRepository interface {
	Save(ctx context.Context, issue models.Issue) (models.Issue, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Issue, error)
	FindAll(ctx context.Context) ([]models.Issue, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Issue, error)
	FindByStatus(ctx context.Context, status models.IssueStatus) ([]models.Issue, error)
	FindUnresolvedByType(ctx context.Context, issueType models.IssueType, excluded []models.IssueStatus) ([]models.Issue, error)
	Update(ctx context.Context, issue models.Issue) error
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InteractionRepository interface {
	// Save inserts the interaction, returning ErrConflict when a SUPPORT or
	// LIKE already exists for the same (issue, user).
	Save(ctx context.Context, interaction models.Interaction) (models.Interaction, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Interaction, error)
	// FindByIssue returns the issue's interactions ordered by creation time,
	// newest first.
	FindByIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Interaction, error)
	// FindByIssueUserType returns nil when no such interaction exists.
	FindByIssueUserType(ctx context.Context, issueID, userID primitive.ObjectID, interactionType models.InteractionType) (*models.Interaction, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error
}

type AdocaoRepository interface {
	Save(ctx context.Context, adocao models.Adocao) (models.Adocao, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Adocao, error)
	FindAll(ctx context.Context) ([]models.Adocao, error)
	Update(ctx context.Context, adocao models.Adocao) error
	FindByStatus(ctx context.Context, status models.AdocaoStatus) ([]models.Adocao, error)
	FindByPeriod(ctx context.Context, start, end time.Time) ([]models.Adocao, error)
	FindByEmpresa(ctx context.Context, empresaID primitive.ObjectID) ([]models.Adocao, error)
	FindByPraca(ctx context.Context, pracaID primitive.ObjectID) ([]models.Adocao, error)
	// FindNearingDeadline selects adoptions whose end date falls in
	// [from, to], optionally restricted to one status.
	FindNearingDeadline(ctx context.Context, from, to time.Time, status *models.AdocaoStatus) ([]models.Adocao, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PracaFilter narrows square listings.
type PracaFilter struct {
	City         string
	Neighborhood string
	Status       *models.PracaStatus
}

type PracaRepository interface {
	Save(ctx context.Context, praca models.Praca) (models.Praca, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Praca, error)
	FindAll(ctx context.Context, filter PracaFilter) ([]models.Praca, error)
	Update(ctx context.Context, praca models.Praca) error
	// SetStatusIfNotAdopted atomically moves the square to status unless it
	// is already ADOPTED, reporting whether the transition happened. This is
	// the serialization point for concurrent adoption attempts.
	SetStatusIfNotAdopted(ctx context.Context, id primitive.ObjectID, status models.PracaStatus) (bool, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PracaStatus) error
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EmpresaRepository interface {
	Save(ctx context.Context, empresa models.Empresa) (models.Empresa, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Empresa, error)
	// FindByRepresentative resolves the company a user acts for.
	FindByRepresentative(ctx context.Context, userID primitive.ObjectID) (models.Empresa, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}
