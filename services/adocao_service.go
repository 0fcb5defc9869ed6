package services

import (
	"context"
	"log"
	"time"

	"communitex-be/apperrors"
	"communitex-be/models"
	"communitex-be/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultDeadlineWindowDays is the nearing-deadline window used when the
	// caller does not provide one.
	DefaultDeadlineWindowDays = 7

	maxProjectDescriptionLength = 1000
)

// AdocaoInput carries the fields of an adoption proposal.
type AdocaoInput struct {
	PracaID            primitive.ObjectID
	StartDate          time.Time
	EndDate            *time.Time
	ProjectDescription string
	Status             models.AdocaoStatus
}

// AdocaoStatusView is the projection returned by status listings, with the
// company and square names resolved.
type AdocaoStatusView struct {
	models.Adocao
	EmpresaName string `json:"empresaName,omitempty"`
	PracaName   string `json:"pracaName,omitempty"`
}

// AdocaoService orchestrates the adoption lifecycle and keeps the square
// status synchronized with its adoptions.
type AdocaoService struct {
	adocoes  repositories.AdocaoRepository
	pracas   repositories.PracaRepository
	empresas repositories.EmpresaRepository
}

func NewAdocaoService(adocoes repositories.AdocaoRepository, pracas repositories.PracaRepository, empresas repositories.EmpresaRepository) *AdocaoService {
	return &AdocaoService{adocoes: adocoes, pracas: pracas, empresas: empresas}
}

// Create registers an adoption proposal by actingEmpresa for a square and
// applies the status mapping to the square. A square already ADOPTED
// rejects new proposals.
func (s *AdocaoService) Create(ctx context.Context, input AdocaoInput, actingEmpresa models.Empresa) (models.Adocao, error) {
	if err := validateAdocaoInput(input); err != nil {
		return models.Adocao{}, err
	}

	praca, err := s.pracas.FindByID(ctx, input.PracaID)
	if err != nil {
		return models.Adocao{}, err
	}

	if praca.Status == models.PracaAdopted {
		return models.Adocao{}, apperrors.Business("this square is already adopted by another company")
	}

	if pracaStatus, mapped := models.PracaStatusFor(input.Status); mapped {
		// Conditional write: a concurrent adoption may have moved the square
		// to ADOPTED after the read above; only one attempt wins.
		ok, err := s.pracas.SetStatusIfNotAdopted(ctx, praca.ID, pracaStatus)
		if err != nil {
			return models.Adocao{}, err
		}
		if !ok {
			return models.Adocao{}, apperrors.Business("this square is already adopted by another company")
		}
	}

	adocao := models.Adocao{
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		ProjectDescription: input.ProjectDescription,
		Status:             input.Status,
		Empresa:            actingEmpresa.ID,
		Praca:              praca.ID,
	}

	saved, err := s.adocoes.Save(ctx, adocao)
	if err != nil {
		return models.Adocao{}, err
	}

	log.Printf("Adoption created with ID: %s for square: %s by company: %s", saved.ID.Hex(), praca.ID.Hex(), actingEmpresa.LegalName)
	return saved, nil
}

func validateAdocaoInput(input AdocaoInput) error {
	if input.PracaID.IsZero() {
		return apperrors.Validation("square id is required")
	}
	if input.StartDate.IsZero() {
		return apperrors.Validation("start date is required")
	}
	if len(input.ProjectDescription) > maxProjectDescriptionLength {
		return apperrors.Validation("project description must be at most %d characters", maxProjectDescriptionLength)
	}
	if _, ok := models.ParseAdocaoStatus(string(input.Status)); !ok {
		return apperrors.Validation("invalid adoption status: %s", input.Status)
	}
	return nil
}

// RegisterInterest records a company's interest in a square as a PROPOSAL
// starting today.
func (s *AdocaoService) RegisterInterest(ctx context.Context, pracaID primitive.ObjectID, proposal string, actingEmpresa models.Empresa) (models.Adocao, error) {
	return s.Create(ctx, AdocaoInput{
		PracaID:            pracaID,
		StartDate:          time.Now(),
		ProjectDescription: proposal,
		Status:             models.AdocaoProposal,
	}, actingEmpresa)
}

// Update overwrites the proposal's date range, description and square
// reference. It is data-only: the square-status mapping is not re-run.
func (s *AdocaoService) Update(ctx context.Context, id primitive.ObjectID, input AdocaoInput) (models.Adocao, error) {
	adocao, err := s.adocoes.FindByID(ctx, id)
	if err != nil {
		return models.Adocao{}, err
	}

	praca, err := s.pracas.FindByID(ctx, input.PracaID)
	if err != nil {
		return models.Adocao{}, err
	}

	adocao.StartDate = input.StartDate
	adocao.EndDate = input.EndDate
	adocao.ProjectDescription = input.ProjectDescription
	adocao.Praca = praca.ID

	if err := s.adocoes.Update(ctx, adocao); err != nil {
		return models.Adocao{}, err
	}
	return adocao, nil
}

// Finalize closes the adoption: status FINALIZED, end date stamped now, and
// the square released back to AVAILABLE.
func (s *AdocaoService) Finalize(ctx context.Context, id primitive.ObjectID) (models.Adocao, error) {
	adocao, err := s.adocoes.FindByID(ctx, id)
	if err != nil {
		return models.Adocao{}, err
	}

	now := time.Now()
	adocao.Status = models.AdocaoFinalized
	adocao.EndDate = &now

	if err := s.pracas.SetStatus(ctx, adocao.Praca, models.PracaAvailable); err != nil {
		return models.Adocao{}, err
	}

	if err := s.adocoes.Update(ctx, adocao); err != nil {
		return models.Adocao{}, err
	}

	log.Printf("Adoption ID: %s finalized, square %s released", id.Hex(), adocao.Praca.Hex())
	return adocao, nil
}

func (s *AdocaoService) FindAll(ctx context.Context) ([]models.Adocao, error) {
	return s.adocoes.FindAll(ctx)
}

func (s *AdocaoService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Adocao, error) {
	return s.adocoes.FindByID(ctx, id)
}

// FindByStatus lists adoptions in one status with company and square names
// resolved.
func (s *AdocaoService) FindByStatus(ctx context.Context, status models.AdocaoStatus) ([]AdocaoStatusView, error) {
	adocoes, err := s.adocoes.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	views := make([]AdocaoStatusView, 0, len(adocoes))
	for _, adocao := range adocoes {
		view := AdocaoStatusView{Adocao: adocao}
		if empresa, err := s.empresas.FindByID(ctx, adocao.Empresa); err == nil {
			view.EmpresaName = empresa.TradeName
		}
		if praca, err := s.pracas.FindByID(ctx, adocao.Praca); err == nil {
			view.PracaName = praca.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// FindByPeriod lists adoptions whose date range falls inside [start, end].
func (s *AdocaoService) FindByPeriod(ctx context.Context, start, end *time.Time) ([]models.Adocao, error) {
	if start == nil || end == nil {
		return nil, apperrors.Business("start and end dates are required")
	}
	if end.Before(*start) {
		return nil, apperrors.Business("the end date cannot be before the start date")
	}
	return s.adocoes.FindByPeriod(ctx, *start, *end)
}

func (s *AdocaoService) FindByEmpresa(ctx context.Context, empresaID primitive.ObjectID) ([]models.Adocao, error) {
	return s.adocoes.FindByEmpresa(ctx, empresaID)
}

func (s *AdocaoService) FindByPraca(ctx context.Context, pracaID primitive.ObjectID) ([]models.Adocao, error) {
	return s.adocoes.FindByPraca(ctx, pracaID)
}

// NearingDeadline lists adoptions whose end date falls within the next
// `days` days, optionally filtered by status. Non-positive day windows
// default to 7.
func (s *AdocaoService) NearingDeadline(ctx context.Context, days int, status *models.AdocaoStatus) ([]models.Adocao, error) {
	if days <= 0 {
		days = DefaultDeadlineWindowDays
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// The window covers the whole final day.
	to := from.AddDate(0, 0, days+1).Add(-time.Nanosecond)

	return s.adocoes.FindNearingDeadline(ctx, from, to, status)
}

// Delete removes an adoption proposal.
func (s *AdocaoService) Delete(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.adocoes.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("adoption not found with ID: %s", id.Hex())
	}
	return s.adocoes.Delete(ctx, id)
}
