package services

import (
	"context"
	"log"
	"strings"

	"communitex-be/apperrors"
	"communitex-be/models"
	"communitex-be/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PracaInput carries the editable fields of a square.
type PracaInput struct {
	Name         string
	Street       string
	Neighborhood string
	City         string
	Latitude     *float64
	Longitude    *float64
	Description  string
	PhotoURL     *string
	AreaM2       float64
}

// AdocaoHistoryEntry is one past or present adoption on a square's detail view.
type AdocaoHistoryEntry struct {
	EmpresaID          primitive.ObjectID  `json:"empresaId"`
	EmpresaName        string              `json:"empresaName,omitempty"`
	ProjectDescription string              `json:"projectDescription,omitempty"`
	Status             models.AdocaoStatus `json:"status"`
}

// PracaDetail is a square plus its adoption history.
type PracaDetail struct {
	models.Praca
	Adoptions []AdocaoHistoryEntry `json:"adoptions"`
}

// PracaService manages square registration and lookups. Square status is
// never set directly here beyond the initial AVAILABLE; transitions belong
// to AdocaoService.
type PracaService struct {
	pracas   repositories.PracaRepository
	adocoes  repositories.AdocaoRepository
	empresas repositories.EmpresaRepository
}

func NewPracaService(pracas repositories.PracaRepository, adocoes repositories.AdocaoRepository, empresas repositories.EmpresaRepository) *PracaService {
	return &PracaService{pracas: pracas, adocoes: adocoes, empresas: empresas}
}

// Create registers a new square as AVAILABLE, recorded by actingUser.
func (s *PracaService) Create(ctx context.Context, input PracaInput, actingUser models.User) (models.Praca, error) {
	if err := validatePracaInput(input); err != nil {
		return models.Praca{}, err
	}

	praca := models.Praca{
		Name:         input.Name,
		Street:       input.Street,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Description:  input.Description,
		PhotoURL:     input.PhotoURL,
		AreaM2:       input.AreaM2,
		Status:       models.PracaAvailable,
		RegisteredBy: actingUser.ID,
	}

	saved, err := s.pracas.Save(ctx, praca)
	if err != nil {
		return models.Praca{}, err
	}

	log.Printf("Square created with ID: %s by user: %s", saved.ID.Hex(), actingUser.Username)
	return saved, nil
}

func validatePracaInput(input PracaInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return apperrors.Validation("city is required")
	}
	if len(input.Description) > maxProjectDescriptionLength {
		return apperrors.Validation("description must be at most %d characters", maxProjectDescriptionLength)
	}
	return nil
}

func (s *PracaService) FindAll(ctx context.Context, filter repositories.PracaFilter) ([]models.Praca, error) {
	return s.pracas.FindAll(ctx, filter)
}

func (s *PracaService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Praca, error) {
	return s.pracas.FindByID(ctx, id)
}

// FindDetail returns the square with its adoption history.
func (s *PracaService) FindDetail(ctx context.Context, id primitive.ObjectID) (PracaDetail, error) {
	praca, err := s.pracas.FindByID(ctx, id)
	if err != nil {
		return PracaDetail{}, err
	}

	adocoes, err := s.adocoes.FindByPraca(ctx, id)
	if err != nil {
		return PracaDetail{}, err
	}

	detail := PracaDetail{Praca: praca, Adoptions: make([]AdocaoHistoryEntry, 0, len(adocoes))}
	for _, adocao := range adocoes {
		entry := AdocaoHistoryEntry{
			EmpresaID:          adocao.Empresa,
			ProjectDescription: adocao.ProjectDescription,
			Status:             adocao.Status,
		}
		if empresa, err := s.empresas.FindByID(ctx, adocao.Empresa); err == nil {
			entry.EmpresaName = empresa.LegalName
		}
		detail.Adoptions = append(detail.Adoptions, entry)
	}
	return detail, nil
}

// Update overwrites the square's descriptive fields. Status and the
// registering user are preserved.
func (s *PracaService) Update(ctx context.Context, id primitive.ObjectID, input PracaInput) (models.Praca, error) {
	praca, err := s.pracas.FindByID(ctx, id)
	if err != nil {
		return models.Praca{}, err
	}
	if err := validatePracaInput(input); err != nil {
		return models.Praca{}, err
	}

	praca.Name = input.Name
	praca.Street = input.Street
	praca.Neighborhood = input.Neighborhood
	praca.City = input.City
	praca.Latitude = input.Latitude
	praca.Longitude = input.Longitude
	praca.Description = input.Description
	praca.PhotoURL = input.PhotoURL
	praca.AreaM2 = input.AreaM2

	if err := s.pracas.Update(ctx, praca); err != nil {
		return models.Praca{}, err
	}
	return praca, nil
}

func (s *PracaService) Delete(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.pracas.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("square not found with ID: %s", id.Hex())
	}
	return s.pracas.Delete(ctx, id)
}
