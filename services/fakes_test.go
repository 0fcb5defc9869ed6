package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"communitex-be/apperrors"
	"communitex-be/models"
	"communitex-be/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the Mongo repositories. They replicate the
// storage-level behaviors the services rely on: the SUPPORT/LIKE
// uniqueness constraint and the conditional square-status write.

type fakeIssueRepo struct {
	mu     sync.Mutex
	issues map[primitive.ObjectID]models.Issue
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[primitive.ObjectID]models.Issue)}
}

func (r *fakeIssueRepo) Save(_ context.Context, issue models.Issue) (models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	r.issues[issue.ID] = issue
	return issue, nil
}

func (r *fakeIssueRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return models.Issue{}, apperrors.NotFound("issue not found with ID: %s", id.Hex())
	}
	return issue, nil
}

func (r *fakeIssueRepo) FindAll(_ context.Context) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Issue, 0, len(r.issues))
	for _, issue := range r.issues {
		all = append(all, issue)
	}
	return all, nil
}

func (r *fakeIssueRepo) FindByAuthor(_ context.Context, authorID primitive.ObjectID) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Issue
	for _, issue := range r.issues {
		if issue.CreatedBy == authorID {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}

func (r *fakeIssueRepo) FindByStatus(_ context.Context, status models.IssueStatus) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Issue
	for _, issue := range r.issues {
		if issue.Status == status {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}

func (r *fakeIssueRepo) FindUnresolvedByType(_ context.Context, issueType models.IssueType, excluded []models.IssueStatus) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Issue
	for _, issue := range r.issues {
		if issue.Type != issueType {
			continue
		}
		isExcluded := false
		for _, status := range excluded {
			if issue.Status == status {
				isExcluded = true
				break
			}
		}
		if !isExcluded {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}

func (r *fakeIssueRepo) Update(_ context.Context, issue models.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[issue.ID]; !ok {
		return apperrors.NotFound("issue not found with ID: %s", issue.ID.Hex())
	}
	r.issues[issue.ID] = issue
	return nil
}

func (r *fakeIssueRepo) ExistsByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.issues[id]
	return ok, nil
}

func (r *fakeIssueRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.issues, id)
	return nil
}

type fakeInteractionRepo struct {
	mu           sync.Mutex
	interactions map[primitive.ObjectID]models.Interaction
	// forceConflict makes the next Save fail the way the unique index does
	// when a concurrent insert won the race.
	forceConflict bool
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{interactions: make(map[primitive.ObjectID]models.Interaction)}
}

func (r *fakeInteractionRepo) Save(_ context.Context, interaction models.Interaction) (models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceConflict {
		r.forceConflict = false
		return models.Interaction{}, repositories.ErrConflict
	}
	if interaction.Type == models.Support || interaction.Type == models.Like {
		for _, existing := range r.interactions {
			if existing.Issue == interaction.Issue && existing.User == interaction.User && existing.Type == interaction.Type {
				return models.Interaction{}, repositories.ErrConflict
			}
		}
	}
	if interaction.ID.IsZero() {
		interaction.ID = primitive.NewObjectID()
	}
	r.interactions[interaction.ID] = interaction
	return interaction, nil
}

func (r *fakeInteractionRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	interaction, ok := r.interactions[id]
	if !ok {
		return models.Interaction{}, apperrors.NotFound("interaction not found with ID: %s", id.Hex())
	}
	return interaction, nil
}

func (r *fakeInteractionRepo) FindByIssue(_ context.Context, issueID primitive.ObjectID) ([]models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Interaction
	for _, interaction := range r.interactions {
		if interaction.Issue == issueID {
			matched = append(matched, interaction)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *fakeInteractionRepo) FindByIssueUserType(_ context.Context, issueID, userID primitive.ObjectID, interactionType models.InteractionType) (*models.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, interaction := range r.interactions {
		if interaction.Issue == issueID && interaction.User == userID && interaction.Type == interactionType {
			found := interaction
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeInteractionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.interactions, id)
	return nil
}

func (r *fakeInteractionRepo) DeleteByIssue(_ context.Context, issueID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, interaction := range r.interactions {
		if interaction.Issue == issueID {
			delete(r.interactions, id)
		}
	}
	return nil
}

type fakeAdocaoRepo struct {
	mu      sync.Mutex
	adocoes map[primitive.ObjectID]models.Adocao
}

func newFakeAdocaoRepo() *fakeAdocaoRepo {
	return &fakeAdocaoRepo{adocoes: make(map[primitive.ObjectID]models.Adocao)}
}

func (r *fakeAdocaoRepo) Save(_ context.Context, adocao models.Adocao) (models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if adocao.ID.IsZero() {
		adocao.ID = primitive.NewObjectID()
	}
	r.adocoes[adocao.ID] = adocao
	return adocao, nil
}

func (r *fakeAdocaoRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	adocao, ok := r.adocoes[id]
	if !ok {
		return models.Adocao{}, apperrors.NotFound("adoption not found with ID: %s", id.Hex())
	}
	return adocao, nil
}

func (r *fakeAdocaoRepo) FindAll(_ context.Context) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Adocao, 0, len(r.adocoes))
	for _, adocao := range r.adocoes {
		all = append(all, adocao)
	}
	return all, nil
}

func (r *fakeAdocaoRepo) Update(_ context.Context, adocao models.Adocao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adocoes[adocao.ID]; !ok {
		return apperrors.NotFound("adoption not found with ID: %s", adocao.ID.Hex())
	}
	r.adocoes[adocao.ID] = adocao
	return nil
}

func (r *fakeAdocaoRepo) FindByStatus(_ context.Context, status models.AdocaoStatus) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Adocao
	for _, adocao := range r.adocoes {
		if adocao.Status == status {
			matched = append(matched, adocao)
		}
	}
	return matched, nil
}

func (r *fakeAdocaoRepo) FindByPeriod(_ context.Context, start, end time.Time) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Adocao
	for _, adocao := range r.adocoes {
		if adocao.EndDate == nil {
			continue
		}
		if !adocao.StartDate.Before(start) && !adocao.EndDate.After(end) {
			matched = append(matched, adocao)
		}
	}
	return matched, nil
}

func (r *fakeAdocaoRepo) FindByEmpresa(_ context.Context, empresaID primitive.ObjectID) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Adocao
	for _, adocao := range r.adocoes {
		if adocao.Empresa == empresaID {
			matched = append(matched, adocao)
		}
	}
	return matched, nil
}

func (r *fakeAdocaoRepo) FindByPraca(_ context.Context, pracaID primitive.ObjectID) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Adocao
	for _, adocao := range r.adocoes {
		if adocao.Praca == pracaID {
			matched = append(matched, adocao)
		}
	}
	return matched, nil
}

func (r *fakeAdocaoRepo) FindNearingDeadline(_ context.Context, from, to time.Time, status *models.AdocaoStatus) ([]models.Adocao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Adocao
	for _, adocao := range r.adocoes {
		if adocao.EndDate == nil {
			continue
		}
		if adocao.EndDate.Before(from) || adocao.EndDate.After(to) {
			continue
		}
		if status != nil && adocao.Status != *status {
			continue
		}
		matched = append(matched, adocao)
	}
	return matched, nil
}

func (r *fakeAdocaoRepo) ExistsByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.adocoes[id]
	return ok, nil
}

func (r *fakeAdocaoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.adocoes, id)
	return nil
}

type fakePracaRepo struct {
	mu     sync.Mutex
	pracas map[primitive.ObjectID]models.Praca
	// forceAdopted makes the next conditional write lose, as if a
	// concurrent adoption moved the square to ADOPTED first.
	forceAdopted bool
}

func newFakePracaRepo() *fakePracaRepo {
	return &fakePracaRepo{pracas: make(map[primitive.ObjectID]models.Praca)}
}

func (r *fakePracaRepo) Save(_ context.Context, praca models.Praca) (models.Praca, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if praca.ID.IsZero() {
		praca.ID = primitive.NewObjectID()
	}
	r.pracas[praca.ID] = praca
	return praca, nil
}

func (r *fakePracaRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Praca, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	praca, ok := r.pracas[id]
	if !ok {
		return models.Praca{}, apperrors.NotFound("square not found with ID: %s", id.Hex())
	}
	return praca, nil
}

func (r *fakePracaRepo) FindAll(_ context.Context, filter repositories.PracaFilter) ([]models.Praca, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Praca
	for _, praca := range r.pracas {
		if filter.City != "" && praca.City != filter.City {
			continue
		}
		if filter.Neighborhood != "" && praca.Neighborhood != filter.Neighborhood {
			continue
		}
		if filter.Status != nil && praca.Status != *filter.Status {
			continue
		}
		matched = append(matched, praca)
	}
	return matched, nil
}

func (r *fakePracaRepo) Update(_ context.Context, praca models.Praca) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pracas[praca.ID]; !ok {
		return apperrors.NotFound("square not found with ID: %s", praca.ID.Hex())
	}
	r.pracas[praca.ID] = praca
	return nil
}

func (r *fakePracaRepo) SetStatusIfNotAdopted(_ context.Context, id primitive.ObjectID, status models.PracaStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceAdopted {
		r.forceAdopted = false
		return false, nil
	}
	praca, ok := r.pracas[id]
	if !ok || praca.Status == models.PracaAdopted {
		return false, nil
	}
	praca.Status = status
	r.pracas[id] = praca
	return true, nil
}

func (r *fakePracaRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.PracaStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	praca, ok := r.pracas[id]
	if !ok {
		return apperrors.NotFound("square not found with ID: %s", id.Hex())
	}
	praca.Status = status
	r.pracas[id] = praca
	return nil
}

func (r *fakePracaRepo) ExistsByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pracas[id]
	return ok, nil
}

func (r *fakePracaRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pracas, id)
	return nil
}

type fakeEmpresaRepo struct {
	mu       sync.Mutex
	empresas map[primitive.ObjectID]models.Empresa
}

func newFakeEmpresaRepo() *fakeEmpresaRepo {
	return &fakeEmpresaRepo{empresas: make(map[primitive.ObjectID]models.Empresa)}
}

func (r *fakeEmpresaRepo) Save(_ context.Context, empresa models.Empresa) (models.Empresa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if empresa.ID.IsZero() {
		empresa.ID = primitive.NewObjectID()
	}
	r.empresas[empresa.ID] = empresa
	return empresa, nil
}

func (r *fakeEmpresaRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Empresa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	empresa, ok := r.empresas[id]
	if !ok {
		return models.Empresa{}, apperrors.NotFound("company not found with ID: %s", id.Hex())
	}
	return empresa, nil
}

func (r *fakeEmpresaRepo) FindByRepresentative(_ context.Context, userID primitive.ObjectID) (models.Empresa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, empresa := range r.empresas {
		for _, rep := range empresa.Representatives {
			if rep == userID {
				return empresa, nil
			}
		}
	}
	return models.Empresa{}, apperrors.NotFound("no company associated with user: %s", userID.Hex())
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *fakeUserRepo) add(user models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return models.User{}, apperrors.NotFound("user not found with ID: %s", id.Hex())
	}
	return user, nil
}
