// Package services holds the lifecycle cores behind the HTTP controllers.
// Services receive the acting user or company explicitly; nothing in here
// reads authentication state from ambient context.
package services

import (
	"context"
	"log"
	"strings"
	"time"

	"communitex-be/apperrors"
	"communitex-be/geo"
	"communitex-be/models"
	"communitex-be/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DuplicateRadiusMeters is how close an unresolved issue of the same
	// type must be for a new report to count as a duplicate.
	DuplicateRadiusMeters = 20.0

	// DefaultProximityRadiusMeters is used when a proximity search does not
	// specify a radius.
	DefaultProximityRadiusMeters = 1000.0

	maxTitleLength       = 150
	maxDescriptionLength = 2000
	maxPhotoURLLength    = 500
	maxContentLength     = 1000
)

// IssueInput carries the fields needed to report a new issue.
type IssueInput struct {
	Title       string
	Description string
	Latitude    *float64
	Longitude   *float64
	PhotoURL    *string
	Type        models.IssueType
}

// InteractionResponse is an interaction enriched with the acting user's
// display name.
type InteractionResponse struct {
	ID        primitive.ObjectID     `json:"id"`
	Type      models.InteractionType `json:"type"`
	Content   string                 `json:"content,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UserID    primitive.ObjectID     `json:"userId"`
	UserName  string                 `json:"userName"`
}

// IssueSummary is the light projection used by listings.
type IssueSummary struct {
	models.Issue
	AuthorName        string `json:"authorName"`
	TotalInteractions int    `json:"totalInteractions"`
	TotalSupports     int    `json:"totalSupports"`
}

// IssueDetail is the full projection with the interaction payload.
type IssueDetail struct {
	models.Issue
	AuthorName    string                `json:"authorName"`
	TotalSupports int                   `json:"totalSupports"`
	TotalLikes    int                   `json:"totalLikes"`
	Interactions  []InteractionResponse `json:"interactions"`
}

// IssueService orchestrates issue creation, duplicate detection, status
// transitions and the interaction subsystem.
type IssueService struct {
	issues       repositories.IssueRepository
	interactions repositories.InteractionRepository
	users        repositories.UserRepository
}

func NewIssueService(issues repositories.IssueRepository, interactions repositories.InteractionRepository, users repositories.UserRepository) *IssueService {
	return &IssueService{issues: issues, interactions: interactions, users: users}
}

// Create validates the input, rejects near-duplicates and persists the
// issue with status OPEN, authored by actingUser.
func (s *IssueService) Create(ctx context.Context, input IssueInput, actingUser models.User) (models.Issue, error) {
	if err := validateIssueInput(input); err != nil {
		return models.Issue{}, err
	}

	if err := s.checkForDuplicate(ctx, input.Type, *input.Latitude, *input.Longitude); err != nil {
		return models.Issue{}, err
	}

	issue := models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		PhotoURL:    input.PhotoURL,
		Status:      models.IssueOpen,
		Type:        input.Type,
		CreatedBy:   actingUser.ID,
		CreatedAt:   time.Now(),
	}

	saved, err := s.issues.Save(ctx, issue)
	if err != nil {
		return models.Issue{}, err
	}

	log.Printf("Issue created with ID: %s by user: %s", saved.ID.Hex(), actingUser.Username)
	return saved, nil
}

func validateIssueInput(input IssueInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.Validation("title is required")
	}
	if len(input.Title) > maxTitleLength {
		return apperrors.Validation("title must be at most %d characters", maxTitleLength)
	}
	if strings.TrimSpace(input.Description) == "" {
		return apperrors.Validation("description is required")
	}
	if len(input.Description) > maxDescriptionLength {
		return apperrors.Validation("description must be at most %d characters", maxDescriptionLength)
	}
	if input.Latitude == nil || input.Longitude == nil {
		return apperrors.Validation("latitude and longitude are required")
	}
	if input.PhotoURL != nil && len(*input.PhotoURL) > maxPhotoURLLength {
		return apperrors.Validation("photo URL must be at most %d characters", maxPhotoURLLength)
	}
	if _, ok := models.ParseIssueType(string(input.Type)); !ok {
		return apperrors.Validation("invalid issue type: %s", input.Type)
	}
	return nil
}

// checkForDuplicate scans unresolved issues of the candidate's type and
// rejects the candidate when one lies within DuplicateRadiusMeters. The
// first match found wins; no closest-match guarantee.
func (s *IssueService) checkForDuplicate(ctx context.Context, issueType models.IssueType, lat, lon float64) error {
	unresolved, err := s.issues.FindUnresolvedByType(ctx, issueType, models.ResolvedStatuses)
	if err != nil {
		return err
	}

	for _, existing := range unresolved {
		distance := geo.Distance(lat, lon, existing.Latitude, existing.Longitude)
		if distance <= DuplicateRadiusMeters {
			return &apperrors.DuplicateIssueError{
				IssueID:        existing.ID,
				IssueType:      string(issueType),
				DistanceMeters: distance,
			}
		}
	}
	return nil
}

// FindByProximity returns issues of any status within radiusMeters of the
// given point. A non-positive radius falls back to the default of 1000m.
func (s *IssueService) FindByProximity(ctx context.Context, lat, lon, radiusMeters float64) ([]models.Issue, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultProximityRadiusMeters
	}

	all, err := s.issues.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]models.Issue, 0, len(all))
	for _, issue := range all {
		if geo.Distance(lat, lon, issue.Latitude, issue.Longitude) <= radiusMeters {
			nearby = append(nearby, issue)
		}
	}
	return nearby, nil
}

// UpdateStatus parses statusName against the closed enumeration and
// overwrites the issue's status. Any status may follow any other.
func (s *IssueService) UpdateStatus(ctx context.Context, id primitive.ObjectID, statusName string) (models.Issue, error) {
	issue, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}

	status, ok := models.ParseIssueStatus(strings.ToUpper(statusName))
	if !ok {
		return models.Issue{}, apperrors.Business("invalid status: %s", statusName)
	}

	issue.Status = status
	if err := s.issues.Update(ctx, issue); err != nil {
		return models.Issue{}, err
	}

	log.Printf("Issue ID: %s status updated to: %s", id.Hex(), status)
	return issue, nil
}

// AddInteraction validates the interaction against the per-user uniqueness
// and comment-content rules, persists it and returns it enriched with the
// actor's display name.
func (s *IssueService) AddInteraction(ctx context.Context, issueID primitive.ObjectID, interactionType models.InteractionType, content string, actingUser models.User) (InteractionResponse, error) {
	if _, err := s.issues.FindByID(ctx, issueID); err != nil {
		return InteractionResponse{}, err
	}

	if _, ok := models.ParseInteractionType(string(interactionType)); !ok {
		return InteractionResponse{}, apperrors.Validation("invalid interaction type: %s", interactionType)
	}

	if interactionType == models.Support || interactionType == models.Like {
		existing, err := s.interactions.FindByIssueUserType(ctx, issueID, actingUser.ID, interactionType)
		if err != nil {
			return InteractionResponse{}, err
		}
		if existing != nil {
			return InteractionResponse{}, duplicateInteractionError(interactionType)
		}
	}

	if interactionType == models.Comment && strings.TrimSpace(content) == "" {
		return InteractionResponse{}, apperrors.Business("content is required for comments")
	}
	if len(content) > maxContentLength {
		return InteractionResponse{}, apperrors.Validation("content must be at most %d characters", maxContentLength)
	}

	interaction := models.Interaction{
		Issue:     issueID,
		User:      actingUser.ID,
		Type:      interactionType,
		Content:   content,
		CreatedAt: time.Now(),
	}

	saved, err := s.interactions.Save(ctx, interaction)
	if err != nil {
		// A concurrent request from the same user may slip past the check
		// above; the storage-level uniqueness constraint catches it.
		if err == repositories.ErrConflict {
			return InteractionResponse{}, duplicateInteractionError(interactionType)
		}
		return InteractionResponse{}, err
	}

	log.Printf("Interaction %s added to issue ID: %s by user: %s", interactionType, issueID.Hex(), actingUser.Username)
	return s.toInteractionResponse(ctx, saved), nil
}

func duplicateInteractionError(interactionType models.InteractionType) error {
	return apperrors.Business("you already registered a %s for this issue", strings.ToLower(string(interactionType)))
}

// RemoveInteraction deletes an interaction, provided it belongs to the
// given issue and actingUser is its original author.
func (s *IssueService) RemoveInteraction(ctx context.Context, issueID, interactionID primitive.ObjectID, actingUser models.User) error {
	exists, err := s.issues.ExistsByID(ctx, issueID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("issue not found with ID: %s", issueID.Hex())
	}

	interaction, err := s.interactions.FindByID(ctx, interactionID)
	if err != nil {
		return err
	}

	if interaction.Issue != issueID {
		return apperrors.Business("the interaction does not belong to the given issue")
	}

	if interaction.User != actingUser.ID {
		return apperrors.Forbidden("you are not allowed to remove this interaction")
	}

	if err := s.interactions.Delete(ctx, interactionID); err != nil {
		return err
	}

	log.Printf("Interaction ID: %s removed from issue ID: %s by user: %s", interactionID.Hex(), issueID.Hex(), actingUser.Username)
	return nil
}

// FindDetail returns the issue with its full interaction list and the
// SUPPORT and LIKE counts.
func (s *IssueService) FindDetail(ctx context.Context, issueID primitive.ObjectID) (IssueDetail, error) {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return IssueDetail{}, err
	}

	interactions, err := s.interactions.FindByIssue(ctx, issueID)
	if err != nil {
		return IssueDetail{}, err
	}

	detail := IssueDetail{
		Issue:        issue,
		AuthorName:   s.resolveUserName(ctx, issue.CreatedBy),
		Interactions: make([]InteractionResponse, 0, len(interactions)),
	}
	for _, interaction := range interactions {
		switch interaction.Type {
		case models.Support:
			detail.TotalSupports++
		case models.Like:
			detail.TotalLikes++
		}
		detail.Interactions = append(detail.Interactions, s.toInteractionResponse(ctx, interaction))
	}
	return detail, nil
}

// FindInteractions lists an issue's interactions, newest first.
func (s *IssueService) FindInteractions(ctx context.Context, issueID primitive.ObjectID) ([]InteractionResponse, error) {
	exists, err := s.issues.ExistsByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("issue not found with ID: %s", issueID.Hex())
	}

	interactions, err := s.interactions.FindByIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	responses := make([]InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		responses = append(responses, s.toInteractionResponse(ctx, interaction))
	}
	return responses, nil
}

// FindByID returns a single issue as a summary projection.
func (s *IssueService) FindByID(ctx context.Context, issueID primitive.ObjectID) (IssueSummary, error) {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return IssueSummary{}, err
	}
	return s.toSummary(ctx, issue)
}

// FindAll lists every issue as summary projections.
func (s *IssueService) FindAll(ctx context.Context) ([]IssueSummary, error) {
	issues, err := s.issues.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(ctx, issues)
}

// FindByStatus lists the issues currently in one status.
func (s *IssueService) FindByStatus(ctx context.Context, statusName string) ([]IssueSummary, error) {
	status, ok := models.ParseIssueStatus(strings.ToUpper(statusName))
	if !ok {
		return nil, apperrors.Business("invalid status: %s", statusName)
	}

	issues, err := s.issues.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(ctx, issues)
}

// FindByAuthor lists the issues reported by one user.
func (s *IssueService) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]IssueSummary, error) {
	issues, err := s.issues.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(ctx, issues)
}

// Delete removes an issue and all of its interactions. Only the author may
// delete their report.
func (s *IssueService) Delete(ctx context.Context, issueID primitive.ObjectID, actingUser models.User) error {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return err
	}
	if issue.CreatedBy != actingUser.ID {
		return apperrors.Forbidden("you are not allowed to delete this issue")
	}

	if err := s.issues.Delete(ctx, issueID); err != nil {
		return err
	}
	return s.interactions.DeleteByIssue(ctx, issueID)
}

func (s *IssueService) toSummaries(ctx context.Context, issues []models.Issue) ([]IssueSummary, error) {
	summaries := make([]IssueSummary, 0, len(issues))
	for _, issue := range issues {
		summary, err := s.toSummary(ctx, issue)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *IssueService) toSummary(ctx context.Context, issue models.Issue) (IssueSummary, error) {
	interactions, err := s.interactions.FindByIssue(ctx, issue.ID)
	if err != nil {
		return IssueSummary{}, err
	}

	summary := IssueSummary{
		Issue:             issue,
		AuthorName:        s.resolveUserName(ctx, issue.CreatedBy),
		TotalInteractions: len(interactions),
	}
	for _, interaction := range interactions {
		if interaction.Type == models.Support {
			summary.TotalSupports++
		}
	}
	return summary, nil
}

func (s *IssueService) toInteractionResponse(ctx context.Context, interaction models.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:        interaction.ID,
		Type:      interaction.Type,
		Content:   interaction.Content,
		CreatedAt: interaction.CreatedAt,
		UserID:    interaction.User,
		UserName:  s.resolveUserName(ctx, interaction.User),
	}
}

func (s *IssueService) resolveUserName(ctx context.Context, userID primitive.ObjectID) string {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.DisplayName()
}
