package models_test

import (
	"testing"

	"communitex-be/models"

	"github.com/stretchr/testify/assert"
)

func TestParseIssueStatus(t *testing.T) {
	status, ok := models.ParseIssueStatus("UNDER_REVIEW")
	assert.True(t, ok)
	assert.Equal(t, models.IssueUnderReview, status)

	_, ok = models.ParseIssueStatus("under_review")
	assert.False(t, ok)
	_, ok = models.ParseIssueStatus("DONE")
	assert.False(t, ok)
}

func TestIsUnresolved(t *testing.T) {
	assert.True(t, models.IsUnresolved(models.IssueOpen))
	assert.True(t, models.IsUnresolved(models.IssueUnderReview))
	assert.True(t, models.IsUnresolved(models.IssueInProgress))
	assert.False(t, models.IsUnresolved(models.IssueResolved))
	assert.False(t, models.IsUnresolved(models.IssueRejected))
}

func TestParseIssueType(t *testing.T) {
	issueType, ok := models.ParseIssueType("SANITATION")
	assert.True(t, ok)
	assert.Equal(t, models.Sanitation, issueType)

	_, ok = models.ParseIssueType("GRAFFITI")
	assert.False(t, ok)
}

func TestParseInteractionType(t *testing.T) {
	interactionType, ok := models.ParseInteractionType("LIKE")
	assert.True(t, ok)
	assert.Equal(t, models.Like, interactionType)

	_, ok = models.ParseInteractionType("SHARE")
	assert.False(t, ok)
}

func TestPracaStatusFor(t *testing.T) {
	cases := []struct {
		adocao models.AdocaoStatus
		praca  models.PracaStatus
		mapped bool
	}{
		{models.AdocaoProposal, models.PracaInProcess, true},
		{models.AdocaoUnderReview, models.PracaInProcess, true},
		{models.AdocaoApproved, models.PracaAdopted, true},
		{models.AdocaoCompleted, models.PracaAdopted, true},
		{models.AdocaoRejected, "", false},
		{models.AdocaoFinalized, "", false},
	}
	for _, tc := range cases {
		praca, mapped := models.PracaStatusFor(tc.adocao)
		assert.Equal(t, tc.mapped, mapped, string(tc.adocao))
		if tc.mapped {
			assert.Equal(t, tc.praca, praca, string(tc.adocao))
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	named := models.User{Username: "maria", Name: "Maria Silva"}
	assert.Equal(t, "Maria Silva", named.DisplayName())

	unnamed := models.User{Username: "joao"}
	assert.Equal(t, "joao", unnamed.DisplayName())
}

func TestPasswordHashing(t *testing.T) {
	user := models.User{Password: "s3cret-pass"}
	assert.NoError(t, user.HashPassword())
	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, user.ComparePassword("s3cret-pass"))
	assert.False(t, user.ComparePassword("wrong"))
}
