package controllers

import (
	"net/http"
	"strconv"

	"communitex-be/models"
	"communitex-be/services"

	"github.com/gin-gonic/gin"
)

// CreateIssue handles the creation of a new issue
func CreateIssue(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=150"`
		Description string   `json:"description" binding:"required,max=2000"`
		Latitude    *float64 `json:"latitude" binding:"required"`
		Longitude   *float64 `json:"longitude" binding:"required"`
		PhotoURL    *string  `json:"photoUrl,omitempty"`
		Type        string   `json:"type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := issueService.Create(ctx, services.IssueInput{
		Title:       input.Title,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		PhotoURL:    input.PhotoURL,
		Type:        models.IssueType(input.Type),
	}, actingUser)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues returns summary projections of every issue
func GetAllIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue returns a single issue summary
func GetIssue(c *gin.Context) {
	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := issueService.FindByID(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// GetIssueDetail returns the issue with its full interaction payload
func GetIssueDetail(c *gin.Context) {
	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	detail, err := issueService.FindDetail(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetIssuesByUser retrieves all issues created by the authenticated user
func GetIssuesByUser(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.FindByAuthor(ctx, actingUser.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssuesByProximity returns issues within a radius of a point.
// Defaults to 1000 meters when the radius is absent or invalid.
func GetIssuesByProximity(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.FindByProximity(ctx, lat, lon, radius)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssuesByStatus lists issues currently in one status
func GetIssuesByStatus(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := issueService.FindByStatus(ctx, c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// UpdateIssueStatus overwrites the issue's status
func UpdateIssueStatus(c *gin.Context) {
	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := issueService.UpdateStatus(ctx, issueID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// DeleteIssue allows the author of an issue to delete it together with its
// interactions
func DeleteIssue(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := issueService.Delete(ctx, issueID, actingUser); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// AddInteraction registers a comment, support or like on an issue
func AddInteraction(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Type    string `json:"type" binding:"required"`
		Content string `json:"content,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	interaction, err := issueService.AddInteraction(ctx, issueID, models.InteractionType(input.Type), input.Content, actingUser)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interaction)
}

// RemoveInteraction deletes an interaction authored by the acting user
func RemoveInteraction(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	interactionID, ok := parseObjectID(c, "interactionId")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := issueService.RemoveInteraction(ctx, issueID, interactionID, actingUser); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interaction removed successfully"})
}

// GetInteractions lists an issue's interactions, newest first
func GetInteractions(c *gin.Context) {
	issueID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	interactions, err := issueService.FindInteractions(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interactions)
}
