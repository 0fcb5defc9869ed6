package controllers

import (
	"net/http"
	"strconv"
	"time"

	"communitex-be/models"
	"communitex-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type adocaoInputBody struct {
	PracaID            string     `json:"pracaId" binding:"required"`
	StartDate          time.Time  `json:"startDate" binding:"required"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	ProjectDescription string     `json:"projectDescription,omitempty" binding:"max=1000"`
	Status             string     `json:"status" binding:"required"`
}

func (b adocaoInputBody) toInput(c *gin.Context) (services.AdocaoInput, bool) {
	pracaID, err := primitive.ObjectIDFromHex(b.PracaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pracaId"})
		return services.AdocaoInput{}, false
	}
	return services.AdocaoInput{
		PracaID:            pracaID,
		StartDate:          b.StartDate,
		EndDate:            b.EndDate,
		ProjectDescription: b.ProjectDescription,
		Status:             models.AdocaoStatus(b.Status),
	}, true
}

// CreateAdocao registers an adoption proposal for the authenticated
// user's company
func CreateAdocao(c *gin.Context) {
	empresa, ok := currentEmpresa(c)
	if !ok {
		return
	}

	var body adocaoInputBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := body.toInput(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocao, err := adocaoService.Create(ctx, input, empresa)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, adocao)
}

// RegisterInterest records a company's interest in adopting a square
func RegisterInterest(c *gin.Context) {
	empresa, ok := currentEmpresa(c)
	if !ok {
		return
	}

	var input struct {
		PracaID  string `json:"pracaId" binding:"required"`
		Proposal string `json:"proposal" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pracaID, err := primitive.ObjectIDFromHex(input.PracaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pracaId"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocao, err := adocaoService.RegisterInterest(ctx, pracaID, input.Proposal, empresa)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, adocao)
}

// GetAllAdocoes lists every adoption proposal
func GetAllAdocoes(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	adocoes, err := adocaoService.FindAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocoes)
}

// GetAdocao returns a single adoption proposal
func GetAdocao(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocao, err := adocaoService.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocao)
}

// UpdateAdocao overwrites the proposal's dates, description and square
func UpdateAdocao(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var body adocaoInputBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := body.toInput(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocao, err := adocaoService.Update(ctx, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocao)
}

// FinalizeAdocao closes the adoption and releases the square
func FinalizeAdocao(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocao, err := adocaoService.Finalize(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocao)
}

// GetAdocoesByStatus lists adoptions in one status
func GetAdocoesByStatus(c *gin.Context) {
	status, ok := models.ParseAdocaoStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	views, err := adocaoService.FindByStatus(ctx, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetAdocoesByPeriod lists adoptions inside a date range
func GetAdocoesByPeriod(c *gin.Context) {
	start := parseDateQuery(c, "start")
	end := parseDateQuery(c, "end")

	ctx, cancel := requestContext()
	defer cancel()

	adocoes, err := adocaoService.FindByPeriod(ctx, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocoes)
}

func parseDateQuery(c *gin.Context, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}

// GetMyAdocoes lists the proposals of the authenticated user's company
func GetMyAdocoes(c *gin.Context) {
	empresa, ok := currentEmpresa(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocoes, err := adocaoService.FindByEmpresa(ctx, empresa.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocoes)
}

// GetAdocoesByPraca lists a square's adoption proposals
func GetAdocoesByPraca(c *gin.Context) {
	pracaID, ok := parseObjectID(c, "pracaId")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocoes, err := adocaoService.FindByPraca(ctx, pracaID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocoes)
}

// GetAdocoesNearingDeadline lists adoptions whose end date falls within the
// next N days (default 7), optionally filtered by status
func GetAdocoesNearingDeadline(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	var status *models.AdocaoStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := models.ParseAdocaoStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = &parsed
	}

	ctx, cancel := requestContext()
	defer cancel()

	adocoes, err := adocaoService.NearingDeadline(ctx, days, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, adocoes)
}

// DeleteAdocao removes an adoption proposal
func DeleteAdocao(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := adocaoService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adoption deleted successfully"})
}
