package controllers

import (
	"net/http"

	"communitex-be/models"
	"communitex-be/repositories"
	"communitex-be/services"

	"github.com/gin-gonic/gin"
)

// CreatePraca registers a new square, available for adoption
func CreatePraca(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Name         string   `json:"name" binding:"required"`
		Street       string   `json:"street,omitempty"`
		Neighborhood string   `json:"neighborhood,omitempty"`
		City         string   `json:"city" binding:"required"`
		Latitude     *float64 `json:"latitude,omitempty"`
		Longitude    *float64 `json:"longitude,omitempty"`
		Description  string   `json:"description,omitempty" binding:"max=1000"`
		PhotoURL     *string  `json:"photoUrl,omitempty"`
		AreaM2       float64  `json:"areaM2" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	praca, err := pracaService.Create(ctx, services.PracaInput{
		Name:         input.Name,
		Street:       input.Street,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Description:  input.Description,
		PhotoURL:     input.PhotoURL,
		AreaM2:       input.AreaM2,
	}, actingUser)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, praca)
}

// GetAllPracas lists squares, optionally filtered by city, neighborhood
// and status
func GetAllPracas(c *gin.Context) {
	filter := repositories.PracaFilter{
		City:         c.Query("city"),
		Neighborhood: c.Query("neighborhood"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.PracaStatus(raw)
		filter.Status = &status
	}

	ctx, cancel := requestContext()
	defer cancel()

	pracas, err := pracaService.FindAll(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pracas)
}

// GetPraca returns a single square
func GetPraca(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	praca, err := pracaService.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, praca)
}

// GetPracaDetail returns the square with its adoption history
func GetPracaDetail(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	detail, err := pracaService.FindDetail(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdatePraca overwrites the square's descriptive fields
func UpdatePraca(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name         string   `json:"name" binding:"required"`
		Street       string   `json:"street,omitempty"`
		Neighborhood string   `json:"neighborhood,omitempty"`
		City         string   `json:"city" binding:"required"`
		Latitude     *float64 `json:"latitude,omitempty"`
		Longitude    *float64 `json:"longitude,omitempty"`
		Description  string   `json:"description,omitempty" binding:"max=1000"`
		PhotoURL     *string  `json:"photoUrl,omitempty"`
		AreaM2       float64  `json:"areaM2" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	praca, err := pracaService.Update(ctx, id, services.PracaInput{
		Name:         input.Name,
		Street:       input.Street,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Description:  input.Description,
		PhotoURL:     input.PhotoURL,
		AreaM2:       input.AreaM2,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, praca)
}

// DeletePraca removes a square
func DeletePraca(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := pracaService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Square deleted successfully"})
}
