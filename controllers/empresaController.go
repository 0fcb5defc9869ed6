package controllers

import (
	"net/http"
	"time"

	"communitex-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterEmpresa registers a company represented by the authenticated user
func RegisterEmpresa(c *gin.Context) {
	actingUser, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		LegalName string `json:"legalName" binding:"required"`
		TradeName string `json:"tradeName,omitempty"`
		CNPJ      string `json:"cnpj" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Phone     string `json:"phone,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	empresa, err := empresaRepo.Save(ctx, models.Empresa{
		LegalName:       input.LegalName,
		TradeName:       input.TradeName,
		CNPJ:            input.CNPJ,
		Email:           input.Email,
		Phone:           input.Phone,
		Representatives: []primitive.ObjectID{actingUser.ID},
		CreatedAt:       time.Now(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, empresa)
}

// GetMyEmpresa returns the company the authenticated user represents
func GetMyEmpresa(c *gin.Context) {
	empresa, ok := currentEmpresa(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, empresa)
}
