package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"communitex-be/apperrors"
	"communitex-be/config"
	"communitex-be/models"
	"communitex-be/repositories"
	"communitex-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	issueService  *services.IssueService
	adocaoService *services.AdocaoService
	pracaService  *services.PracaService

	userRepo    repositories.UserRepository
	empresaRepo repositories.EmpresaRepository
)

// Init wires the services to their MongoDB repositories. Must run after
// the environment is loaded and before any route is served.
func Init() {
	issues := repositories.NewMongoIssueRepository(config.GetCollection("issues"))
	interactions := repositories.NewMongoInteractionRepository(config.GetCollection("interactions"))
	adocoes := repositories.NewMongoAdocaoRepository(config.GetCollection("adocoes"))
	pracas := repositories.NewMongoPracaRepository(config.GetCollection("pracas"))
	empresas := repositories.NewMongoEmpresaRepository(config.GetCollection("empresas"))
	users := repositories.NewMongoUserRepository(config.GetCollection("users"))

	issueService = services.NewIssueService(issues, interactions, users)
	adocaoService = services.NewAdocaoService(adocoes, pracas, empresas)
	pracaService = services.NewPracaService(pracas, adocoes, empresas)
	userRepo = users
	empresaRepo = empresas
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// respondError translates the service error taxonomy into HTTP responses.
func respondError(c *gin.Context, err error) {
	var dup *apperrors.DuplicateIssueError
	if errors.As(err, &dup) {
		c.JSON(dup.HTTPStatus(), gin.H{
			"error":              dup.Error(),
			"conflictingIssueId": dup.IssueID.Hex(),
			"distanceMeters":     dup.DistanceMeters,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}

	log.Println("Unexpected error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}

// currentUser resolves the acting user from the user_id the auth middleware
// put into the request context. The resolved user is passed explicitly into
// the services.
func currentUser(c *gin.Context) (models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.User{}, false
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return models.User{}, false
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := userRepo.FindByID(ctx, objID)
	if err != nil {
		respondError(c, apperrors.Forbidden("authenticated user not found"))
		return models.User{}, false
	}
	return user, true
}

// currentEmpresa resolves the company the acting user represents.
func currentEmpresa(c *gin.Context) (models.Empresa, bool) {
	user, ok := currentUser(c)
	if !ok {
		return models.Empresa{}, false
	}

	ctx, cancel := requestContext()
	defer cancel()

	empresa, err := empresaRepo.FindByRepresentative(ctx, user.ID)
	if err != nil {
		respondError(c, apperrors.Forbidden("no company associated with the authenticated user"))
		return models.Empresa{}, false
	}
	return empresa, true
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return primitive.NilObjectID, false
	}
	return id, true
}
