package routes

import (
	"communitex-be/controllers"
	"communitex-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdocaoRoutes sets up the adoption routes
func AdocaoRoutes(r *gin.Engine) {
	adocao := r.Group("/api/adocao")
	{
		adocao.POST("", middlewares.AuthMiddleware(), controllers.CreateAdocao)
		adocao.POST("/interesse", middlewares.AuthMiddleware(), controllers.RegisterInterest)
		adocao.GET("", controllers.GetAllAdocoes)
		adocao.GET("/periodo", controllers.GetAdocoesByPeriod)
		adocao.GET("/prazo", controllers.GetAdocoesNearingDeadline)
		adocao.GET("/minhas", middlewares.AuthMiddleware(), controllers.GetMyAdocoes)
		adocao.GET("/status/:status", controllers.GetAdocoesByStatus)
		adocao.GET("/praca/:pracaId", controllers.GetAdocoesByPraca)
		adocao.GET("/:id", controllers.GetAdocao)
		adocao.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdateAdocao)
		adocao.PATCH("/:id/finalizar", middlewares.AuthMiddleware(), controllers.FinalizeAdocao)
		adocao.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteAdocao)
	}
}
