package routes

import (
	"communitex-be/controllers"
	"communitex-be/middlewares"

	"github.com/gin-gonic/gin"
)

// PracaRoutes sets up the square routes
func PracaRoutes(r *gin.Engine) {
	praca := r.Group("/api/praca")
	{
		praca.POST("", middlewares.AuthMiddleware(), controllers.CreatePraca)
		praca.GET("", controllers.GetAllPracas)
		praca.GET("/:id", controllers.GetPraca)
		praca.GET("/:id/detail", controllers.GetPracaDetail)
		praca.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdatePraca)
		praca.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeletePraca)
	}
}
