package routes

import (
	"communitex-be/controllers"
	"communitex-be/middlewares"

	"github.com/gin-gonic/gin"
)

// EmpresaRoutes sets up the company routes
func EmpresaRoutes(r *gin.Engine) {
	empresa := r.Group("/api/empresa")
	{
		empresa.POST("", middlewares.AuthMiddleware(), controllers.RegisterEmpresa)
		empresa.GET("/minha", middlewares.AuthMiddleware(), controllers.GetMyEmpresa)
	}
}
