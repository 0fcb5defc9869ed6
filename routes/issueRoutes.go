package routes

import (
	"communitex-be/controllers"
	"communitex-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(5), controllers.CreateIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/nearby", controllers.GetIssuesByProximity)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetIssuesByUser)
		issue.GET("/status/:status", controllers.GetIssuesByStatus)
		issue.GET("/:id", controllers.GetIssue)
		issue.GET("/:id/detail", controllers.GetIssueDetail)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), controllers.UpdateIssueStatus)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
		issue.GET("/:id/interactions", controllers.GetInteractions)
		issue.POST("/:id/interactions", middlewares.AuthMiddleware(), controllers.AddInteraction)
		issue.DELETE("/:id/interactions/:interactionId", middlewares.AuthMiddleware(), controllers.RemoveInteraction)
	}
}
