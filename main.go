package main

import (
	"log"
	"net/http"
	"os"

	"communitex-be/config"
	"communitex-be/controllers"
	"communitex-be/models"
	"communitex-be/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}

	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureInteractionIndex(config.GetCollection("interactions")); err != nil {
		log.Fatalf("Failed to create interaction index: %v", err)
	}

	config.ConnectRedis()
	controllers.Init()

	r := gin.Default()

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.PracaRoutes(r)
	routes.AdocaoRoutes(r)
	routes.EmpresaRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
