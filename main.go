package main

import (
	"fmt"
	"log"
	"os"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/routes"
	"tailorpro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Counter{},
		&models.User{},
		&models.Customer{},
		&models.Measurement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Notification{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dueDates := services.NewDueDateService(config.DB)
	dueDates.StartScheduler()

	r := routes.SetupRouter(dueDates)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
