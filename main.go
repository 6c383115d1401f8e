package main

import (
	"fmt"
	"log"

	"careops-backend/config"
	"careops-backend/controllers"
	"careops-backend/models"
	"careops-backend/routes"
	"careops-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.Load()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Contact{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Booking{},
		&models.FormTemplate{},
		&models.FormSubmission{},
		&models.InventoryItem{},
		&models.Alert{},
		&models.AutomationLog{},
		&models.Conversation{},
		&models.Message{},
	)

	if err := models.EnsureBookingSlotIndex(config.DB); err != nil {
		log.Fatalf("Failed to create booking slot index: %v", err)
	}
}

func main() {
	controllers.Notify = services.NewNotifier(config.DB)

	sweeper := services.StartSweepScheduler(config.DB)
	defer sweeper.Stop()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + config.C.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
