package routes

import (
	"careops-backend/config"
	"careops-backend/controllers"
	"careops-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Workspace routes
		workspace := api.Group("/workspace")
		{
			workspace.POST("", controllers.CreateWorkspace)
			workspace.GET("", controllers.GetWorkspace)
			workspace.PUT("", controllers.UpdateWorkspace)
			workspace.POST("/activate", controllers.ActivateWorkspace)
			workspace.GET("/onboarding", controllers.GetOnboardingStatus)
		}

		// Contact routes
		contacts := api.Group("/contacts")
		{
			contacts.POST("", controllers.CreateContact)
			contacts.GET("", controllers.GetContacts)
			contacts.GET("/:id", controllers.GetContact)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PATCH("/:id/status", controllers.UpdateBookingStatus)
		}

		// Form routes
		forms := api.Group("/forms")
		{
			forms.POST("/templates", controllers.CreateFormTemplate)
			forms.GET("/templates", controllers.GetFormTemplates)
			forms.GET("/submissions", controllers.GetFormSubmissions)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", controllers.CreateInventoryItem)
			inventory.GET("", controllers.GetInventoryItems)
			inventory.PUT("/:id", controllers.UpdateInventoryItem)
			inventory.DELETE("/:id", controllers.DeleteInventoryItem)
		}

		// Alert routes
		alerts := api.Group("/alerts")
		{
			alerts.GET("", controllers.GetAlerts)
			alerts.POST("/:id/dismiss", controllers.DismissAlert)
		}

		// Conversation routes
		conversations := api.Group("/conversations")
		{
			conversations.GET("", controllers.GetConversations)
			conversations.GET("/:id", controllers.GetConversation)
			conversations.POST("/:id/reply", controllers.ReplyToConversation)
			conversations.POST("/:id/close", controllers.CloseConversation)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardStats)
		api.GET("/automation-logs", controllers.GetAutomationLogs)
	}

	// Public routes, no auth
	public := r.Group("/p/:slug")
	{
		public.GET("", controllers.GetPublicWorkspace)
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/services/:serviceId/slots", controllers.GetPublicSlots)
		public.POST("/bookings", controllers.CreatePublicBooking)
		public.POST("/contact", controllers.SubmitPublicContact)
	}

	// Token-addressed form endpoints, also public
	forms := r.Group("/f/:token")
	{
		forms.GET("", controllers.GetPublicFormByToken)
		forms.POST("", controllers.SubmitPublicForm)
	}

	return r
}
