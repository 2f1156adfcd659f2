package routes

import (
	"reelbites-api/handlers"
	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/reels", handlers.ListReels)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Address book
		auth.POST("/addresses", handlers.AddAddress)
		auth.GET("/addresses", handlers.ListAddresses)
		auth.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
		auth.DELETE("/addresses/:id", handlers.DeleteAddress)

		// Role-scoped order reads
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)

		// Payment ledger
		auth.POST("/orders/:id/payments", handlers.CreatePayment)
		auth.GET("/orders/:id/payments", handlers.GetPayment)

		// Any customer may open a restaurant; creation promotes to owner.
		auth.POST("/restaurant", handlers.CreateRestaurant)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.PlaceCartOrder)
		customer.POST("/orders/direct", handlers.PlaceDirectBuyOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/restaurant")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		owner.GET("/", handlers.GetMyRestaurant)
		owner.PUT("/", handlers.UpdateRestaurant)

		owner.POST("/menu", handlers.AddFoodItem)
		owner.PUT("/menu/:itemId", handlers.UpdateFoodItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteFoodItem)

		owner.POST("/reels", handlers.AddReel)
		owner.DELETE("/reels/:reelId", handlers.DeleteReel)

		owner.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}
}
