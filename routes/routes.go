package routes

import (
	"petmarket-backend/config"
	"petmarket-backend/controllers"
	"petmarket-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
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
		auth.GET("/profile", controllers.GetProfile)
		auth.PUT("/profile", controllers.UpdateProfile)
	}

	// Public storefront browsing
	public := r.Group("/api")
	{
		public.GET("/businesses", controllers.GetBusinesses)
		public.GET("/businesses/:businessId", controllers.GetBusiness)
		public.GET("/businesses/:businessId/services", controllers.GetServices)
		public.GET("/businesses/:businessId/products", controllers.GetProducts)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Business management
		api.POST("/businesses", controllers.CreateBusiness)
		api.GET("/my-businesses", controllers.GetMyBusinesses)
		api.PUT("/businesses/:businessId", controllers.UpdateBusiness)
		api.DELETE("/businesses/:businessId", controllers.DeleteBusiness)

		// Catalog management
		api.POST("/businesses/:businessId/services", controllers.CreateService)
		api.PUT("/businesses/:businessId/services/:id", controllers.UpdateService)
		api.DELETE("/businesses/:businessId/services/:id", controllers.DeleteService)
		api.POST("/businesses/:businessId/products", controllers.CreateProduct)
		api.PUT("/businesses/:businessId/products/:id", controllers.UpdateProduct)
		api.DELETE("/businesses/:businessId/products/:id", controllers.DeleteProduct)

		// Bookings
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("/full-dates/:serviceId", controllers.GetFullDates)
			bookings.GET("/user/:userId", controllers.GetBookingsByUser)
			bookings.GET("/business/:businessId", controllers.GetBookingsByBusiness)
			bookings.GET("/store/:storeId", controllers.GetBookingsByStore)
			bookings.PATCH("/:id/status", controllers.UpdateBookingStatus)
			bookings.DELETE("/:id", controllers.DeleteBooking)
		}

		// Cart
		cart := api.Group("/cart")
		{
			cart.GET("", controllers.GetCart)
			cart.GET("/count", controllers.GetCartItemCount)
			cart.POST("/items", controllers.AddCartItem)
			cart.PATCH("/items/:cartItemId", controllers.UpdateCartItem)
			cart.DELETE("/items/:cartItemId", controllers.RemoveCartItem)
			cart.POST("/checkout", controllers.Checkout)
		}

		// Orders
		api.GET("/orders/business/:businessId", controllers.GetOrdersByBusiness)

		// Notifications
		notifications := api.Group("/notifications")
		{
			notifications.GET("", controllers.GetMyNotifications)
			notifications.PATCH("/:id/dismiss", controllers.DismissNotification)
		}
	}

	return r
}
