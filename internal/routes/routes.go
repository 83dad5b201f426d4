package routes

import (
	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/handlers"
	"tienda_virtual/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Público
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", handlers.Login)
	api.GET("/products", handlers.ListProducts)
	api.GET("/products/:id", handlers.GetProduct)
	api.GET("/categories", handlers.ListCategories)

	// Autenticado
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/me", handlers.Me)
		auth.GET("/cart", handlers.GetCart)
		auth.POST("/cart/add", handlers.AddToCart)
		auth.DELETE("/cart/:productId", handlers.RemoveFromCart)
		auth.POST("/checkout", handlers.Checkout)
		auth.GET("/orders", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrderByID)
	}

	// Admin
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin)
	{
		admin.POST("/products", handlers.CreateProduct)
		admin.POST("/categories", handlers.CreateCategory)
		admin.GET("/orders", handlers.ListRecentOrders)
		admin.GET("/dashboard", handlers.GetDashboardStats)
	}
}
