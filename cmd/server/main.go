package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/config"
	"tienda_virtual/internal/database"
	"tienda_virtual/internal/handlers"
	"tienda_virtual/internal/routes"
	"tienda_virtual/internal/store"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("❌ Error creando índices:", err)
	}
	cancel()
	log.Println("✅ Índices verificados")

	catalog := store.NewMongoCatalog(database.Mongo)
	carts := store.NewMongoCarts(database.Mongo, catalog)
	orders := store.NewMongoOrders(database.Mongo)
	users := store.NewMongoUsers(database.Mongo)
	engine := store.NewCheckoutEngine(carts, catalog, orders, users, store.RedisNumbers(database.Redis))
	stats := store.NewAnalytics(orders, catalog, users)

	handlers.Init(catalog, carts, orders, users, engine, stats)

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Servidor tienda_virtual escuchando en el puerto", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Error del servidor:", err)
	}
}
