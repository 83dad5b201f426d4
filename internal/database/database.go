package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Variables Globales ---
var (
	MongoClient *mongo.Client
	Mongo       *mongo.Database
	Redis       *redis.Client
)

// --- Inicialización ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)

	log.Println("✅ Todas las bases de datos están conectadas")
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017/"
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "tienda_virtual"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Error conexión MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("❌ MongoDB no responde al ping:", err)
	}

	MongoClient = client
	Mongo = client.Database(dbName)
	log.Println("✅ Conectado a MongoDB — base:", dbName)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Error conexión Redis:", err)
	}
	log.Println("✅ Conectado a Redis")
}

// =============================================
// COLECCIONES
// =============================================

func Usuarios() *mongo.Collection   { return Mongo.Collection("usuarios") }
func Productos() *mongo.Collection  { return Mongo.Collection("productos") }
func Categorias() *mongo.Collection { return Mongo.Collection("categorias") }
func Carritos() *mongo.Collection   { return Mongo.Collection("carritos") }
func Pedidos() *mongo.Collection    { return Mongo.Collection("pedidos") }

// EnsureIndexes crea los índices de unicidad de los que depende el núcleo:
// un email por usuario, un SKU por producto, un carrito por cliente y un
// número de orden por pedido.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		col   *mongo.Collection
		model mongo.IndexModel
	}{
		{Usuarios(), mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{Productos(), mongo.IndexModel{Keys: bson.D{{Key: "sku", Value: 1}}, Options: unique}},
		{Productos(), mongo.IndexModel{Keys: bson.D{{Key: "nombre", Value: 1}}}},
		{Carritos(), mongo.IndexModel{Keys: bson.D{{Key: "usuario_id", Value: 1}}, Options: unique}},
		{Pedidos(), mongo.IndexModel{Keys: bson.D{{Key: "numero_orden", Value: 1}}, Options: unique}},
		{Pedidos(), mongo.IndexModel{Keys: bson.D{{Key: "usuario_id", Value: 1}, {Key: "fecha_creacion", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := idx.col.Indexes().CreateOne(ctx, idx.model); err != nil {
			return err
		}
	}
	return nil
}

// Close cierra las conexiones al terminar el proceso.
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if MongoClient != nil {
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Println("⚠️  Error cerrando MongoDB:", err)
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
}
