package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda_virtual/internal/models"
)

// MongoOrders implementa OrderLedger sobre la colección 'pedidos'
// (índice único sobre numero_orden).
type MongoOrders struct {
	db *mongo.Database
}

func NewMongoOrders(db *mongo.Database) *MongoOrders {
	return &MongoOrders{db: db}
}

func (s *MongoOrders) col() *mongo.Collection { return s.db.Collection("pedidos") }

func (s *MongoOrders) Insert(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.col().InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderNumber
	}
	return err
}

func (s *MongoOrders) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrders) ListForCustomer(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fecha_creacion", Value: -1}})
	return s.list(ctx, bson.M{"usuario_id": userID}, opts)
}

func (s *MongoOrders) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_creacion", Value: -1}}).
		SetLimit(int64(limit))
	return s.list(ctx, bson.M{}, opts)
}

func (s *MongoOrders) Count(ctx context.Context) (int64, error) {
	return s.col().CountDocuments(ctx, bson.M{})
}

func (s *MongoOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{}, options.Find())
}

func (s *MongoOrders) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := s.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
