package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda_virtual/internal/models"
)

// MongoUsers implementa UserDirectory sobre la colección 'usuarios'
// (índice único sobre email).
type MongoUsers struct {
	db *mongo.Database
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{db: db}
}

func (s *MongoUsers) col() *mongo.Collection { return s.db.Collection("usuarios") }

func (s *MongoUsers) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	var user models.User
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Direcciones == nil {
		u.Direcciones = []models.Address{}
	}

	_, err := s.col().InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoUsers) CountCustomers(ctx context.Context) (int64, error) {
	return s.col().CountDocuments(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}})
}
