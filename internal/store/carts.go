package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda_virtual/internal/models"
)

// MongoCarts implementa CartStore sobre la colección 'carritos'
// (índice único sobre usuario_id: un carrito por cliente).
type MongoCarts struct {
	db      *mongo.Database
	catalog Catalog
}

func NewMongoCarts(db *mongo.Database, catalog Catalog) *MongoCarts {
	return &MongoCarts{db: db, catalog: catalog}
}

func (s *MongoCarts) col() *mongo.Collection { return s.db.Collection("carritos") }

// AddItem expresa la fusión por producto como operaciones atómicas del
// almacenamiento, no como leer-modificar-escribir en la aplicación:
//  1. $inc posicional sobre el item existente (precio intacto), o
//  2. $push con upsert, protegido por items.producto_id $ne para que dos
//     altas concurrentes del mismo producto no dupliquen el item.
//
// Una carrera perdida en el paso 2 dispara el índice único de usuario_id
// y se reintenta el paso 1.
func (s *MongoCarts) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		ProductID: productID,
		Nombre:    product.Nombre,
		SKU:       product.SKU,
		Cantidad:  qty,
		Precio:    product.Precio,
	}
	if err := s.mergeItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *MongoCarts) mergeItem(ctx context.Context, userID string, item models.CartItem) error {
	now := time.Now().UTC()

	for attempt := 0; attempt < 3; attempt++ {
		res, err := s.col().UpdateOne(ctx,
			bson.M{"usuario_id": userID, "items.producto_id": item.ProductID},
			bson.M{
				"$inc": bson.M{"items.$.cantidad": item.Cantidad},
				"$set": bson.M{"fecha_actualizacion": now},
			},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		_, err = s.col().UpdateOne(ctx,
			bson.M{"usuario_id": userID, "items.producto_id": bson.M{"$ne": item.ProductID}},
			bson.M{
				"$push": bson.M{"items": item},
				"$set":  bson.M{"fecha_actualizacion": now},
			},
			options.Update().SetUpsert(true),
		)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		// Otro request del mismo cliente insertó el item entre ambos
		// pasos; vuelve al $inc.
	}

	return fmt.Errorf("no se pudo agregar el producto %s al carrito", item.ProductID)
}

func (s *MongoCarts) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	_, err := s.col().UpdateOne(ctx,
		bson.M{"usuario_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"producto_id": productID}},
			"$set":  bson.M{"fecha_actualizacion": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *MongoCarts) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.col().FindOne(ctx, bson.M{"usuario_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MongoCarts) Claim(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.col().FindOneAndDelete(ctx, bson.M{"usuario_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MongoCarts) Restore(ctx context.Context, cart *models.Cart) error {
	_, err := s.col().InsertOne(ctx, cart)
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}

	// El cliente ya abrió otro carrito mientras el checkout tenía el
	// reclamo; los items reclamados se fusionan en él.
	for _, item := range cart.Items {
		if err := s.mergeItem(ctx, cart.UserID, item); err != nil {
			return err
		}
	}
	return nil
}
