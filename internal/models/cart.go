package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem es una instantánea del producto al momento de agregarlo:
// el precio unitario NO se vuelve a leer del catálogo después.
type CartItem struct {
	ProductID string            `bson:"producto_id" json:"producto_id"`
	Nombre    string            `bson:"nombre" json:"nombre"`
	SKU       string            `bson:"sku" json:"sku"`
	Cantidad  int               `bson:"cantidad" json:"cantidad"`
	Precio    int64             `bson:"precio_unitario" json:"precio_unitario"`
	Atributos map[string]string `bson:"atributos,omitempty" json:"atributos,omitempty"`
}

// Cart es el único carrito abierto de un cliente. Invariante: no hay dos
// items con el mismo producto_id (las altas repetidas se fusionan).
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"usuario_id" json:"usuario_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// Total suma cantidad × precio unitario sobre los items, en centavos.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Precio * int64(item.Cantidad)
	}
	return total
}
