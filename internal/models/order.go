package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

// CREATED es el único estado alcanzable en este alcance; el enum queda
// abierto para captura de pago, cancelación y envío.
const OrderStatusCreated OrderStatus = "CREATED"

const (
	PaymentMethodSimulated = "simulado"
	PaymentStatusPending   = "pendiente"
)

type Payment struct {
	Metodo string    `bson:"metodo" json:"metodo"`
	Estado string    `bson:"estado" json:"estado"`
	Fecha  time.Time `bson:"fecha" json:"fecha"`
}

// Order es el registro inmutable de una compra. Los items son copias de
// los CartItem al momento del checkout: cambios posteriores de precio en
// el catálogo no alteran pedidos pasados.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Numero    string             `bson:"numero_orden" json:"numero_orden"`
	UserID    string             `bson:"usuario_id" json:"usuario_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	Subtotal  int64              `bson:"subtotal" json:"subtotal"`
	Impuestos int64              `bson:"impuestos" json:"impuestos"`
	Descuento int64              `bson:"descuento" json:"descuento"`
	Total     int64              `bson:"total" json:"total"`
	Estado    OrderStatus        `bson:"estado" json:"estado"`
	Direccion Address            `bson:"direccion_envio" json:"direccion_envio"`
	Pago      Payment            `bson:"pago" json:"pago"`
	CreatedAt time.Time          `bson:"fecha_creacion" json:"fecha_creacion"`
}
