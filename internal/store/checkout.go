package store

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_virtual/internal/models"
)

// CheckoutEngine convierte un carrito en un pedido inmutable: reclama el
// carrito, descuenta stock, asigna número de orden y persiste el pedido.
// Desde el punto de vista del llamador la transición es todo-o-nada:
// cualquier fallo repone el stock ya descontado y devuelve el carrito.
type CheckoutEngine struct {
	Carts   CartStore
	Catalog Catalog
	Orders  OrderLedger
	Users   UserDirectory
	Numbers NumberFunc
}

func NewCheckoutEngine(carts CartStore, catalog Catalog, orders OrderLedger, users UserDirectory, numbers NumberFunc) *CheckoutEngine {
	return &CheckoutEngine{Carts: carts, Catalog: catalog, Orders: orders, Users: users, Numbers: numbers}
}

func (e *CheckoutEngine) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	// Reclamar el carrito lo borra atómicamente: de dos checkouts
	// concurrentes del mismo cliente, el segundo ya no lo encuentra.
	cart, err := e.Carts.Claim(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		// Cascarón sin items: se devuelve tal cual para que la operación
		// quede sin mutación neta.
		e.restore(ctx, cart)
		return nil, ErrEmptyCart
	}

	// La sesión puede quedar desfasada respecto al almacenamiento.
	user, err := e.Users.GetUser(ctx, userID)
	if err != nil {
		e.restore(ctx, cart)
		return nil, err
	}

	// Reserva de stock item por item, con compensación: si un descuento
	// posterior falla, se reponen todos los anteriores.
	for i, item := range cart.Items {
		if err := e.Catalog.DecrementStock(ctx, item.ProductID, item.Cantidad); err != nil {
			e.releaseStock(ctx, cart.Items[:i])
			e.restore(ctx, cart)
			return nil, err
		}
	}

	now := time.Now().UTC()
	subtotal := cart.Total()

	order := &models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Items:     append([]models.CartItem(nil), cart.Items...),
		Subtotal:  subtotal,
		Impuestos: 0,
		Descuento: 0,
		Total:     subtotal,
		Estado:    models.OrderStatusCreated,
		Direccion: firstAddress(user),
		Pago: models.Payment{
			Metodo: models.PaymentMethodSimulated,
			Estado: models.PaymentStatusPending,
			Fecha:  now,
		},
		CreatedAt: now,
	}

	order.Numero, err = e.Numbers(ctx)
	if err != nil {
		e.releaseStock(ctx, cart.Items)
		e.restore(ctx, cart)
		return nil, err
	}

	if err := e.Orders.Insert(ctx, order); err != nil {
		// Un número duplicado no debería ocurrir; se regenera una vez
		// antes de rendirse.
		if errors.Is(err, ErrDuplicateOrderNumber) {
			order.Numero = RandomNumber()
			err = e.Orders.Insert(ctx, order)
		}
		if err != nil {
			e.releaseStock(ctx, cart.Items)
			e.restore(ctx, cart)
			return nil, err
		}
	}

	return order, nil
}

// La compensación corre sobre un contexto desacoplado del request: si el
// cliente corta la conexión a mitad del checkout, reponer stock y
// devolver el carrito debe suceder igual.
func (e *CheckoutEngine) releaseStock(ctx context.Context, items []models.CartItem) {
	ctx = context.WithoutCancel(ctx)
	for _, item := range items {
		if err := e.Catalog.IncrementStock(ctx, item.ProductID, item.Cantidad); err != nil {
			log.Printf("❌ No se pudo reponer stock de %s (+%d): %v", item.ProductID, item.Cantidad, err)
		}
	}
}

func (e *CheckoutEngine) restore(ctx context.Context, cart *models.Cart) {
	ctx = context.WithoutCancel(ctx)
	if err := e.Carts.Restore(ctx, cart); err != nil {
		log.Printf("❌ No se pudo restaurar el carrito de %s: %v", cart.UserID, err)
	}
}

func firstAddress(u *models.User) models.Address {
	if len(u.Direcciones) > 0 {
		return u.Direcciones[0]
	}
	// Sin dirección guardada el checkout no falla: dirección vacía.
	return models.Address{}
}
