// Package store contiene el núcleo de la tienda: catálogo, carritos,
// checkout, libro de pedidos y agregaciones de ventas. Toda la
// corrección concurrente viene de operaciones atómicas a nivel de
// almacenamiento, no de locks en la aplicación.
package store

import (
	"context"

	"tienda_virtual/internal/models"
)

// Catalog es el acceso de solo-mutación-controlada al inventario.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	// DecrementStock descuenta qty solo si el stock actual alcanza
	// ("decrementa N si stock >= N", en una única operación condicional).
	// Devuelve *InsufficientStockError si no alcanza.
	DecrementStock(ctx context.Context, id string, qty int) error

	// IncrementStock repone stock; es la compensación del checkout.
	IncrementStock(ctx context.Context, id string, qty int) error

	CreateProduct(ctx context.Context, p *models.Product) error
	ListVisible(ctx context.Context) ([]models.Product, error)
}

// CartStore mantiene a lo sumo un carrito abierto por cliente.
type CartStore interface {
	// AddItem fusiona por producto: si el item existe incrementa su
	// cantidad sin tocar el precio capturado en la primera alta; si no,
	// lo agrega con el precio actual del catálogo. qty < 1 es
	// ErrInvalidQuantity, no se reinterpreta.
	AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error)

	// RemoveItem elimina el item si está; no es error que falte.
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)

	// GetCart nunca falla por ausencia: un carrito inexistente se reporta
	// como carrito vacío con total 0.
	GetCart(ctx context.Context, userID string) (*models.Cart, error)

	// Claim toma el carrito para checkout borrándolo atómicamente; de dos
	// checkouts concurrentes del mismo cliente solo uno lo obtiene.
	Claim(ctx context.Context, userID string) (*models.Cart, error)

	// Restore devuelve un carrito reclamado cuando el checkout falla. Si
	// el cliente abrió un carrito nuevo mientras tanto, los items
	// reclamados se fusionan en él en lugar de perderse.
	Restore(ctx context.Context, cart *models.Cart) error
}

// OrderLedger almacena pedidos completados. No impone autorización: el
// llamador decide con order.UserID y el rol del solicitante.
type OrderLedger interface {
	Insert(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListForCustomer(ctx context.Context, userID string) ([]models.Order, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)

	// ListAll es el escaneo completo que consumen las agregaciones.
	ListAll(ctx context.Context) ([]models.Order, error)
}

// UserDirectory expone lo mínimo que el núcleo necesita de los usuarios.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	CountCustomers(ctx context.Context) (int64, error)
}
