package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_virtual/internal/models"
)

type world struct {
	catalog *MemCatalog
	carts   *MemCarts
	orders  *MemOrders
	users   *MemUsers
	engine  *CheckoutEngine
}

func newWorld() *world {
	catalog := NewMemCatalog()
	carts := NewMemCarts(catalog)
	orders := NewMemOrders()
	users := NewMemUsers()
	engine := NewCheckoutEngine(carts, catalog, orders, users, SequentialNumbers())
	return &world{catalog: catalog, carts: carts, orders: orders, users: users, engine: engine}
}

func (w *world) mustProduct(t *testing.T, nombre, sku string, categoria string, precio int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Nombre:    nombre,
		SKU:       sku,
		Categoria: models.CategoryRef{ID: primitive.NewObjectID(), Nombre: categoria},
		Precio:    precio,
		Moneda:    "USD",
		Stock:     stock,
		Visible:   true,
	}
	require.NoError(t, w.catalog.CreateProduct(context.Background(), p))
	return p
}

func (w *world) mustCustomer(t *testing.T, nombre, email string, direcciones ...models.Address) *models.User {
	t.Helper()
	u := &models.User{
		Nombre:      nombre,
		Email:       email,
		Role:        models.RoleCustomer,
		Direcciones: direcciones,
	}
	require.NoError(t, w.users.CreateUser(context.Background(), u))
	return u
}

func (w *world) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := w.catalog.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}
