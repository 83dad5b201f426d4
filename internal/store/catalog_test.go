package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_virtual/internal/models"
)

func TestDecrementStockConditional(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 3)
	id := p.ID.Hex()

	require.NoError(t, w.catalog.DecrementStock(ctx, id, 2))
	assert.Equal(t, 1, w.stock(t, id))

	// Pedir más de lo que queda falla sin tocar el stock.
	err := w.catalog.DecrementStock(ctx, id, 2)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, id, stockErr.ProductID)
	assert.Equal(t, 1, w.stock(t, id))

	// Reposición (compensación del checkout).
	require.NoError(t, w.catalog.IncrementStock(ctx, id, 2))
	assert.Equal(t, 3, w.stock(t, id))
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	w := newWorld()

	err := w.catalog.DecrementStock(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	w := newWorld()

	w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 3)

	err := w.catalog.CreateProduct(context.Background(), &models.Product{
		Nombre: "Otro Producto",
		SKU:    "SKU-A",
		Precio: 2000,
		Stock:  1,
	})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}
