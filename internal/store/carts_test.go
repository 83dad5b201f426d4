package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemCreatesCartWithSnapshot(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Laptop Pro X", "LAP-001", "Laptops", 150000, 50)

	cart, err := w.carts.AddItem(ctx, "cliente-1", p.ID.Hex(), 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.Equal(t, p.ID.Hex(), item.ProductID)
	assert.Equal(t, "Laptop Pro X", item.Nombre)
	assert.Equal(t, "LAP-001", item.SKU)
	assert.Equal(t, 2, item.Cantidad)
	assert.Equal(t, int64(150000), item.Precio)
	assert.Equal(t, int64(300000), cart.Total())
}

func TestAddItemMergesQuantitiesAndKeepsFirstPrice(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Auriculares ProSound", "AUR-001", "Auriculares", 19999, 150)
	id := p.ID.Hex()

	_, err := w.carts.AddItem(ctx, "cliente-1", id, 1)
	require.NoError(t, err)

	// El catálogo cambia de precio después de la primera alta.
	w.catalog.mu.Lock()
	w.catalog.products[id].Precio = 25999
	w.catalog.mu.Unlock()

	cart, err := w.carts.AddItem(ctx, "cliente-1", id, 3)
	require.NoError(t, err)

	// Un solo item, cantidades acumuladas, precio de la primera alta.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Cantidad)
	assert.Equal(t, int64(19999), cart.Items[0].Precio)
}

func TestAddItemUnknownProduct(t *testing.T) {
	w := newWorld()

	_, err := w.carts.AddItem(context.Background(), "cliente-1", "no-existe", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveItemIsNoopWhenAbsent(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	// Sin carrito.
	cart, err := w.carts.RemoveItem(ctx, "cliente-1", "lo-que-sea")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Con carrito pero sin ese item.
	p := w.mustProduct(t, "Monitor Gamer 27\"", "MON-002", "Monitores", 29999, 60)
	_, err = w.carts.AddItem(ctx, "cliente-1", p.ID.Hex(), 1)
	require.NoError(t, err)

	cart, err = w.carts.RemoveItem(ctx, "cliente-1", "otro-producto")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	// Y quitando el que sí está.
	cart, err = w.carts.RemoveItem(ctx, "cliente-1", p.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 5)

	_, err := w.carts.AddItem(ctx, "cliente-1", p.ID.Hex(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = w.carts.AddItem(ctx, "cliente-1", p.ID.Hex(), -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	cart, err := w.carts.GetCart(ctx, "cliente-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRestoreMergesIntoRecreatedCart(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	a := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 10)
	b := w.mustProduct(t, "Producto B", "SKU-B", "Tecnología", 500, 10)

	_, err := w.carts.AddItem(ctx, "cliente-1", a.ID.Hex(), 2)
	require.NoError(t, err)

	claimed, err := w.carts.Claim(ctx, "cliente-1")
	require.NoError(t, err)

	// Mientras el checkout retiene el reclamo, el cliente arma un
	// carrito nuevo.
	_, err = w.carts.AddItem(ctx, "cliente-1", a.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = w.carts.AddItem(ctx, "cliente-1", b.ID.Hex(), 1)
	require.NoError(t, err)

	require.NoError(t, w.carts.Restore(ctx, claimed))

	cart, err := w.carts.GetCart(ctx, "cliente-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	byProduct := make(map[string]int)
	for _, item := range cart.Items {
		byProduct[item.ProductID] = item.Cantidad
	}
	assert.Equal(t, 3, byProduct[a.ID.Hex()])
	assert.Equal(t, 1, byProduct[b.ID.Hex()])
}

func TestGetCartAbsentIsEmptyWithTotalZero(t *testing.T) {
	w := newWorld()

	cart, err := w.carts.GetCart(context.Background(), "cliente-sin-carrito")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.Total())
}

func TestConcurrentAddsSameProductAccumulate(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Sobre Pokémon TCG", "CAR-001", "Cartas Coleccionables", 499, 300)
	id := p.ID.Hex()

	const workers = 4
	const addsPerWorker = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerWorker; j++ {
				_, err := w.carts.AddItem(ctx, "cliente-1", id, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	cart, err := w.carts.GetCart(ctx, "cliente-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers*addsPerWorker, cart.Items[0].Cantidad)
}
