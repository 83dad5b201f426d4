package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda_virtual/internal/models"
)

func TestCheckoutEmptyOrAbsentCart(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	u := w.mustCustomer(t, "Juan Perez", "juan@example.com")

	// Carrito ausente.
	_, err := w.engine.Checkout(ctx, u.ID.Hex())
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Carrito existente pero sin items.
	p := w.mustProduct(t, "Laptop Pro X", "LAP-001", "Laptops", 150000, 50)
	_, err = w.carts.AddItem(ctx, u.ID.Hex(), p.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = w.carts.RemoveItem(ctx, u.ID.Hex(), p.ID.Hex())
	require.NoError(t, err)

	_, err = w.engine.Checkout(ctx, u.ID.Hex())
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Sin mutaciones: ni pedidos ni stock tocado.
	count, err := w.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 50, w.stock(t, p.ID.Hex()))
}

func TestCheckoutStaleCustomerRestoresCart(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Smartphone Max 12", "SMA-001", "Smartphones", 99900, 120)

	// Identidad de sesión sin usuario detrás en el almacenamiento.
	_, err := w.carts.AddItem(ctx, "fantasma", p.ID.Hex(), 1)
	require.NoError(t, err)

	_, err = w.engine.Checkout(ctx, "fantasma")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	// El carrito sobrevive al fallo y el stock queda intacto.
	cart, err := w.carts.GetCart(ctx, "fantasma")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 120, w.stock(t, p.ID.Hex()))
}

func TestCheckoutSuccess(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	direccion := models.Address{Alias: "Casa", Calle: "Calle Falsa 123", Ciudad: "Springfield", Pais: "Simyland", CodigoPostal: "12345"}
	u := w.mustCustomer(t, "Juan Perez", "juan@example.com", direccion)
	userID := u.ID.Hex()

	a := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 10)
	b := w.mustProduct(t, "Producto B", "SKU-B", "Tecnología", 500, 10)

	_, err := w.carts.AddItem(ctx, userID, a.ID.Hex(), 2)
	require.NoError(t, err)
	_, err = w.carts.AddItem(ctx, userID, b.ID.Hex(), 1)
	require.NoError(t, err)

	order, err := w.engine.Checkout(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), order.Subtotal)
	assert.Equal(t, int64(2500), order.Total)
	assert.Zero(t, order.Impuestos)
	assert.Zero(t, order.Descuento)
	assert.Equal(t, models.OrderStatusCreated, order.Estado)
	assert.Equal(t, models.PaymentMethodSimulated, order.Pago.Metodo)
	assert.Equal(t, models.PaymentStatusPending, order.Pago.Estado)
	assert.False(t, order.Pago.Fecha.IsZero())
	assert.NotEmpty(t, order.Numero)
	assert.Equal(t, direccion, order.Direccion)
	require.Len(t, order.Items, 2)

	// El carrito ya no existe.
	cart, err := w.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// El stock bajó exactamente lo comprado.
	assert.Equal(t, 8, w.stock(t, a.ID.Hex()))
	assert.Equal(t, 9, w.stock(t, b.ID.Hex()))

	// Existe exactamente un pedido nuevo y es consultable.
	count, err := w.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := w.orders.GetOrder(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, order.Numero, stored.Numero)

	mine, err := w.orders.ListForCustomer(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestCheckoutWithoutAddressDoesNotFail(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	u := w.mustCustomer(t, "Sin Dirección", "nadie@example.com")
	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 5)

	_, err := w.carts.AddItem(ctx, u.ID.Hex(), p.ID.Hex(), 1)
	require.NoError(t, err)

	order, err := w.engine.Checkout(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.Address{}, order.Direccion)
}

func TestCheckoutSnapshotSurvivesPriceChange(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	u := w.mustCustomer(t, "Juan Perez", "juan@example.com")
	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 5)

	_, err := w.carts.AddItem(ctx, u.ID.Hex(), p.ID.Hex(), 1)
	require.NoError(t, err)

	order, err := w.engine.Checkout(ctx, u.ID.Hex())
	require.NoError(t, err)

	// Un cambio de precio posterior no altera el pedido guardado.
	w.catalog.mu.Lock()
	w.catalog.products[p.ID.Hex()].Precio = 99999
	w.catalog.mu.Unlock()

	stored, err := w.orders.GetOrder(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored.Total)
	assert.Equal(t, int64(1000), stored.Items[0].Precio)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	u := w.mustCustomer(t, "Juan Perez", "juan@example.com")
	userID := u.ID.Hex()

	a := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 5)
	b := w.mustProduct(t, "Producto B", "SKU-B", "Tecnología", 500, 1)

	_, err := w.carts.AddItem(ctx, userID, a.ID.Hex(), 2)
	require.NoError(t, err)
	_, err = w.carts.AddItem(ctx, userID, b.ID.Hex(), 3)
	require.NoError(t, err)

	_, err = w.engine.Checkout(ctx, userID)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, b.ID.Hex(), stockErr.ProductID)

	// Ningún descuento parcial sobrevive: A repuesto, B intacto.
	assert.Equal(t, 5, w.stock(t, a.ID.Hex()))
	assert.Equal(t, 1, w.stock(t, b.ID.Hex()))

	// El carrito vuelve con sus dos items.
	cart, err := w.carts.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	// Y no hay pedido creado.
	count, err := w.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConcurrentCheckoutsCannotOversell(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	p := w.mustProduct(t, "Producto Escaso", "SKU-E", "Tecnología", 1000, 3)

	u1 := w.mustCustomer(t, "Cliente Uno", "uno@example.com")
	u2 := w.mustCustomer(t, "Cliente Dos", "dos@example.com")

	for _, id := range []string{u1.ID.Hex(), u2.ID.Hex()} {
		_, err := w.carts.AddItem(ctx, id, p.ID.Hex(), 2)
		require.NoError(t, err)
	}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{u1.ID.Hex(), u2.ID.Hex()} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := w.engine.Checkout(ctx, userID)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var successes, stockFailures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *InsufficientStockError
		if assert.ErrorAs(t, err, &stockErr) {
			stockFailures++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)

	// 3 - 2 = 1; nunca negativo.
	assert.Equal(t, 1, w.stock(t, p.ID.Hex()))
}

func TestConcurrentCheckoutsSameCustomerSingleOrder(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	u := w.mustCustomer(t, "Juan Perez", "juan@example.com")
	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 10)

	_, err := w.carts.AddItem(ctx, u.ID.Hex(), p.ID.Hex(), 1)
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.engine.Checkout(ctx, u.ID.Hex())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, emptyFailures int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrEmptyCart):
			emptyFailures++
		}
	}

	// El segundo checkout observa el carrito ya reclamado.
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, emptyFailures)

	count, err := w.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 9, w.stock(t, p.ID.Hex()))
}

// ctxCatalog se comporta como un driver real: toda operación falla si el
// contexto del request ya fue cancelado.
type ctxCatalog struct {
	*MemCatalog
	afterDecrement func()
}

func (c *ctxCatalog) DecrementStock(ctx context.Context, id string, qty int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.MemCatalog.DecrementStock(ctx, id, qty)
	if err == nil && c.afterDecrement != nil {
		c.afterDecrement()
	}
	return err
}

func (c *ctxCatalog) IncrementStock(ctx context.Context, id string, qty int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.MemCatalog.IncrementStock(ctx, id, qty)
}

func TestCheckoutCompensatesWhenRequestCancelled(t *testing.T) {
	w := newWorld()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := w.mustCustomer(t, "Juan Perez", "juan@example.com")
	userID := u.ID.Hex()

	a := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 5)
	b := w.mustProduct(t, "Producto B", "SKU-B", "Tecnología", 500, 5)

	_, err := w.carts.AddItem(context.Background(), userID, a.ID.Hex(), 2)
	require.NoError(t, err)
	_, err = w.carts.AddItem(context.Background(), userID, b.ID.Hex(), 1)
	require.NoError(t, err)

	// El cliente corta la conexión justo después del primer descuento.
	catalog := &ctxCatalog{MemCatalog: w.catalog, afterDecrement: cancel}
	engine := NewCheckoutEngine(w.carts, catalog, w.orders, w.users, SequentialNumbers())

	_, err = engine.Checkout(ctx, userID)
	require.Error(t, err)

	// La compensación corre igual: stock repuesto, carrito devuelto y
	// ningún pedido creado.
	assert.Equal(t, 5, w.stock(t, a.ID.Hex()))
	assert.Equal(t, 5, w.stock(t, b.ID.Hex()))

	cart, err := w.carts.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	count, err := w.orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutRetriesDuplicateOrderNumberOnce(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	// Generador degenerado: siempre el mismo número.
	w.engine.Numbers = func(ctx context.Context) (string, error) {
		return "PED-20260901-000001", nil
	}

	u1 := w.mustCustomer(t, "Cliente Uno", "uno@example.com")
	u2 := w.mustCustomer(t, "Cliente Dos", "dos@example.com")
	p := w.mustProduct(t, "Producto A", "SKU-A", "Tecnología", 1000, 10)

	for _, id := range []string{u1.ID.Hex(), u2.ID.Hex()} {
		_, err := w.carts.AddItem(ctx, id, p.ID.Hex(), 1)
		require.NoError(t, err)
	}

	first, err := w.engine.Checkout(ctx, u1.ID.Hex())
	require.NoError(t, err)

	// La colisión se resuelve regenerando el número una vez.
	second, err := w.engine.Checkout(ctx, u2.ID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, first.Numero, second.Numero)

	count, err := w.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
