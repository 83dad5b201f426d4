package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_virtual/internal/models"
)

// Implementaciones en memoria de los stores, con los mismos contratos
// atómicos que la versión Mongo (aquí el mutex es el motor de
// almacenamiento). Las usan los tests y sirven para desarrollo sin
// cluster.

// --- Catálogo ---

type MemCatalog struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{products: make(map[string]*models.Product)}
}

func (c *MemCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	copia := *p
	return &copia, nil
}

func (c *MemCatalog) DecrementStock(ctx context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return ErrProductNotFound
	}
	if p.Stock < qty {
		return &InsufficientStockError{ProductID: id}
	}
	p.Stock -= qty
	return nil
}

func (c *MemCatalog) IncrementStock(ctx context.Context, id string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (c *MemCatalog) CreateProduct(ctx context.Context, p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.products {
		if existing.SKU == p.SKU {
			return ErrDuplicateSKU
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	copia := *p
	c.products[p.ID.Hex()] = &copia
	return nil
}

// DeleteProduct existe para simular productos borrados del catálogo
// (las agregaciones deben tolerarlo).
func (c *MemCatalog) DeleteProduct(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

func (c *MemCatalog) ListVisible(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var products []models.Product
	for _, p := range c.products {
		if p.Visible {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Nombre < products[j].Nombre })
	return products, nil
}

// --- Carritos ---

type MemCarts struct {
	mu      sync.Mutex
	carts   map[string]*models.Cart
	catalog Catalog
}

func NewMemCarts(catalog Catalog) *MemCarts {
	return &MemCarts{carts: make(map[string]*models.Cart), catalog: catalog}
}

func (s *MemCarts) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{
			ID:     primitive.NewObjectID(),
			UserID: userID,
			Items:  []models.CartItem{},
		}
		s.carts[userID] = cart
	}
	cart.UpdatedAt = now

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			// Fusión: solo cantidad; el precio queda el de la primera alta.
			cart.Items[i].Cantidad += qty
			return copyCart(cart), nil
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID: productID,
		Nombre:    product.Nombre,
		SKU:       product.SKU,
		Cantidad:  qty,
		Precio:    product.Precio,
	})
	return copyCart(cart), nil
}

func (s *MemCarts) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now().UTC()
	return copyCart(cart), nil
}

func (s *MemCarts) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return copyCart(cart), nil
}

func (s *MemCarts) Claim(ctx context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	delete(s.carts, userID)
	return copyCart(cart), nil
}

func (s *MemCarts) Restore(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.carts[cart.UserID]
	if !ok {
		s.carts[cart.UserID] = copyCart(cart)
		return nil
	}

	// El cliente ya abrió otro carrito; los items reclamados se fusionan.
	for _, item := range cart.Items {
		merged := false
		for i := range existing.Items {
			if existing.Items[i].ProductID == item.ProductID {
				existing.Items[i].Cantidad += item.Cantidad
				merged = true
				break
			}
		}
		if !merged {
			existing.Items = append(existing.Items, item)
		}
	}
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func copyCart(cart *models.Cart) *models.Cart {
	copia := *cart
	copia.Items = append([]models.CartItem(nil), cart.Items...)
	return &copia
}

// --- Libro de pedidos ---

type MemOrders struct {
	mu      sync.Mutex
	orders  []models.Order
	numbers map[string]bool
}

func NewMemOrders() *MemOrders {
	return &MemOrders{numbers: make(map[string]bool)}
}

func (s *MemOrders) Insert(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.numbers[o.Numero] {
		return ErrDuplicateOrderNumber
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.numbers[o.Numero] = true
	copia := *o
	copia.Items = append([]models.CartItem(nil), o.Items...)
	s.orders = append(s.orders, copia)
	return nil
}

func (s *MemOrders) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID.Hex() == id {
			copia := s.orders[i]
			return &copia, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MemOrders) ListForCustomer(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemOrders) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := append([]models.Order(nil), s.orders...)
	sortNewestFirst(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *MemOrders) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *MemOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...), nil
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// --- Usuarios ---

type MemUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemUsers() *MemUsers {
	return &MemUsers{users: make(map[string]*models.User)}
}

func (s *MemUsers) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	copia := *u
	return &copia, nil
}

func (s *MemUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copia := *u
			return &copia, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (s *MemUsers) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	copia := *u
	s.users[u.ID.Hex()] = &copia
	return nil
}

func (s *MemUsers) CountCustomers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, u := range s.users {
		if u.Role != models.RoleAdmin {
			n++
		}
	}
	return n, nil
}
