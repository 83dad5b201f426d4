package handlers

import (
	"tienda_virtual/internal/store"
)

// Stores compartidos por los handlers; se configuran una vez en el
// arranque con Init.
var (
	Catalog store.Catalog
	Carts   store.CartStore
	Orders  store.OrderLedger
	Users   store.UserDirectory
	Engine  *store.CheckoutEngine
	Stats   *store.Analytics
)

func Init(catalog store.Catalog, carts store.CartStore, orders store.OrderLedger, users store.UserDirectory, engine *store.CheckoutEngine, stats *store.Analytics) {
	Catalog = catalog
	Carts = carts
	Orders = orders
	Users = users
	Engine = engine
	Stats = stats
}
