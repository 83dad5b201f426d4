package store

import (
	"errors"
	"fmt"
)

// Errores tipados del núcleo. Los handlers los traducen a estados HTTP;
// ninguno debe tumbar el proceso.
var (
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrOrderNotFound        = errors.New("pedido no encontrado")
	ErrCartNotFound         = errors.New("carrito no encontrado")
	ErrCustomerNotFound     = errors.New("cliente no encontrado")
	ErrEmptyCart            = errors.New("carrito vacío")
	ErrInvalidQuantity      = errors.New("cantidad inválida")
	ErrDuplicateOrderNumber = errors.New("número de orden duplicado")
	ErrDuplicateEmail       = errors.New("el email ya está registrado")
	ErrDuplicateSKU         = errors.New("el SKU ya existe")
)

// InsufficientStockError identifica el producto que no pudo satisfacerse.
// El checkout garantiza que ningún descuento parcial de stock sobrevive a
// este fallo.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s", e.ProductID)
}
