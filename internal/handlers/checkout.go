package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/store"
	"tienda_virtual/internal/utils"
)

// 🟢 POST /api/checkout
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	order, err := Engine.Checkout(c.Request.Context(), userID)
	if err != nil {
		var stockErr *store.InsufficientStockError
		switch {
		case errors.Is(err, store.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Carrito vacío"})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Stock insuficiente",
				"producto_id": stockErr.ProductID,
			})
		case errors.Is(err, store.ErrProductNotFound):
			c.JSON(http.StatusConflict, gin.H{"error": "Un producto del carrito ya no existe"})
		case errors.Is(err, store.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
		default:
			log.Println("❌ Error en checkout:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error procesando el pedido"})
		}
		return
	}

	log.Printf("✅ Pedido %s creado para %s (total %s)", order.Numero, userID, utils.FormatMoney(order.Total))

	// Confirmación por correo, mejor-esfuerzo: nunca falla el checkout.
	if email != "" {
		go func() {
			if err := utils.SendOrderConfirmation(email, order); err != nil {
				log.Println("❌ Error enviando confirmación:", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, order)
}
