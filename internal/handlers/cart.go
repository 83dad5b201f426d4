package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/store"
)

// 🟢 GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	cart, err := Carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Error leyendo carrito:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"total": cart.Total(),
	})
}

// 🟢 POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	var input struct {
		ProductID string `json:"producto_id" binding:"required"`
		Cantidad  int    `json:"cantidad"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	if input.Cantidad == 0 {
		input.Cantidad = 1
	}

	cart, err := Carts.AddItem(c.Request.Context(), userID, input.ProductID, input.Cantidad)
	if errors.Is(err, store.ErrInvalidQuantity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
		return
	}
	if errors.Is(err, store.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		log.Println("❌ Error agregando al carrito:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error agregando al carrito"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"total": cart.Total(),
	})
}

// 🟢 DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	cart, err := Carts.RemoveItem(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		log.Println("❌ Error quitando del carrito:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error quitando del carrito"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"total": cart.Total(),
	})
}
