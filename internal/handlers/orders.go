package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/models"
	"tienda_virtual/internal/store"
)

// 🟢 GET /api/orders — historial del cliente autenticado
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	orders, err := Orders.ListForCustomer(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Error listando pedidos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando pedidos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// 🟢 GET /api/orders/:id — dueño o admin; nadie más ve datos
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	order, err := Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando el pedido"})
		return
	}

	if order.UserID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// 🟢 GET /api/admin/orders?limit=N — pedidos recientes
func ListRecentOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, err := Orders.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Println("❌ Error listando pedidos recientes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando pedidos"})
		return
	}

	count, err := Orders.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error contando pedidos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  count,
	})
}
