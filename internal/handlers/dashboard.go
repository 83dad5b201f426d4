package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 🟢 GET /api/admin/dashboard — estadísticas de ventas
func GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalRevenue, err := Stats.TotalRevenue(ctx)
	if err != nil {
		log.Println("❌ Error calculando ingresos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error calculando estadísticas"})
		return
	}

	topProducts, err := Stats.TopProducts(ctx, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error calculando top de productos"})
		return
	}

	topCategory, err := Stats.TopCategoryByRevenue(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error calculando top de categorías"})
		return
	}

	monthly, err := Stats.RevenueByMonth(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error calculando ingresos mensuales"})
		return
	}

	customers, err := Stats.CustomerCount(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error contando clientes"})
		return
	}

	orderCount, err := Orders.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error contando pedidos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingresos_totales": totalRevenue,
		"top_productos":    topProducts,
		"top_categoria":    topCategory,
		"ingresos_por_mes": monthly,
		"total_clientes":   customers,
		"total_pedidos":    orderCount,
	})
}
