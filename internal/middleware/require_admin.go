package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/models"
)

// RequireAdmin verifica que el usuario tenga el rol "admin".
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado. Se requieren permisos de administrador."})
		c.Abort()
		return
	}
	c.Next()
}
