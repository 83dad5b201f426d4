package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda_virtual/internal/cache"
	"tienda_virtual/internal/models"
	"tienda_virtual/internal/store"
	"tienda_virtual/internal/utils"
)

// 🟢 POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Nombre   string `json:"nombre" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Telefono string `json:"telefono"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error procesando el password"})
		return
	}

	user := &models.User{
		Nombre:      input.Nombre,
		Email:       input.Email,
		Password:    hashed,
		Role:        models.RoleCustomer,
		Telefono:    input.Telefono,
		Direcciones: []models.Address{},
		Estado:      "activo",
	}

	if err := Users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
			return
		}
		log.Println("❌ Error creando usuario:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando la cuenta"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cuenta creada exitosamente. Por favor inicia sesión.",
		"user":    user,
	})
}

// 🟢 POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	user, err := Users.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		log.Println("❌ Error generando JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bienvenido!",
		"token":   token,
		"user":    user,
	})
}

// 🟢 GET /api/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	user, err := cache.GetUser(c.Request.Context(), Users, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, user)
}
