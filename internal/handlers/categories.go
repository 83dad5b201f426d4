package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_virtual/internal/database"
	"tienda_virtual/internal/models"
)

// 🟢 GET /api/categories
func ListCategories(c *gin.Context) {
	ctx := c.Request.Context()

	cursor, err := database.Categorias().Find(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Error listando categorías:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando categorías"})
		return
	}
	defer cursor.Close(ctx)

	var categorias []models.Category
	if err := cursor.All(ctx, &categorias); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decodificando categorías"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categorias})
}

// 🟢 POST /api/admin/categories
func CreateCategory(c *gin.Context) {
	var input struct {
		Nombre      string `json:"nombre" binding:"required"`
		Slug        string `json:"slug" binding:"required"`
		Descripcion string `json:"descripcion"`
		ParentID    string `json:"parent_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	categoria := models.Category{
		ID:          primitive.NewObjectID(),
		Nombre:      input.Nombre,
		Slug:        input.Slug,
		Descripcion: input.Descripcion,
		CreatedAt:   time.Now().UTC(),
	}

	if input.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(input.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID de categoría padre inválido"})
			return
		}
		categoria.ParentID = &parentID
	}

	if _, err := database.Categorias().InsertOne(c.Request.Context(), categoria); err != nil {
		log.Println("❌ Error creando categoría:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando la categoría"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Categoría creada correctamente",
		"category": categoria,
	})
}
