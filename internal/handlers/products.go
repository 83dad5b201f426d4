package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda_virtual/internal/database"
	"tienda_virtual/internal/models"
	"tienda_virtual/internal/store"
)

// 🟢 GET /api/products — solo productos visibles
func ListProducts(c *gin.Context) {
	products, err := Catalog.ListVisible(c.Request.Context())
	if err != nil {
		log.Println("❌ Error listando productos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando el catálogo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// 🟢 GET /api/products/:id
func GetProduct(c *gin.Context) {
	product, err := Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando el producto"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// 🟢 POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var input struct {
		Nombre      string            `json:"nombre" binding:"required"`
		SKU         string            `json:"sku" binding:"required"`
		Descripcion string            `json:"descripcion"`
		Precio      int64             `json:"precio" binding:"required,gt=0"`
		Stock       int               `json:"stock" binding:"gte=0"`
		CategoriaID string            `json:"categoria_id" binding:"required"`
		ImagenURL   string            `json:"imagen_url"`
		Atributos   map[string]string `json:"atributos"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	catID, err := primitive.ObjectIDFromHex(input.CategoriaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de categoría inválido"})
		return
	}

	// Se embebe el nombre de la categoría al momento de crear; "General"
	// si la categoría no existe (como el alta original).
	ctx := c.Request.Context()
	categoria := models.CategoryRef{ID: catID, Nombre: "General"}

	var cat models.Category
	err = database.Categorias().FindOne(ctx, bson.M{"_id": catID}).Decode(&cat)
	if err == nil {
		categoria.Nombre = cat.Nombre
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error consultando la categoría"})
		return
	}

	imagenes := []string{}
	if input.ImagenURL != "" {
		imagenes = append(imagenes, input.ImagenURL)
	}

	product := &models.Product{
		SKU:         input.SKU,
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		Categoria:   categoria,
		Precio:      input.Precio,
		Moneda:      "USD",
		Stock:       input.Stock,
		Atributos:   input.Atributos,
		Imagenes:    imagenes,
		Visible:     true,
	}

	if err := Catalog.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrDuplicateSKU) {
			c.JSON(http.StatusConflict, gin.H{"error": "El SKU ya existe"})
			return
		}
		log.Println("❌ Error al agregar producto:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al agregar producto"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Producto agregado correctamente",
		"product": product,
	})
}
