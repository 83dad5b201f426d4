package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRef es la categoría desnormalizada que viaja embebida en el
// producto. Se copia al crear el producto y no se vuelve a leer de
// 'categorias' en las rutas calientes.
type CategoryRef struct {
	ID     primitive.ObjectID `bson:"id" json:"id"`
	Nombre string             `bson:"nombre" json:"nombre"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU         string             `bson:"sku" json:"sku"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Categoria   CategoryRef        `bson:"categoria" json:"categoria"`
	// Precio en unidades menores (centavos). Nunca float.
	Precio    int64             `bson:"precio" json:"precio"`
	Moneda    string            `bson:"moneda" json:"moneda"`
	Stock     int               `bson:"stock" json:"stock"`
	Atributos map[string]string `bson:"atributos,omitempty" json:"atributos,omitempty"`
	Imagenes  []string          `bson:"imagenes" json:"imagenes"`
	Visible   bool              `bson:"visible" json:"visible"`
	CreatedAt time.Time         `bson:"fecha_creacion" json:"fecha_creacion"`
}
