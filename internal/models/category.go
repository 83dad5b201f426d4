package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Nombre      string              `bson:"nombre" json:"nombre"`
	Slug        string              `bson:"slug" json:"slug"`
	Descripcion string              `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	ParentID    *primitive.ObjectID `bson:"parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time           `bson:"fecha_creacion" json:"fecha_creacion"`
}
