package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Address struct {
	Alias        string `bson:"alias,omitempty" json:"alias,omitempty"`
	Calle        string `bson:"calle" json:"calle"`
	Ciudad       string `bson:"ciudad" json:"ciudad"`
	Pais         string `bson:"pais" json:"pais"`
	CodigoPostal string `bson:"codigo_postal" json:"codigo_postal"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	Telefono    string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Direcciones []Address          `bson:"direcciones" json:"direcciones"`
	Estado      string             `bson:"estado,omitempty" json:"estado,omitempty"`
	CreatedAt   time.Time          `bson:"fecha_registro" json:"fecha_registro"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
