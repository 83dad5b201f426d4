package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tienda_virtual/internal/models"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret_change_me"
	}
	return []byte(secret)
}

func GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// JWTSecret expone la clave para el middleware de autenticación.
func JWTSecret() []byte { return jwtSecret() }
