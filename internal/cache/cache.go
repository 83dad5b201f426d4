package cache

import (
	"context"
	"encoding/json"
	"time"

	"tienda_virtual/internal/database"
	"tienda_virtual/internal/models"
	"tienda_virtual/internal/store"
)

const UserCacheTTL = 5 * time.Minute

// GetUser recupera un usuario desde Redis o, si no está cacheado, desde
// el directorio de usuarios (y lo cachea).
func GetUser(ctx context.Context, users store.UserDirectory, userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Intentar el cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Leer del almacenamiento
	user, err := users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. Cachear
	if jsonData, err := json.Marshal(user); err == nil {
		database.Redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return user, nil
}

// InvalidateUser borra la entrada cacheada tras una mutación del usuario.
func InvalidateUser(ctx context.Context, userID string) {
	database.Redis.Del(ctx, "user:"+userID)
}
