package store

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NumberFunc produce números de orden únicos y distinguibles en el
// tiempo. El timestamp solo no alcanza: dos checkouts en el mismo
// instante deben recibir números distintos.
type NumberFunc func(ctx context.Context) (string, error)

// RedisNumbers genera PED-YYYYMMDD-NNNNNN con una secuencia diaria en
// Redis (INCR es atómico entre instancias).
func RedisNumbers(client *redis.Client) NumberFunc {
	return func(ctx context.Context) (string, error) {
		day := time.Now().UTC().Format("20060102")
		key := "pedidos:seq:" + day

		seq, err := client.Incr(ctx, key).Result()
		if err != nil {
			return "", err
		}
		client.Expire(ctx, key, 48*time.Hour)

		return fmt.Sprintf("PED-%s-%06d", day, seq), nil
	}
}

// SequentialNumbers es la variante en memoria, para los stores de
// memoria y los tests.
func SequentialNumbers() NumberFunc {
	var seq int64
	return func(ctx context.Context) (string, error) {
		n := atomic.AddInt64(&seq, 1)
		return fmt.Sprintf("PED-%s-%06d", time.Now().UTC().Format("20060102"), n), nil
	}
}

// RandomNumber es el respaldo cuando el almacenamiento reporta un número
// duplicado: sufijo aleatorio en lugar de secuencia.
func RandomNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PED-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
