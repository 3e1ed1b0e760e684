// Package cache caché de lectura en Redis para el listado de stock bajo.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/pkg/config"
)

var _ inventory.LowStockCache = (*LowStockCache)(nil)

const (
	lowStockKey = "ppf:inventory:low_stock"
	// sin TTL: si expirara, una entrada vieja con generación 0 volvería a ser válida.
	lowStockGenKey = "ppf:inventory:low_stock:gen"
)

// Client envuelve la conexión a Redis.
type Client struct {
	Redis *redis.Client
}

// NewClient abre la conexión y la verifica con Ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return &Client{Redis: rdb}, nil
}

// Close cierra la conexión.
func (c *Client) Close() error {
	return c.Redis.Close()
}

// kv subconjunto de comandos que usa la caché; *redis.Client lo implementa.
type kv interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// lowStockEntry valor guardado; Generation es la generación vigente al empezar el cálculo.
type lowStockEntry struct {
	Generation int64                   `json:"generation"`
	Items      []*entity.InventoryItem `json:"items"`
}

// LowStockCache guarda el resultado de GetLowStockItems serializado en JSON con TTL.
// Invalidate solo incrementa la generación; una entrada de otra generación cuenta como ausente.
type LowStockCache struct {
	rdb kv
	ttl time.Duration
}

// NewLowStockCache construye la caché; ttl <= 0 usa un minuto.
func NewLowStockCache(rdb kv, ttl time.Duration) *LowStockCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LowStockCache{rdb: rdb, ttl: ttl}
}

// Get lee generación y valor en un solo MGET. Siempre devuelve la generación actual,
// que el llamador pasa a Set tras recalcular.
func (c *LowStockCache) Get(ctx context.Context) ([]*entity.InventoryItem, int64, bool, error) {
	vals, err := c.rdb.MGet(ctx, lowStockGenKey, lowStockKey).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("leer %s: %w", lowStockKey, err)
	}
	if len(vals) != 2 {
		return nil, 0, false, fmt.Errorf("leer %s: respuesta inesperada de MGET", lowStockKey)
	}

	var gen int64
	if raw, ok := vals[0].(string); ok {
		gen, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, false, fmt.Errorf("generación inválida en %s: %w", lowStockGenKey, err)
		}
	}

	raw, ok := vals[1].(string)
	if !ok {
		return nil, gen, false, nil
	}
	var entry lowStockEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, gen, false, fmt.Errorf("deserializar %s: %w", lowStockKey, err)
	}
	if entry.Generation != gen {
		return nil, gen, false, nil
	}
	return entry.Items, gen, true, nil
}

// Set guarda items marcados con generation.
func (c *LowStockCache) Set(ctx context.Context, generation int64, items []*entity.InventoryItem) error {
	raw, err := json.Marshal(lowStockEntry{Generation: generation, Items: items})
	if err != nil {
		return fmt.Errorf("serializar stock bajo: %w", err)
	}
	if err := c.rdb.Set(ctx, lowStockKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("guardar %s: %w", lowStockKey, err)
	}
	return nil
}

func (c *LowStockCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, lowStockGenKey).Err(); err != nil {
		return fmt.Errorf("invalidar %s: %w", lowStockKey, err)
	}
	return nil
}
