package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/genekit/inventory-api/internal/application/dto"
	"github.com/genekit/inventory-api/pkg/logger"
)

// ViewCache caché Redis de vistas derivadas (métricas del tablero). Implementa
// analytics.StatsCache e inventory.ViewInvalidator: la escritura de un
// movimiento borra las claves de la organización/país afectados, que es la
// señal de refresco hacia la capa de presentación.
//
// El caché es best-effort: cualquier error de Redis se registra y se sigue
// contra la base de datos.
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New conecta a Redis y devuelve el caché de vistas.
func New(ctx context.Context, addr string, ttl time.Duration, log *logger.Logger) (*ViewCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &ViewCache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Close cierra la conexión con Redis.
func (c *ViewCache) Close() error {
	return c.rdb.Close()
}

func statsKey(organizationID, countryCode string) string {
	return "dashboard:stats:" + organizationID + ":" + countryCode
}

// GetStats devuelve las métricas cacheadas, si existen.
func (c *ViewCache) GetStats(ctx context.Context, organizationID, countryCode string) (*dto.DashboardStats, bool) {
	raw, err := c.rdb.Get(ctx, statsKey(organizationID, countryCode)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("lectura de caché de tablero")
		return nil, false
	}
	var stats dto.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// SetStats guarda las métricas con el TTL configurado.
func (c *ViewCache) SetStats(ctx context.Context, organizationID, countryCode string, stats *dto.DashboardStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsKey(organizationID, countryCode), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("escritura de caché de tablero")
	}
}

// InvalidateInventoryViews borra las vistas cacheadas de la organización/país.
func (c *ViewCache) InvalidateInventoryViews(ctx context.Context, organizationID, countryCode string) {
	if err := c.rdb.Del(ctx, statsKey(organizationID, countryCode)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidación de caché de tablero")
	}
}

// NopViewCache implementación nula para arrancar sin Redis (REDIS_ADDR vacío).
type NopViewCache struct{}

// GetStats nunca acierta.
func (NopViewCache) GetStats(ctx context.Context, organizationID, countryCode string) (*dto.DashboardStats, bool) {
	return nil, false
}

// SetStats no hace nada.
func (NopViewCache) SetStats(ctx context.Context, organizationID, countryCode string, stats *dto.DashboardStats) {
}

// InvalidateInventoryViews no hace nada.
func (NopViewCache) InvalidateInventoryViews(ctx context.Context, organizationID, countryCode string) {
}
