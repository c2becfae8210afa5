// Package cache implementa la caché de permisos sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/application/permission"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

var _ permission.Cache = (*PermissionCache)(nil)

const permissionKeyPrefix = "pos:permissions:"

// NewRedisClient abre el cliente desde REDIS_URL y verifica la conexión.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// PermissionCache guarda el conjunto resuelto de cada vendedor con TTL.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache construye la caché.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl}
}

func permissionKey(userID, version int64) string {
	return fmt.Sprintf("%s%d:v%d", permissionKeyPrefix, userID, version)
}

func versionKey(userID int64) string {
	return fmt.Sprintf("%sver:%d", permissionKeyPrefix, userID)
}

// Version devuelve 0 si el usuario nunca fue invalidado.
func (c *PermissionCache) Version(ctx context.Context, userID int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get versión permisos: %w", err)
	}
	return v, nil
}

// Get devuelve nil, nil si la clave no existe.
func (c *PermissionCache) Get(ctx context.Context, userID, version int64) (*entity.PermissionSet, error) {
	raw, err := c.client.Get(ctx, permissionKey(userID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get permisos: %w", err)
	}
	var perms entity.PermissionSet
	if err := json.Unmarshal(raw, &perms); err != nil {
		return nil, fmt.Errorf("decodificar permisos cacheados: %w", err)
	}
	return &perms, nil
}

// Set guarda el conjunto con el TTL configurado.
func (c *PermissionCache) Set(ctx context.Context, userID, version int64, perms entity.PermissionSet) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("codificar permisos: %w", err)
	}
	if err := c.client.Set(ctx, permissionKey(userID, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set permisos: %w", err)
	}
	return nil
}

// Invalidate avanza la versión del usuario. Las entradas viejas expiran por TTL.
func (c *PermissionCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis incr versión permisos: %w", err)
	}
	return nil
}
