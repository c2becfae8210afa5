package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestPermissionKey(t *testing.T) {
	assert.Equal(t, "pos:permissions:42:v3", permissionKey(42, 3))
	assert.Equal(t, "pos:permissions:ver:42", versionKey(42))
}

// Redis caído: el error sube al resolver, que lo registra y sigue con la base de datos.
func TestPermissionCache_ServidorInalcanzable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewPermissionCache(client, time.Minute)

	_, err := c.Version(context.Background(), 1)
	assert.Error(t, err)

	perms, err := c.Get(context.Background(), 1, 0)
	assert.Error(t, err)
	assert.Nil(t, perms)

	assert.Error(t, c.Invalidate(context.Background(), 1))
}

func TestNewRedisClient_URLInvalida(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://no-es-redis")
	assert.Error(t, err)
}
