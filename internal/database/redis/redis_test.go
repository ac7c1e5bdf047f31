package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quote-service/internal/config"
)

func TestConnect_UnreachableServerFails(t *testing.T) {
	// Port 1 is never a Redis server; the ping check must reject it
	// instead of handing back a dead client.
	_, err := Connect(config.RedisConfig{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
