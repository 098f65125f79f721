package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CLIENT_TIMEOUT_MS", "")

	cfg := Load("order-service", ":8081")

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "order-service", cfg.ServiceName)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.False(t, cfg.InMemory())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 3*time.Second, cfg.ClientTimeout)
	assert.Equal(t, int32(8), cfg.DBMaxConns)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("PRODUCT_SERVICE_URL", "http://localhost:8082/")
	t.Setenv("CLIENT_TIMEOUT_MS", "250")
	t.Setenv("AUDIT_WORKERS", "not-a-number")

	cfg := Load("order-service", ":8081")

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.True(t, cfg.InMemory())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://localhost:8082", cfg.ProductServiceURL)
	assert.Equal(t, 250*time.Millisecond, cfg.ClientTimeout)
	assert.Equal(t, 4, cfg.AuditWorkers)
}
