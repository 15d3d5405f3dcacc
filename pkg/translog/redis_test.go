package translog_test

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

func TestNewRedisStorage(t *testing.T) {
	t.Parallel()

	t.Run("panics with nil client", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			translog.NewRedisStorage(nil)
		})
	})

	t.Run("uses default key", func(t *testing.T) {
		t.Parallel()
		client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
		t.Cleanup(func() { _ = client.Close() })

		s := translog.NewRedisStorage(client)
		assert.Equal(t, "vendingkit:translog", s.Key())
	})

	t.Run("custom key", func(t *testing.T) {
		t.Parallel()
		client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
		t.Cleanup(func() { _ = client.Close() })

		s := translog.NewRedisStorage(client, translog.WithKey("machine-7:translog"))
		assert.Equal(t, "machine-7:translog", s.Key())
	})
}
