package session

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/pipelineai/auth-gateway/internal/config"
)

// NewStorageFromConfig selects the durable session backend. Unrecognized
// values fall back to the file backend.
func NewStorageFromConfig(cfg config.Config) Storage {
	switch cfg.GetSessionBackend() {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
			DB:       0,
		})
		return NewRedisStorage(client)
	case "memory":
		return NewInMemoryStorage()
	default:
		return NewFileStorage(cfg.GetDataFolder())
	}
}
