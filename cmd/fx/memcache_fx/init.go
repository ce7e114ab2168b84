package memcache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"checkoutdash/internal/infra"
	mem "checkoutdash/pkg/memcache"
)

const keyPrefix = "checkoutdash:"

var Module = fx.Provide(infra.NewRedis, provideStore)

// provideStore falls back to the in-process store when REDIS_ADDR is unset.
func provideStore(client *redis.Client) mem.Store {
	return mem.NewStore(client, keyPrefix)
}
