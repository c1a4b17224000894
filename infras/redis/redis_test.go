package redis_test

import (
	"testing"

	"hotel/config"
	"hotel/infras/redis"

	"github.com/stretchr/testify/assert"
)

func TestNew_CacheDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enable = false

	assert.Nil(t, redis.New(cfg))
}
