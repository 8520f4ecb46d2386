package module

import (
	"time"

	"caserelay/internal/platform/config"
)

// Cache backends for resolved data source ids
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Caller token modes
const (
	CallerTokenOff      = "off"
	CallerTokenOptional = "optional"
	CallerTokenRequired = "required"
)

// Options holds configuration settings for the cases module
type Options struct {
	Cache       string
	CacheTTL    time.Duration
	RedisPrefix string

	Policy     string
	SourceName string

	// CallerToken controls whether a caller's own bearer is forwarded upstream
	CallerToken string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CASES_")
	return Options{
		Cache:       c.MayEnum("CACHE", CacheMemory, CacheMemory, CacheRedis),
		CacheTTL:    c.MayDuration("CACHE_TTL", 0),
		RedisPrefix: c.MayString("REDIS_PREFIX", ""),
		Policy:      c.MayEnum("DATASOURCE_POLICY", "first", "first", "single", "named"),
		SourceName:  c.MayString("DATASOURCE_NAME", ""),
		CallerToken: c.MayEnum("CALLER_TOKEN", CallerTokenOptional, CallerTokenOff, CallerTokenOptional, CallerTokenRequired),
	}
}
