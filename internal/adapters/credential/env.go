package credential

import (
	"context"

	"caserelay/internal/platform/config"
)

// EnvProvider reads the token from the process environment on each call
// so a rotated value is picked up without a restart
type EnvProvider struct {
	cfg config.Conf
	key string
}

// NewEnvProvider reads key under cfg, e.g. NewEnvProvider(config.New().Prefix("NOTION_"), "API_TOKEN")
func NewEnvProvider(cfg config.Conf, key string) *EnvProvider {
	return &EnvProvider{cfg: cfg, key: key}
}

// Credential implements Provider
func (p *EnvProvider) Credential(context.Context) (Credential, error) {
	return New(p.cfg.MayString(p.key, ""), "env")
}
