package credential

import (
	"context"
	"strings"

	"caserelay/internal/platform/config"
	perr "caserelay/internal/platform/errors"
)

// Sources accepted by NOTION_CREDENTIAL_SOURCE
const (
	SourceEnv      = "env"
	SourceAWS      = "aws"
	SourceKeychain = "keychain"
)

// FromConfig selects the provider named by NOTION_CREDENTIAL_SOURCE (default env)
func FromConfig(ctx context.Context, cfg config.Conf) (Provider, error) {
	n := cfg.Prefix("NOTION_")
	switch src := strings.ToLower(n.MayString("CREDENTIAL_SOURCE", SourceEnv)); src {
	case SourceEnv:
		return NewEnvProvider(n, "API_TOKEN"), nil
	case SourceAWS:
		return LoadSecretsManager(ctx,
			cfg.MayString("AWS_REGION", ""),
			n.MayString("API_SECRET_ARN", ""),
			n.MayString("API_SECRET_KEY", DefaultSecretKey),
		)
	case SourceKeychain:
		return NewKeychainProvider(n.MayString("KEYCHAIN_SERVICE", ""), n.MayString("KEYCHAIN_USER", "")), nil
	default:
		return nil, perr.WithField(perr.Configf("unknown credential source %q", src), n.Name("CREDENTIAL_SOURCE"))
	}
}
