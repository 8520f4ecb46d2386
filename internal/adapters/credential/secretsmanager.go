package credential

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// DefaultSecretKey is the JSON field holding the token inside the secret string
const DefaultSecretKey = "notion_api_token"

// SecretsAPI is the slice of the Secrets Manager client we use
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerProvider reads {"notion_api_token": "..."} from an AWS secret
// The first successful read is cached for the life of the process
type SecretsManagerProvider struct {
	api      SecretsAPI
	secretID string
	key      string

	mu     sync.Mutex
	cached Credential
}

// NewSecretsManagerProvider builds a provider over an existing client
func NewSecretsManagerProvider(api SecretsAPI, secretID, key string) *SecretsManagerProvider {
	if key == "" {
		key = DefaultSecretKey
	}
	return &SecretsManagerProvider{api: api, secretID: secretID, key: key}
}

// LoadSecretsManager builds a provider using the default AWS credential chain
func LoadSecretsManager(ctx context.Context, region, secretID, key string) (*SecretsManagerProvider, error) {
	if secretID == "" {
		return nil, perr.WithOp(perr.Configf("NOTION_API_SECRET_ARN is not set"), "credential.aws")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfig, "failed to load AWS configuration"), "credential.aws")
	}
	return NewSecretsManagerProvider(secretsmanager.NewFromConfig(cfg), secretID, key), nil
}

// Credential implements Provider
func (p *SecretsManagerProvider) Credential(ctx context.Context) (Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached.Present() {
		return p.cached, nil
	}

	out, err := p.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(p.secretID)})
	if err != nil {
		return Credential{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfig, "Failed to retrieve Notion API token"), "credential.aws")
	}
	if out == nil || out.SecretString == nil {
		return Credential{}, perr.WithOp(perr.Configf("secret has no string value"), "credential.aws")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(*out.SecretString), &fields); err != nil {
		return Credential{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfig, "Invalid secret format"), "credential.aws")
	}
	raw, _ := fields[p.key].(string)
	if raw == "" {
		return Credential{}, perr.WithOp(perr.Configf("%s not found in secret", p.key), "credential.aws")
	}

	c, err := New(raw, "aws")
	if err != nil {
		return Credential{}, err
	}
	p.cached = c
	logger.Named("credential").Debug().Str("source", "aws").Str("token", c.String()).Msg("credential loaded")
	return c, nil
}
