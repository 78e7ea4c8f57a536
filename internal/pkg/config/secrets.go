// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretValueGetter is the part of the Secrets Manager client the bundle uses
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretBundle reads one Secrets Manager secret holding a JSON object of
// credentials and caches it for ttl
type SecretBundle struct {
	client secretValueGetter
	name   string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu      sync.Mutex
	values  map[string]string
	fetched time.Time
}

// NewSecretBundle creates a bundle for the named secret
func NewSecretBundle(ctx context.Context, region, name string, logger *slog.Logger) (*SecretBundle, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newSecretBundle(secretsmanager.NewFromConfig(awsCfg), name, logger), nil
}

func newSecretBundle(client secretValueGetter, name string, logger *slog.Logger) *SecretBundle {
	return &SecretBundle{
		client: client,
		name:   name,
		ttl:    5 * time.Minute,
		now:    time.Now,
		logger: logger.With(slog.String("component", "secrets")),
	}
}

// Lookup returns the value stored under key. ok is false when the secret has
// no such key.
func (b *SecretBundle) Lookup(ctx context.Context, key string) (value string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.values == nil || b.now().Sub(b.fetched) >= b.ttl {
		if err := b.fetch(ctx); err != nil {
			return "", false, err
		}
	}

	value, ok = b.values[key]
	return value, ok, nil
}

func (b *SecretBundle) fetch(ctx context.Context) error {
	b.logger.InfoContext(ctx, "fetching secret", slog.String("secret_name", b.name))

	out, err := b.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(b.name),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return fmt.Errorf("failed to get secret %s: %w", b.name, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", b.name)
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return fmt.Errorf("failed to parse secret %s: %w", b.name, err)
	}

	b.values = values
	b.fetched = b.now()
	return nil
}

// applySecrets overrides connection credentials with the values the bundle
// holds. DATABASE_URL is required, REDIS_PASSWORD is optional.
func (c *Config) applySecrets(ctx context.Context, bundle *SecretBundle) error {
	dbURL, ok, err := bundle.Lookup(ctx, "DATABASE_URL")
	if err != nil {
		return err
	}
	if !ok || dbURL == "" {
		return fmt.Errorf("%w: DATABASE_URL in secret %s", ErrMissingRequiredConfig, bundle.name)
	}
	c.Database.URL = dbURL

	password, ok, err := bundle.Lookup(ctx, "REDIS_PASSWORD")
	if err != nil {
		return err
	}
	if ok {
		c.Redis.Password = password
		c.Asynq.RedisPassword = password
	}
	return nil
}
