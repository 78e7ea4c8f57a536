package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	value *string
	err   error
	calls int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretString: f.value}, nil
}

func TestSecretBundle_Lookup(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSecrets{value: aws.String(`{"DATABASE_URL":"postgres://scan:pw@db/stockscan"}`)}
	bundle := newSecretBundle(fake, "stockscan/database", discardLogger())

	now := time.Date(2025, 9, 14, 18, 0, 0, 0, time.UTC)
	bundle.now = func() time.Time { return now }

	v, ok, err := bundle.Lookup(ctx, "DATABASE_URL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "postgres://scan:pw@db/stockscan", v)

	_, ok, err = bundle.Lookup(ctx, "REDIS_PASSWORD")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, fake.calls)

	now = now.Add(5 * time.Minute)
	_, _, err = bundle.Lookup(ctx, "DATABASE_URL")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)
}

func TestSecretBundle_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeSecrets
	}{
		{name: "client_error", fake: &fakeSecrets{err: errors.New("access denied")}},
		{name: "binary_secret", fake: &fakeSecrets{}},
		{name: "not_json", fake: &fakeSecrets{value: aws.String("hunter2")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := newSecretBundle(tt.fake, "stockscan/database", discardLogger())
			_, _, err := bundle.Lookup(context.Background(), "DATABASE_URL")
			assert.Error(t, err)
		})
	}
}

func TestConfig_ApplySecrets(t *testing.T) {
	t.Run("database_and_redis", func(t *testing.T) {
		fake := &fakeSecrets{value: aws.String(`{"DATABASE_URL":"postgres://db/stockscan","REDIS_PASSWORD":"r3d1s"}`)}
		cfg := &Config{Database: DatabaseConfig{URL: "MISSING_DATABASE_URL"}}

		require.NoError(t, cfg.applySecrets(context.Background(), newSecretBundle(fake, "s", discardLogger())))
		assert.Equal(t, "postgres://db/stockscan", cfg.Database.URL)
		assert.Equal(t, "r3d1s", cfg.Redis.Password)
		assert.Equal(t, "r3d1s", cfg.Asynq.RedisPassword)
	})

	t.Run("redis_password_optional", func(t *testing.T) {
		fake := &fakeSecrets{value: aws.String(`{"DATABASE_URL":"postgres://db/stockscan"}`)}
		cfg := &Config{Redis: RedisConfig{Password: "from-env"}}

		require.NoError(t, cfg.applySecrets(context.Background(), newSecretBundle(fake, "s", discardLogger())))
		assert.Equal(t, "from-env", cfg.Redis.Password)
	})

	t.Run("database_url_required", func(t *testing.T) {
		fake := &fakeSecrets{value: aws.String(`{"REDIS_PASSWORD":"r3d1s"}`)}
		cfg := &Config{}

		err := cfg.applySecrets(context.Background(), newSecretBundle(fake, "s", discardLogger()))
		assert.ErrorIs(t, err, ErrMissingRequiredConfig)
	})
}
