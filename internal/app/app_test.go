package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockscan/internal/adapters/labels"
	"github.com/ammerola/stockscan/internal/adapters/openfoodfacts"
	"github.com/ammerola/stockscan/internal/adapters/queue"
	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/adapters/storage"
	"github.com/ammerola/stockscan/internal/app"
	"github.com/ammerola/stockscan/test/helpers"
)

func TestNewLabelPrinter(t *testing.T) {
	tests := []struct {
		mode      string
		expectErr bool
		check     func(*testing.T, any)
	}{
		{
			mode: labels.ModeOff,
			check: func(t *testing.T, p any) {
				assert.IsType(t, &labels.DisabledPrinter{}, p)
			},
		},
		{
			mode: labels.ModeDirect,
			check: func(t *testing.T, p any) {
				assert.IsType(t, &labels.DirectPrinter{}, p)
			},
		},
		{
			mode: labels.ModeQueue,
			check: func(t *testing.T, p any) {
				assert.IsType(t, &queue.LabelQueue{}, p)
			},
		},
		{mode: "carrier-pigeon", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := helpers.LoadTestConfig()
			cfg.Printer.Mode = tt.mode
			deps := &app.Dependencies{}
			defer deps.Close()

			printer, err := app.NewLabelPrinter(context.Background(), cfg, deps, helpers.TestLogger())
			if tt.expectErr {
				assert.ErrorContains(t, err, "unknown printer mode")
				return
			}
			require.NoError(t, err)
			tt.check(t, printer)
			assert.Equal(t, tt.mode == labels.ModeQueue, deps.AsynqClient != nil)
		})
	}
}

func TestNewLookup(t *testing.T) {
	cfg := helpers.LoadTestConfig()

	t.Run("disabled", func(t *testing.T) {
		cfg.Lookup.Enabled = false
		assert.Nil(t, app.NewLookup(cfg, nil, helpers.TestLogger()))
	})

	t.Run("without_cache", func(t *testing.T) {
		cfg.Lookup.Enabled = true
		assert.IsType(t, &openfoodfacts.Client{}, app.NewLookup(cfg, nil, helpers.TestLogger()))
	})

	t.Run("with_cache", func(t *testing.T) {
		cfg.Lookup.Enabled = true
		tr := helpers.SetupTestRedis(t)
		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
		assert.IsType(t, &openfoodfacts.CachedLookup{}, app.NewLookup(cfg, cache, helpers.TestLogger()))
	})
}

func TestNewStorage_LocalWithoutBucket(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Export.OutputDir = t.TempDir()

	store, err := app.NewStorage(context.Background(), cfg, helpers.TestLogger())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, store)
}

func TestPrinterConfig(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	pc := app.PrinterConfig(cfg)

	assert.Equal(t, cfg.Printer.BaseURL, pc.BaseURL)
	assert.Equal(t, "serial", pc.Transport)
	assert.Equal(t, 128, pc.Threshold)
}
