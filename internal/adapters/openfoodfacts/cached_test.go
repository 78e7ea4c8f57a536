package openfoodfacts_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockscan/internal/adapters/openfoodfacts"
	redis_a "github.com/ammerola/stockscan/internal/adapters/redis_adapter"
	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/test/helpers"
	"github.com/ammerola/stockscan/test/mocks"
)

func TestCachedLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("answers_are_cached", func(t *testing.T) {
		tr := helpers.SetupTestRedis(t)
		ctrl := gomock.NewController(t)
		next := mocks.NewMockProductLookup(ctrl)

		next.EXPECT().LookupName(gomock.Any(), "111").Return("Milk", true, nil).Times(1)
		next.EXPECT().LookupName(gomock.Any(), "222").Return("", false, nil).Times(1)

		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
		lookup := openfoodfacts.NewCachedLookup(next, cache, time.Hour, helpers.TestLogger())

		for range 3 {
			name, found, err := lookup.LookupName(ctx, "111")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "Milk", name)

			_, found, err = lookup.LookupName(ctx, "222")
			require.NoError(t, err)
			assert.False(t, found)
		}

		assert.True(t, tr.Server.Exists("lookup:off:111"))
		assert.True(t, tr.Server.Exists("lookup:off:222"))
	})

	t.Run("failures_are_not_cached", func(t *testing.T) {
		tr := helpers.SetupTestRedis(t)
		ctrl := gomock.NewController(t)
		next := mocks.NewMockProductLookup(ctrl)

		gomock.InOrder(
			next.EXPECT().LookupName(gomock.Any(), "111").
				Return("", false, fmt.Errorf("%w: status 502", domain.ErrIntegration)),
			next.EXPECT().LookupName(gomock.Any(), "111").Return("Milk", true, nil),
		)

		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
		lookup := openfoodfacts.NewCachedLookup(next, cache, time.Hour, helpers.TestLogger())

		_, _, err := lookup.LookupName(ctx, "111")
		require.ErrorIs(t, err, domain.ErrIntegration)
		assert.False(t, tr.Server.Exists("lookup:off:111"))

		name, found, err := lookup.LookupName(ctx, "111")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Milk", name)
	})

	t.Run("entries_expire", func(t *testing.T) {
		tr := helpers.SetupTestRedis(t)
		ctrl := gomock.NewController(t)
		next := mocks.NewMockProductLookup(ctrl)

		next.EXPECT().LookupName(gomock.Any(), "111").Return("Milk", true, nil).Times(2)

		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
		lookup := openfoodfacts.NewCachedLookup(next, cache, time.Minute, helpers.TestLogger())

		_, _, err := lookup.LookupName(ctx, "111")
		require.NoError(t, err)

		tr.Server.FastForward(2 * time.Minute)

		_, _, err = lookup.LookupName(ctx, "111")
		require.NoError(t, err)
	})

	t.Run("redis_down_falls_through", func(t *testing.T) {
		tr := helpers.SetupTestRedis(t)
		ctrl := gomock.NewController(t)
		next := mocks.NewMockProductLookup(ctrl)

		next.EXPECT().LookupName(gomock.Any(), "111").Return("Milk", true, nil)

		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())
		lookup := openfoodfacts.NewCachedLookup(next, cache, time.Hour, helpers.TestLogger())
		tr.Server.Close()

		name, found, err := lookup.LookupName(ctx, "111")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Milk", name)
	})
}

func TestForget(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *helpers.TestRedis {
		tr := helpers.SetupTestRedis(t)
		for _, code := range []string{"111", "222", "333"} {
			require.NoError(t, tr.Server.Set(openfoodfacts.CacheKey(code), `{"name":"x","found":true}`))
		}
		require.NoError(t, tr.Server.Set("scanner:lock:event3", `"host-a"`))
		return tr
	}

	t.Run("single_code", func(t *testing.T) {
		tr := seed(t)
		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())

		n, err := openfoodfacts.Forget(ctx, cache, "222")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.False(t, tr.Server.Exists("lookup:off:222"))
		assert.True(t, tr.Server.Exists("lookup:off:111"))
	})

	t.Run("everything", func(t *testing.T) {
		tr := seed(t)
		cache := redis_a.NewCache(tr.Client, time.Hour, helpers.TestLogger())

		n, err := openfoodfacts.Forget(ctx, cache)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.True(t, tr.Server.Exists("scanner:lock:event3"))
	})
}
