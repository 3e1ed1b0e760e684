package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
)

// fakeKV Redis en memoria suficiente para la caché.
type fakeKV struct {
	data    map[string]string
	ttl     time.Duration
	failGet error
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	if f.failGet != nil {
		return redis.NewSliceResult(nil, f.failGet)
	}
	vals := make([]any, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			vals[i] = v
		}
	}
	return redis.NewSliceResult(vals, nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestLowStockCache_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := NewLowStockCache(kv, 30*time.Second)

	_, gen, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "sin entrada")
	assert.Equal(t, int64(0), gen)

	items := []*entity.InventoryItem{{ID: "i1", Name: "Garware Matt", IsRollTracked: true}}
	require.NoError(t, c.Set(ctx, gen, items))
	assert.Equal(t, 30*time.Second, kv.ttl)

	got, _, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)

	require.NoError(t, c.Invalidate(ctx))
	_, gen, ok, _ = c.Get(ctx)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestLowStockCache_LlenadoPrevioAInvalidarNoSeSirve(t *testing.T) {
	ctx := context.Background()
	c := NewLowStockCache(newFakeKV(), time.Minute)

	// Un lector falla la caché y empieza a recalcular.
	_, gen, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Mientras tanto una escritura invalida, y el lector guarda su resultado ya viejo.
	require.NoError(t, c.Invalidate(ctx))
	stale := []*entity.InventoryItem{{ID: "i1", Name: "Suntek"}}
	require.NoError(t, c.Set(ctx, gen, stale))

	got, cur, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "el listado calculado antes de la escritura no debe servirse")
	assert.Nil(t, got)
	assert.Equal(t, gen+1, cur)

	// Un llenado con la generación actual sí vale.
	fresh := []*entity.InventoryItem{{ID: "i2", Name: "Xpel"}}
	require.NoError(t, c.Set(ctx, cur, fresh))
	got, _, ok, err = c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "i2", got[0].ID)
}

func TestLowStockCache_ErrorDeRedis(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = errors.New("connection refused")
	c := NewLowStockCache(kv, 0)

	_, _, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, c.ttl)
}
