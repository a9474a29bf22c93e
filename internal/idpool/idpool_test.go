package idpool_test

import (
	"sync"
	"testing"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/idpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateFirstFit(t *testing.T) {
	pool := idpool.New(8)

	for want := 0; want < 3; want++ {
		id, err := pool.Allocate()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestReleaseMakesIDReusable(t *testing.T) {
	pool := idpool.New(8)

	first, err := pool.Allocate()
	require.NoError(t, err)
	_, err = pool.Allocate()
	require.NoError(t, err)

	pool.Release(first)

	id, err := pool.Allocate()
	require.NoError(t, err)
	assert.Equal(t, first, id, "released identifier should be reused first")
}

func TestReleaseIsIdempotent(t *testing.T) {
	pool := idpool.New(4)

	id, err := pool.Allocate()
	require.NoError(t, err)

	pool.Release(id)
	pool.Release(id)
	pool.Release(99)

	assert.Equal(t, 0, pool.InUse())
}

func TestAllocateExhausted(t *testing.T) {
	pool := idpool.New(2)

	_, err := pool.Allocate()
	require.NoError(t, err)
	_, err = pool.Allocate()
	require.NoError(t, err)

	_, err = pool.Allocate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, idpool.ErrExhausted))
}

func TestConcurrentAllocateUnique(t *testing.T) {
	const n = 64

	pool := idpool.New(n)
	ids := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := pool.Allocate()
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "identifier %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
