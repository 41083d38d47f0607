package push

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := newRegistry()
	assert.True(t, r.isEmpty())

	id := testIdentity("1.2.3.4:1000")
	ch := newChannel(id, 4, RejectNew)

	prev := r.register(id, ch)
	assert.Nil(t, prev)
	assert.True(t, r.contains(id.Key()))
	assert.False(t, r.isEmpty())
	assert.Equal(t, 1, r.len())

	got, ok := r.get(id.Key())
	require.True(t, ok)
	assert.Same(t, ch, got)

	removed, ok := r.unregister(id.Key(), nil)
	require.True(t, ok)
	assert.Same(t, ch, removed)
	assert.True(t, r.isEmpty())

	// Removing an absent entry is a no-op.
	_, ok = r.unregister(id.Key(), nil)
	assert.False(t, ok)
}

func TestRegistry_RegisterReturnsSuperseded(t *testing.T) {
	r := newRegistry()
	id := testIdentity("1.2.3.4:1000")

	first := newChannel(id, 4, RejectNew)
	second := newChannel(id, 4, RejectNew)

	require.Nil(t, r.register(id, first))
	prev := r.register(id, second)

	assert.Same(t, first, prev)
	assert.Equal(t, 1, r.len())

	got, _ := r.get(id.Key())
	assert.Same(t, second, got)
}

func TestRegistry_GuardedUnregisterSkipsReplacement(t *testing.T) {
	r := newRegistry()
	id := testIdentity("1.2.3.4:1000")

	stale := newChannel(id, 4, RejectNew)
	current := newChannel(id, 4, RejectNew)

	r.register(id, stale)
	r.register(id, current)

	// A stale eviction must not tear down the replacement.
	_, ok := r.unregister(id.Key(), stale)
	assert.False(t, ok)
	assert.True(t, r.contains(id.Key()))

	_, ok = r.unregister(id.Key(), current)
	assert.True(t, ok)
	assert.False(t, r.contains(id.Key()))
}

func TestRegistry_SnapshotIsDetached(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 5; i++ {
		id := testIdentity(fmt.Sprintf("1.2.3.4:%d", 1000+i))
		r.register(id, newChannel(id, 4, RejectNew))
	}

	snap := r.snapshot()
	assert.Len(t, snap, 5)

	// Mutating the registry after the snapshot does not affect it.
	r.unregister("1.2.3.4:1000", nil)
	assert.Len(t, snap, 5)
	assert.Equal(t, 4, r.len())
}

func TestRegistry_ConcurrentMutationMatchesModel(t *testing.T) {
	r := newRegistry()
	const n = 128

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := testIdentity(fmt.Sprintf("10.0.0.1:%d", i))
			r.register(id, newChannel(id, 4, RejectNew))
		}(i)
	}
	wg.Wait()
	require.Equal(t, n, r.len())

	// Concurrently remove every even port while snapshotting.
	for i := 0; i < n; i += 2 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.unregister(fmt.Sprintf("10.0.0.1:%d", i), nil)
		}(i)
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, n/2, r.len())
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("10.0.0.1:%d", i)
		assert.Equal(t, i%2 == 1, r.contains(key), "key %s", key)
	}
}
