package push

import "sync"

type entry struct {
	identity Identity
	channel  *Channel
}

// registry is the concurrency-safe mapping from connection identity to
// outbound channel. Mutations are mutually exclusive; broadcast iteration
// works on a snapshot so a slow offer never blocks register/unregister of
// unrelated connections. No operation touches the network.
type registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]entry)}
}

// register inserts the pair, keyed by remote address. At most one entry per
// identity: an existing entry is replaced and its channel returned so the
// caller can close the superseded connection.
func (r *registry) register(id Identity, ch *Channel) *Channel {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.entries[id.Key()]
	r.entries[id.Key()] = entry{identity: id, channel: ch}
	if existed {
		return prev.channel
	}
	return nil
}

// unregister removes the entry for key. When ch is non-nil the entry is
// removed only if it still holds that exact channel, so a stale eviction
// cannot tear down a replacement connection registered under the same
// remote address.
func (r *registry) unregister(key string, ch *Channel) (*Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	if ch != nil && cur.channel != ch {
		return nil, false
	}
	delete(r.entries, key)
	return cur.channel, true
}

// snapshot copies the current entry set for lock-free iteration.
func (r *registry) snapshot() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

// drain empties the registry and returns what it held.
func (r *registry) drain() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.entries = make(map[string]entry)
	return out
}

func (r *registry) get(key string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.channel, true
}

func (r *registry) contains(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

func (r *registry) isEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) == 0
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
