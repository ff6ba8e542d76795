package abi

import "sync"

// Registry is a lazily-built, cache-friendly projection of one or more
// Contracts keyed by on-wire selector/topic, for O(1) lookup when decoding
// bulk calldata or logs whose originating ABI is not known in advance. It
// mirrors the teacher's sync.Once-guarded signature-cache idiom, generalized
// from a single global package-level cache to an instance any caller can
// build and merge contracts into without sharing mutable package state.
type Registry struct {
	mu       sync.RWMutex
	once     sync.Once
	contract *Contract

	functions map[[4]byte]*Function
	errors    map[[4]byte]*AbiError
	events    map[[32]byte]*Event
}

// NewRegistry builds a Registry over a single contract. The underlying
// caches are built lazily on first lookup.
func NewRegistry(c *Contract) *Registry {
	return &Registry{contract: c}
}

func (r *Registry) build() {
	r.once.Do(func() {
		r.functions = make(map[[4]byte]*Function)
		r.errors = make(map[[4]byte]*AbiError)
		r.events = make(map[[32]byte]*Event)
		if r.contract != nil {
			r.index(r.contract)
		}
	})
}

func (r *Registry) index(c *Contract) {
	for _, list := range c.Functions {
		for i := range list {
			fn := &list[i]
			r.functions[fn.Selector()] = fn
		}
	}
	for _, list := range c.Errors {
		for i := range list {
			er := &list[i]
			r.errors[er.Selector()] = er
		}
	}
	for _, list := range c.Events {
		for i := range list {
			ev := &list[i]
			r.events[ev.Topic0()] = ev
		}
	}
}

// Merge folds another contract's functions/events/errors into the registry,
// building the initial cache first if needed. Safe to call repeatedly; it
// mutates the backing maps under the write lock, so it may run concurrently
// with lookups, which take the read lock.
func (r *Registry) Merge(c *Contract) {
	r.build()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index(c)
}

// FunctionBySelector looks up a function by its 4-byte selector.
func (r *Registry) FunctionBySelector(sel [4]byte) (*Function, bool) {
	r.build()
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[sel]
	return fn, ok
}

// ErrorBySelector looks up a custom error by its 4-byte selector.
func (r *Registry) ErrorBySelector(sel [4]byte) (*AbiError, bool) {
	r.build()
	r.mu.RLock()
	defer r.mu.RUnlock()
	er, ok := r.errors[sel]
	return er, ok
}

// EventByTopic0 looks up an event by its 32-byte signature hash.
func (r *Registry) EventByTopic0(topic [32]byte) (*Event, bool) {
	r.build()
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[topic]
	return ev, ok
}
