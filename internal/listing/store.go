package listing

import (
	"net/url"
	"sync"
)

// QueryStateStore is the observable home of a listing page's URL query
// string. Modeling it as an explicit store keeps the controller independent
// of whatever router or host actually owns the address bar.
type QueryStateStore interface {
	// Current returns the query values as of the call.
	Current() url.Values
	// Replace swaps the whole query string and notifies subscribers.
	Replace(values url.Values)
	// Subscribe registers a listener for every Replace. The returned
	// function removes the subscription.
	Subscribe(fn func(url.Values)) (unsubscribe func())
}

// MemoryStore is an in-process QueryStateStore. Hosts embed it and bridge
// Replace calls to their own navigation layer.
type MemoryStore struct {
	mu          sync.Mutex
	values      url.Values
	subscribers map[int]func(url.Values)
	nextID      int
}

func NewMemoryStore(initial url.Values) *MemoryStore {
	if initial == nil {
		initial = url.Values{}
	}
	return &MemoryStore{
		values:      cloneValues(initial),
		subscribers: make(map[int]func(url.Values)),
	}
}

func (s *MemoryStore) Current() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

func (s *MemoryStore) Replace(values url.Values) {
	s.mu.Lock()
	s.values = cloneValues(values)
	snapshot := cloneValues(s.values)
	listeners := make([]func(url.Values), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	// Notify outside the lock so listeners may call back into the store.
	for _, fn := range listeners {
		fn(cloneValues(snapshot))
	}
}

func (s *MemoryStore) Subscribe(fn func(url.Values)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func cloneValues(values url.Values) url.Values {
	out := url.Values{}
	for k, vs := range values {
		copied := make([]string, len(vs))
		copy(copied, vs)
		out[k] = copied
	}
	return out
}
