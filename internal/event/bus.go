package event

import (
	"slices"
	"sync"
	"sync/atomic"
)

const subscriberBuffer = 100

type subscriber struct {
	ch    chan Event
	types []Type
}

func (s subscriber) wants(t Type) bool {
	return len(s.types) == 0 || slices.Contains(s.types, t)
}

// InMemoryBus delivers events to in-process subscribers. Publish never
// blocks; a subscriber whose buffer is full misses the event.
type InMemoryBus struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]subscriber
	published   atomic.Int64
	dropped     atomic.Int64
}

func NewBus() *InMemoryBus {
	return &InMemoryBus{subscribers: make(map[uint64]subscriber)}
}

func (b *InMemoryBus) Publish(e Event) {
	b.published.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if !sub.wants(e.Type) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

func (b *InMemoryBus) Subscribe(types ...Type) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	sub := subscriber{ch: make(chan Event, subscriberBuffer), types: slices.Clone(types)}
	b.subscribers[id] = sub

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(sub.ch)
		})
	}

	return sub.ch, unsubscribe
}

// Subscribers returns the number of open subscriptions.
func (b *InMemoryBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Published returns how many events were published.
func (b *InMemoryBus) Published() int64 {
	return b.published.Load()
}

// Dropped returns how many deliveries were skipped because a subscriber lagged.
func (b *InMemoryBus) Dropped() int64 {
	return b.dropped.Load()
}
