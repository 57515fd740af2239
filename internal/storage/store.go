// Package storage provides a durable single-slot key-value store: each key
// holds one JSON blob that is read and written whole. It is the server-side
// equivalent of a per-device local storage slot.
package storage

import (
	"context"
	"sync"
)

// SlotStore reads and writes whole value blobs by key. There is no partial
// update and no optimistic concurrency: the last writer wins.
type SlotStore interface {
	// Get returns the stored blob and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the blob, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Subscribe returns a channel receiving the keys of mutated slots.
	// Delivery is best effort: slow consumers miss signals, writers never block.
	Subscribe() <-chan string
	Close() error
}

const subscriberBuffer = 16

// notifier fans out slot-change signals to subscribers.
type notifier struct {
	mu   sync.Mutex
	subs []chan string
}

func (n *notifier) Subscribe() <-chan string {
	ch := make(chan string, subscriberBuffer)
	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()
	return ch
}

// notify signals a mutation. Sends that would block are dropped.
func (n *notifier) notify(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- key:
		default:
		}
	}
}
