package storage

import (
	"context"
	"sync"

	"github.com/florinledger/florin/internal/model"
)

// subscriber is one live-query registration. Its channel has capacity one
// and always holds the most recent snapshot not yet consumed.
type subscriber struct {
	ch     chan []model.Transaction
	userID string
}

// watcher fans full-collection snapshots out to subscribers. Each change to
// a user's collection replaces whatever snapshot a slow subscriber has not
// read yet, so consumers always observe the latest state.
type watcher struct {
	subs   map[*subscriber]struct{}
	stopCh chan struct{}
	mu     sync.Mutex
	closed bool
}

func newWatcher() *watcher {
	return &watcher{
		subs:   make(map[*subscriber]struct{}),
		stopCh: make(chan struct{}),
	}
}

func (w *watcher) add(userID string) (*subscriber, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrStorageClosed
	}

	sub := &subscriber{
		ch:     make(chan []model.Transaction, 1),
		userID: userID,
	}
	w.subs[sub] = struct{}{}
	return sub, nil
}

func (w *watcher) remove(sub *subscriber) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.subs[sub]; !ok {
		return
	}
	delete(w.subs, sub)
	close(sub.ch)
}

// deliver replaces the subscriber's pending snapshot with the given one.
// Both sends are non-blocking: if the buffer is full the stale snapshot is
// drained first, and if the consumer races us and empties the channel between
// the two selects the fresh snapshot still goes through.
func (w *watcher) deliver(sub *subscriber, snapshot []model.Transaction) {
	select {
	case sub.ch <- snapshot:
		return
	default:
	}

	select {
	case <-sub.ch:
	default:
	}

	select {
	case sub.ch <- snapshot:
	default:
	}
}

func (w *watcher) broadcast(userID string, snapshot []model.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	for sub := range w.subs {
		if sub.userID != userID {
			continue
		}
		w.deliver(sub, snapshot)
	}
}

func (w *watcher) hasSubscribers(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for sub := range w.subs {
		if sub.userID == userID {
			return true
		}
	}
	return false
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	close(w.stopCh)

	for sub := range w.subs {
		delete(w.subs, sub)
		close(sub.ch)
	}
}

// Subscribe registers a live query over the user's collection. The returned
// channel immediately carries the current snapshot and then the full
// replacement snapshot after every change. The channel closes when ctx is
// cancelled or the storage shuts down.
func (s *SQLiteStorage) Subscribe(ctx context.Context, userID string) (<-chan []model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	// Register before the initial read so a concurrent change between the
	// two cannot be missed; it would simply replace the initial snapshot.
	sub, err := s.watcher.add(userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.ListTransactions(ctx, userID)
	if err != nil {
		s.watcher.remove(sub)
		return nil, err
	}
	s.watcher.deliver(sub, snapshot)

	go func() {
		select {
		case <-ctx.Done():
			s.watcher.remove(sub)
		case <-s.watcher.stopCh:
		}
	}()

	return sub.ch, nil
}
