package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/fulfillment-router/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

// MemoryDeliveryStore records processed webhook deliveries in process memory.
// State is lost on restart and not shared between replicas.
type MemoryDeliveryStore struct {
	mu       sync.RWMutex
	expiries map[string]time.Time
	now      func() time.Time

	sweepInterval time.Duration
	stop          chan struct{}
	done          chan struct{}
	closeOnce     sync.Once
}

// MemoryDeliveryStoreOption configures a MemoryDeliveryStore
type MemoryDeliveryStoreOption func(*MemoryDeliveryStore)

// WithSweepInterval sets how often expired deliveries are purged
func WithSweepInterval(d time.Duration) MemoryDeliveryStoreOption {
	return func(s *MemoryDeliveryStore) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) MemoryDeliveryStoreOption {
	return func(s *MemoryDeliveryStore) {
		s.now = now
	}
}

// NewMemoryDeliveryStore creates a store and starts its expiry sweeper
func NewMemoryDeliveryStore(opts ...MemoryDeliveryStoreOption) *MemoryDeliveryStore {
	s := &MemoryDeliveryStore{
		expiries:      make(map[string]time.Time),
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.sweepLoop()
	return s
}

// MarkProcessed records the delivery for ttl.
// It returns false when an unexpired record already exists.
func (s *MemoryDeliveryStore) MarkProcessed(_ context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiry, ok := s.expiries[deliveryID]; ok && now.Before(expiry) {
		return false, nil
	}
	s.expiries[deliveryID] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether the delivery has an unexpired record
func (s *MemoryDeliveryStore) IsProcessed(_ context.Context, deliveryID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.expiries[deliveryID]
	return ok && s.now().Before(expiry), nil
}

// Len returns the number of records, expired ones included until the next sweep
func (s *MemoryDeliveryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expiries)
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemoryDeliveryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *MemoryDeliveryStore) sweepLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryDeliveryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, expiry := range s.expiries {
		if !now.Before(expiry) {
			delete(s.expiries, id)
		}
	}
}

var _ shared.IdempotencyStore = (*MemoryDeliveryStore)(nil)
