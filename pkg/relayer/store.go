package relayer

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// PendingIntent is a submission that failed with a retryable ledger error
// and is waiting for another attempt.
type PendingIntent struct {
	Signature [64]byte
	Request   Request
	Expiry    uint64 // intent expiry, Unix seconds
	Attempt   uint
}

// IntentStore tracks parked submissions for one sender, keyed by signature.
type IntentStore struct {
	lock sync.RWMutex

	pending map[[64]byte]*PendingIntent
}

func NewIntentStore() *IntentStore {
	return &IntentStore{
		pending: map[[64]byte]*PendingIntent{},
	}
}

// AddPending parks a submission for retry.
func (s *IntentStore) AddPending(pi *PendingIntent) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.pending[pi.Signature]; exists {
		return fmt.Errorf("signature already pending: %x", pi.Signature[:8])
	}

	s.pending[pi.Signature] = pi
	return nil
}

// Remove drops a parked submission, after success, a terminal error, or
// expiry.
func (s *IntentStore) Remove(sig [64]byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.pending[sig]; !exists {
		return fmt.Errorf("no such pending signature: %x", sig[:8])
	}

	delete(s.pending, sig)
	return nil
}

// GetPending returns all parked submissions sorted by expiry ascending.
func (s *IntentStore) GetPending() []*PendingIntent {
	s.lock.RLock()
	defer s.lock.RUnlock()

	pending := maps.Values(s.pending)

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Expiry < pending[j].Expiry
	})

	return pending
}

func (s *IntentStore) PendingCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.pending)
}

// SenderStore maps sender addresses to their IntentStore.
type SenderStore struct {
	store map[string]*IntentStore
	lock  sync.RWMutex
}

func NewSenderStore() *SenderStore {
	return &SenderStore{
		store: map[string]*IntentStore{},
	}
}

// GetIntentStore returns the IntentStore for a sender, creating it if missing.
func (c *SenderStore) GetIntentStore(sender string) *IntentStore {
	c.lock.Lock()
	defer c.lock.Unlock()

	store, exists := c.store[sender]
	if !exists {
		store = NewIntentStore()
		c.store[sender] = store
	}
	return store
}

// GetTotalPendingCount returns the count of parked submissions across all senders.
func (c *SenderStore) GetTotalPendingCount() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	count := 0
	for _, store := range c.store {
		count += store.PendingCount()
	}
	return count
}

// GetAllPending returns a map from sender to their parked submissions.
func (c *SenderStore) GetAllPending() map[string][]*PendingIntent {
	c.lock.RLock()
	defer c.lock.RUnlock()

	allPending := map[string][]*PendingIntent{}
	for sender, store := range c.store {
		allPending[sender] = store.GetPending()
	}
	return allPending
}
