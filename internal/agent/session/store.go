package session

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

const DefaultShards = 32

type shard struct {
	mu sync.RWMutex
	m  map[string]model.Slots
}

// Store holds each user's accumulated slots in memory. Keys are spread over
// independently locked shards so turns for different users do not contend.
type Store struct {
	shards []*shard
}

// NewStore creates a store with n shards; n <= 0 uses DefaultShards.
func NewStore(n int) *Store {
	if n <= 0 {
		n = DefaultShards
	}
	s := &Store{shards: make([]*shard, n)}
	for i := range s.shards {
		s.shards[i] = &shard{m: map[string]model.Slots{}}
	}
	return s
}

func (s *Store) shardFor(userID string) *shard {
	return s.shards[xxhash.Sum64String(userID)%uint64(len(s.shards))]
}

// Get returns the user's slots, or an empty record when none exist.
func (s *Store) Get(userID string) (model.Slots, bool) {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	v, ok := sh.m[userID]
	sh.mu.RUnlock()
	return v, ok
}

// Update applies fn to the user's current slots (empty on first use) and
// stores the result under the shard lock. fn must not call back into Store.
func (s *Store) Update(userID string, fn func(current model.Slots) model.Slots) model.Slots {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	next := fn(sh.m[userID])
	sh.m[userID] = next
	return next
}

// Delete drops the user's entry.
func (s *Store) Delete(userID string) {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	delete(sh.m, userID)
	sh.mu.Unlock()
}

// Len counts entries across all shards.
func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.m)
		sh.mu.RUnlock()
	}
	return n
}
