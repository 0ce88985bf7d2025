package activity

import (
	"sync"
	"time"
)

// Entry is a single activity feed item.
type Entry struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Activity actions.
const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
)

// DefaultMaxEntriesPerUser is the default retention limit for each
// user's feed.
const DefaultMaxEntriesPerUser = 200

// Store keeps a bounded, per-user activity feed in memory. Newest
// entries come first on read.
type Store struct {
	mu         sync.RWMutex
	entries    map[string][]Entry
	maxPerUser int
}

// NewStore creates a store with the default retention limit.
func NewStore() *Store {
	return NewStoreWithLimit(DefaultMaxEntriesPerUser)
}

// NewStoreWithLimit creates a store with a custom retention limit.
func NewStoreWithLimit(maxPerUser int) *Store {
	if maxPerUser <= 0 {
		maxPerUser = DefaultMaxEntriesPerUser
	}
	return &Store{
		entries:    make(map[string][]Entry),
		maxPerUser: maxPerUser,
	}
}

// Record appends an entry to the user's feed, evicting the oldest
// entries past the retention limit.
func (s *Store) Record(userID string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := append(s.entries[userID], entry)
	if len(feed) > s.maxPerUser {
		excess := len(feed) - s.maxPerUser
		feed = feed[excess:]
	}
	s.entries[userID] = feed
}

// Recent returns up to limit of the user's newest entries, newest
// first.
func (s *Store) Recent(userID string, limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed := s.entries[userID]
	if len(feed) == 0 {
		return []Entry{}
	}

	if limit <= 0 || limit > len(feed) {
		limit = len(feed)
	}

	// Stored oldest-first; serve newest-first.
	result := make([]Entry, 0, limit)
	for i := len(feed) - 1; i >= len(feed)-limit; i-- {
		result = append(result, feed[i])
	}
	return result
}

// Count returns the number of retained entries for a user.
func (s *Store) Count(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[userID])
}
