// Package audit menyimpan jejak aktivitas triase di memori.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultCapacity = 1000

// Entry adalah satu catatan audit.
type Entry struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Actor     string                 `json:"actor"`
	Action    string                 `json:"action"`
	Subject   string                 `json:"subject"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
}

// Store adalah penyimpanan audit berkapasitas tetap; entry terlama dibuang
// saat penuh. Store diteruskan secara eksplisit ke komponen yang mencatat.
type Store struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Record menambahkan entry dan mengembalikannya.
func (s *Store) Record(actor, action, subject string, detail map[string]interface{}) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == s.capacity {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Recent mengembalikan paling banyak limit entry, terbaru lebih dulu.
// limit <= 0 berarti semua.
func (s *Store) Recent(limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
