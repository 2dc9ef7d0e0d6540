// Package score keeps the best results across games.
package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/quasilyte/gdata"
)

// ErrNoStore is returned when no persistent storage is available.
var ErrNoStore = errors.New("score store unavailable")

const (
	itemKey      = "best_scores"
	DefaultLimit = 10
	maxNameLen   = 16
)

// Entry is one recorded result.
type Entry struct {
	Name   string    `json:"name"`
	Points int       `json:"points"`
	At     time.Time `json:"at"`
}

// Backend persists raw items. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

// Store is a goroutine-safe table of best scores, highest first.
type Store struct {
	mu      sync.Mutex
	backend Backend
	limit   int
	entries []Entry
	now     func() time.Time
}

// Open opens the per-user data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStore, err)
	}
	return New(m, DefaultLimit)
}

// New loads the table kept by backend.
func New(backend Backend, limit int) (*Store, error) {
	if backend == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Store{backend: backend, limit: limit, now: time.Now}

	data, err := backend.LoadItem(itemKey)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("parse scores: %w", err)
		}
	}
	s.sort()
	return s, nil
}

// Submit records a result and returns its 1-based rank, or 0 when it did not
// make the table. Zero-point games are never recorded.
func (s *Store) Submit(name string, points int) (int, error) {
	if s == nil {
		return 0, ErrNoStore
	}
	if points <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{Name: cleanName(name), Points: points, At: s.now().UTC()}
	s.entries = append(s.entries, e)
	s.sort()

	rank := slices.IndexFunc(s.entries, func(o Entry) bool { return o == e }) + 1
	if rank == 0 {
		return 0, nil
	}

	data, err := json.Marshal(s.entries)
	if err != nil {
		return rank, fmt.Errorf("encode scores: %w", err)
	}
	if err := s.backend.SaveItem(itemKey, data); err != nil {
		return rank, fmt.Errorf("save scores: %w", err)
	}
	return rank, nil
}

// Best returns the highest recorded points.
func (s *Store) Best() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[0].Points
}

// Top returns a copy of up to n best entries.
func (s *Store) Top(n int) []Entry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n = min(max(n, 0), len(s.entries))
	return slices.Clone(s.entries[:n])
}

// sort orders by points, older entries first on ties, and trims to the limit.
func (s *Store) sort() {
	slices.SortStableFunc(s.entries, func(a, b Entry) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		return a.At.Compare(b.At)
	})
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
}

func cleanName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "anonymous"
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return name
}
