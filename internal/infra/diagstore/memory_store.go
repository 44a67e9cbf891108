package diagstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	"github.com/popslsls21/CServices/pkg/util"
)

type cachedReport struct {
	payload   diagnosis.Report
	expiresAt time.Time
}

// MemoryStore is an in-memory report store for tests and cacheless setups.
type MemoryStore struct {
	mu       sync.RWMutex
	reports  map[string]cachedReport
	trending map[string]int64
	displays map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports:  make(map[string]cachedReport),
		trending: make(map[string]int64),
		displays: make(map[string]string),
	}
}

// GetReport implements diagnosis.ReportStore.
func (s *MemoryStore) GetReport(_ context.Context, key string) (diagnosis.Report, bool, error) {
	if key == "" {
		return diagnosis.Report{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.reports[key]
	s.mu.RUnlock()
	if !ok {
		return diagnosis.Report{}, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.reports, key)
		s.mu.Unlock()
		return diagnosis.Report{}, false, nil
	}
	return record.payload, true, nil
}

// SaveReport caches the report with optional TTL.
func (s *MemoryStore) SaveReport(_ context.Context, key string, report diagnosis.Report, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = util.NowUTC().Add(ttl)
	}
	s.reports[key] = cachedReport{
		payload:   report,
		expiresAt: exp,
	}
	return nil
}

// IncrementQuery bumps the counter for a canonical query and records a display string.
func (s *MemoryStore) IncrementQuery(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopQueries returns the most frequent canonical queries.
func (s *MemoryStore) TopQueries(_ context.Context, limit int) ([]diagnosis.TrendingQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]diagnosis.TrendingQuery, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, diagnosis.TrendingQuery{Query: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Query < items[j].Query
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(util.NowUTC())
}

var _ diagnosis.ReportStore = (*MemoryStore)(nil)
