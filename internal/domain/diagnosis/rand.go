package diagnosis

import (
	"math/rand"
	"sync"
	"time"
)

// sampler wraps a rand.Rand with a mutex so concurrent diagnoses can share
// one injected source.
type sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSampler(rng *rand.Rand) *sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &sampler{rng: rng}
}

// sample returns up to n random items without replacement, order randomized.
func (s *sampler) sample(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(items))
	s.mu.Unlock()

	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, items[idx])
	}
	return out
}

// sampleRelated mirrors sample for related-issue values.
func (s *sampler) sampleRelated(items []RelatedIssue, n int) []RelatedIssue {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(items))
	s.mu.Unlock()

	out := make([]RelatedIssue, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, items[idx])
	}
	return out
}
