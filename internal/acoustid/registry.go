package acoustid

import "sync"

// SubmissionRegistry tracks which title/artist pairs lookups have already
// produced during this process, so the submission workflow can avoid sending
// the service fingerprints for tracks it just told us about. Entries live
// for the process lifetime only; nothing is persisted.
//
// The registry is safe for concurrent use.
type SubmissionRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSubmissionRegistry returns an empty registry.
func NewSubmissionRegistry() *SubmissionRegistry {
	return &SubmissionRegistry{seen: make(map[string]struct{})}
}

// Record marks the pair as identified and reports whether it was new.
func (r *SubmissionRegistry) Record(title, artist string) bool {
	key := registryKey(title, artist)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Seen reports whether the pair was recorded earlier in this process.
func (r *SubmissionRegistry) Seen(title, artist string) bool {
	key := registryKey(title, artist)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[key]
	return ok
}

func registryKey(title, artist string) string {
	return title + "_" + artist
}
