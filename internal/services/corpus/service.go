package corpus

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Paintersrp/qs/internal/switcher"
	"github.com/Paintersrp/qs/internal/vault"
)

// ErrClosed signals that the corpus service has been shut down and cannot be
// used to produce new snapshots.
var ErrClosed = errors.New("corpus service closed")

// ErrUnavailable indicates that the corpus has not been built yet.
var ErrUnavailable = errors.New("corpus unavailable")

// Stats captures lightweight instrumentation about the shared corpus.
type Stats struct {
	LastRebuild time.Time
	Items       int
	Pending     int
}

// Service owns a shared corpus of switcher items for a vault and coordinates
// incremental updates coming from the vault watcher. Snapshots are immutable;
// callers never see a slice that a later update mutates.
type Service struct {
	mu          sync.RWMutex
	vault       *vault.Vault
	items       []switcher.Item
	built       bool
	pending     map[string]struct{}
	lastRebuild time.Time
	closed      bool

	now    func() time.Time
	maxAge time.Duration
}

// NewService constructs a vault-scoped corpus service.
func NewService(v *vault.Vault) *Service {
	return &Service{
		vault:   v,
		pending: make(map[string]struct{}),
		now:     time.Now,
		maxAge:  time.Hour,
	}
}

// AcquireSnapshot returns the current corpus. The method rebuilds the corpus
// or applies pending updates as needed before handing out the shared slice;
// callers must treat the result as read-only.
func (s *Service) AcquireSnapshot() ([]switcher.Item, error) {
	if s == nil {
		return nil, ErrUnavailable
	}

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if !s.built {
		return nil, ErrUnavailable
	}

	return s.items, nil
}

// QueueUpdate schedules a relative path for incremental refresh.
func (s *Service) QueueUpdate(rel string) {
	if s == nil {
		return
	}

	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return
	}

	normalized := filepath.ToSlash(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.pending == nil {
		s.pending = make(map[string]struct{})
	}
	s.pending[normalized] = struct{}{}
}

// Invalidate drops the cached corpus so the next snapshot rebuilds from disk.
func (s *Service) Invalidate() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.built = false
	s.items = nil
}

// Stats returns instrumentation about the corpus lifecycle.
func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{LastRebuild: s.lastRebuild, Items: len(s.items), Pending: len(s.pending)}
}

// Close releases the service. Subsequent calls to AcquireSnapshot will return
// ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.items = nil
	s.built = false
	s.pending = nil
	return nil
}

func (s *Service) ensureFresh() error {
	if s == nil {
		return ErrUnavailable
	}

	s.mu.RLock()
	closed := s.closed
	needsRebuild := !s.built
	if !needsRebuild && s.maxAge > 0 {
		needsRebuild = s.now().Sub(s.lastRebuild) > s.maxAge
	}
	hasPending := len(s.pending) > 0
	s.mu.RUnlock()

	if closed {
		return ErrClosed
	}

	// Pending updates can add or remove link targets, which shifts the set
	// of phantom items. A full rebuild keeps phantoms consistent.
	if needsRebuild || hasPending {
		return s.rebuild()
	}

	return nil
}

func (s *Service) rebuild() error {
	items, err := s.vault.Snapshot()
	if err != nil {
		return err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.items = items
	s.built = true
	s.pending = make(map[string]struct{})
	s.lastRebuild = s.now()
	return nil
}
