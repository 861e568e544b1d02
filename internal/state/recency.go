package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/qs/internal/constants"
)

// maxRecencyEntries caps the persisted open history so the file stays small
// even in long-lived vaults.
const maxRecencyEntries = 200

type recencyData struct {
	Opens         map[string]time.Time `yaml:"opens"`
	LastQuery     string               `yaml:"last_query"`
	LastSelection string               `yaml:"last_selection"`
}

// RecencyStore persists which notes were opened and when, plus the last
// switcher session, so ranking and session restore survive restarts.
type RecencyStore struct {
	mu   sync.Mutex
	path string
	data recencyData
	now  func() time.Time
}

// OpenRecencyStore loads the recency file under the config directory,
// starting empty when it does not exist yet.
func OpenRecencyStore(home string) (*RecencyStore, error) {
	path := filepath.Join(home, constants.ConfigDir, constants.RecencyFile)

	store := &RecencyStore{
		path: path,
		data: recencyData{Opens: make(map[string]time.Time)},
		now:  time.Now,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &store.data); err != nil {
		return nil, err
	}
	if store.data.Opens == nil {
		store.data.Opens = make(map[string]time.Time)
	}
	return store, nil
}

// RecordOpen marks a note as opened now and persists the store.
func (s *RecencyStore) RecordOpen(id string) error {
	if s == nil || id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Opens[id] = s.now()
	s.prune()
	return s.save()
}

// SetSession persists the last query and selection for session restore.
func (s *RecencyStore) SetSession(query, selection string) error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.LastQuery = query
	s.data.LastSelection = selection
	return s.save()
}

// Session returns the last persisted query and selection.
func (s *RecencyStore) Session() (query, selection string) {
	if s == nil {
		return "", ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LastQuery, s.data.LastSelection
}

// Ranks returns each opened note's recency rank, rank 0 being the most
// recently opened. Notes never opened are absent.
func (s *RecencyStore) Ranks() map[string]int {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		id string
		at time.Time
	}
	entries := make([]entry, 0, len(s.data.Opens))
	for id, at := range s.data.Opens {
		entries = append(entries, entry{id: id, at: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].at.Equal(entries[j].at) {
			return entries[i].at.After(entries[j].at)
		}
		return entries[i].id < entries[j].id
	})

	ranks := make(map[string]int, len(entries))
	for i, e := range entries {
		ranks[e.id] = i
	}
	return ranks
}

func (s *RecencyStore) prune() {
	if len(s.data.Opens) <= maxRecencyEntries {
		return
	}

	type entry struct {
		id string
		at time.Time
	}
	entries := make([]entry, 0, len(s.data.Opens))
	for id, at := range s.data.Opens {
		entries = append(entries, entry{id: id, at: at})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })

	for _, e := range entries[maxRecencyEntries:] {
		delete(s.data.Opens, e.id)
	}
}

func (s *RecencyStore) save() error {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
