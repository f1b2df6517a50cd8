package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-reporter/internal/weather"
)

var (
	// ErrNotFound is returned when no dataset exists for an id.
	ErrNotFound = errors.New("no weather dataset for id")
)

// Dataset is a normalized weather log together with where it came from.
// Table is the original, never resampled, table.
type Dataset struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Source   string         `json:"source,omitempty"`
	LoadedAt time.Time      `json:"loadedAt"`
	Table    *weather.Table `json:"-"`
}

// MemoryStore is a concurrency-safe in-memory registry of datasets.
type MemoryStore struct {
	mu sync.RWMutex

	// key: dataset id
	data map[string]*Dataset
	// ids in insertion order, oldest first
	order []string

	maxDatasets int
}

// NewMemoryStore creates a new MemoryStore. If maxDatasets is <= 0 it is
// treated as unlimited.
func NewMemoryStore(maxDatasets int) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*Dataset),
		maxDatasets: maxDatasets,
	}
}

// Save stores ds, replacing any dataset with the same id wholesale, and
// evicts the oldest datasets beyond the configured limit.
func (s *MemoryStore) Save(ds Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[ds.ID]; !ok {
		s.order = append(s.order, ds.ID)
	}
	s.data[ds.ID] = &ds

	if s.maxDatasets > 0 && len(s.order) > s.maxDatasets {
		over := len(s.order) - s.maxDatasets
		for _, id := range s.order[:over] {
			log.Info().Str("Dataset", id).Msg("evicting weather dataset")
			delete(s.data, id)
		}
		s.order = append([]string(nil), s.order[over:]...)
	}
}

// Get returns the dataset stored under id.
func (s *MemoryStore) Get(id string) (Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.data[id]
	if !ok {
		return Dataset{}, ErrNotFound
	}
	return *ds, nil
}

// List returns every dataset ordered by name then id.
func (s *MemoryStore) List() []Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Dataset, 0, len(s.data))
	for _, ds := range s.data {
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete removes the dataset stored under id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
