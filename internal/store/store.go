// Package store holds the date-sorted, in-memory list of projects for the
// session.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/format"
)

var (
	// ErrNotFound is returned for ids that are not in the store.
	ErrNotFound = errors.New("project not found")

	// ErrEmpty is returned by Next when there is nothing to move to.
	ErrEmpty = errors.New("store is empty")

	// ErrAlreadyLoaded is returned by a second call to Load.
	ErrAlreadyLoaded = errors.New("store already loaded")

	// ErrDuplicateID marks a record whose id was already taken.
	ErrDuplicateID = errors.New("duplicate project id")

	// ErrMissingID marks a record without an id.
	ErrMissingID = errors.New("missing project id")
)

// Store is the ordered collection of records.
//
// It is written once by Load and only read afterwards; callers must not
// call Load concurrently with readers.
type Store struct {
	source    api.Source
	formatter format.Formatter
	logger    *zap.Logger

	records []*Record
	byID    map[string]int
	skipped int
	loaded  bool
}

// New creates an empty Store that will load from source.
func New(source api.Source, formatter format.Formatter, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source:    source,
		formatter: formatter,
		logger:    logger,
		byID:      make(map[string]int),
	}
}

// Load fetches the document once, builds the records and sorts them by
// end date. A fetch failure is returned as is; there is no retry.
func (s *Store) Load(ctx context.Context) error {
	if s.loaded {
		return ErrAlreadyLoaded
	}
	s.loaded = true

	s.logger.Info("loading projects")
	raw, err := s.source.FetchProjects(ctx)
	if err != nil {
		s.logger.Error("project fetch failed", zap.Error(err))
		return fmt.Errorf("failed to load projects: %w", err)
	}

	records := make([]*Record, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	skipped := 0
	for _, p := range raw {
		r, err := s.build(p, seen)
		if err != nil {
			skipped++
			s.logger.Warn("skipping project", zap.String("id", string(p.ID)), zap.Error(err))
			continue
		}
		seen[r.ID] = true
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EndDate < records[j].EndDate
	})

	s.records = records
	s.skipped = skipped
	s.reindex()

	s.logger.Info("projects loaded", zap.Int("count", len(records)), zap.Int("skipped", skipped))
	return nil
}

func (s *Store) build(p api.Project, seen map[string]bool) (*Record, error) {
	if p.ID == "" {
		return nil, ErrMissingID
	}
	if seen[string(p.ID)] {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	return NewRecord(p, s.formatter)
}

func (s *Store) reindex() {
	s.byID = make(map[string]int, len(s.records))
	for i, r := range s.records {
		s.byID[r.ID] = i
	}
}

// Ready reports whether Load has completed successfully.
func (s *Store) Ready() bool {
	return s.loaded && s.records != nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Skipped returns how many raw projects Load rejected.
func (s *Store) Skipped() int {
	return s.skipped
}

// All returns every record in end-date order.
func (s *Store) All() []*Record {
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Filter returns the records matching kind, in store order.
func (s *Store) Filter(kind FilterKind) []*Record {
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		if kind.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*Record, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[i], nil
}

// IndexOf returns the position of id in the full list, or -1.
func (s *Store) IndexOf(id string) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// Next returns the record after id in the full list, wrapping to the
// first record after the last one. Filters are never applied here.
func (s *Store) Next(id string) (*Record, error) {
	if len(s.records) == 0 {
		return nil, ErrEmpty
	}
	i := s.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[(i+1)%len(s.records)], nil
}

// Prev returns the record before id in the full list, wrapping to the last
// record before the first one.
func (s *Store) Prev(id string) (*Record, error) {
	if len(s.records) == 0 {
		return nil, ErrEmpty
	}
	i := s.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[(i-1+len(s.records))%len(s.records)], nil
}
