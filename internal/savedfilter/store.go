// Package savedfilter persists named filter queries. Filters are copied by
// value on the way in and out.
package savedfilter

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/aitodo/internal/ids"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

var ErrEmptyName = model.ErrEmptyName

type Options struct {
	Now   func() time.Time
	NewID ids.Generator
}

type Store struct {
	store   *storage.Adapter
	filters []model.SavedFilter
	now     func() time.Time
	newID   ids.Generator
}

func New(ctx context.Context, store *storage.Adapter, opts Options) *Store {
	s := &Store{store: store, now: opts.Now, newID: opts.NewID}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = ids.Prefixed(ids.FilterPrefix)
	}
	s.filters = store.LoadSavedFilters(ctx)
	return s
}

// Save stores a copy of f under name and returns the new id.
func (s *Store) Save(ctx context.Context, name string, f model.TodoFilter) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !f.DueDateRange.IsValid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidDueDateRange, f.DueDateRange)
	}
	now := s.now()
	sf := model.SavedFilter{ID: s.newID(), Name: name, Filter: f.Clone(), CreatedAt: now, UpdatedAt: now}
	s.filters = append(s.filters, sf)
	return sf.ID, s.persist(ctx)
}

// Update replaces the name and filter of id. Unknown ids report false.
func (s *Store) Update(ctx context.Context, id, name string, f model.TodoFilter) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.filters[i].Name = name
	s.filters[i].Filter = f.Clone()
	s.filters[i].UpdatedAt = s.now()
	return true, s.persist(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.filters = slices.Delete(s.filters, i, i+1)
	return true, s.persist(ctx)
}

func (s *Store) Get(id string) (model.SavedFilter, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.SavedFilter{}, false
	}
	return clone(s.filters[i]), true
}

// FindByName returns the first filter whose name matches case-insensitively.
func (s *Store) FindByName(name string) (model.SavedFilter, bool) {
	name = strings.TrimSpace(name)
	for _, sf := range s.filters {
		if strings.EqualFold(sf.Name, name) {
			return clone(sf), true
		}
	}
	return model.SavedFilter{}, false
}

func (s *Store) List() []model.SavedFilter {
	out := make([]model.SavedFilter, len(s.filters))
	for i, sf := range s.filters {
		out[i] = clone(sf)
	}
	return out
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.filters, func(sf model.SavedFilter) bool { return sf.ID == id })
}

func (s *Store) persist(ctx context.Context) error {
	return s.store.SaveSavedFilters(ctx, s.filters)
}

func clone(sf model.SavedFilter) model.SavedFilter {
	sf.Filter = sf.Filter.Clone()
	return sf
}
