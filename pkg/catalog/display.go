// ABOUTME: Display list computation: search filter, speed filter, and stable collated sort
// ABOUTME: State owns the fetched models, the active model, and the current query

package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the display ordering.
type SortKey string

const (
	SortName     SortKey = "name"
	SortSpeed    SortKey = "speed"
	SortSize     SortKey = "size"
	SortProvider SortKey = "provider"
)

var sortKeys = []SortKey{SortName, SortSpeed, SortSize, SortProvider}

// ParseSortKey converts a user-supplied string into a SortKey.
// The empty string yields SortName.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortName, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want name, speed, size or provider)", s)
}

// Next returns the following sort key in cycle order.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// SpeedFilter restricts the display list by speed class.
//
// The filter is non-exclusive: FilterMedium keeps fast models
// too, and FilterSlow keeps everything, exactly like FilterAll.
type SpeedFilter string

const (
	FilterAll    SpeedFilter = "all"
	FilterFast   SpeedFilter = "fast"
	FilterMedium SpeedFilter = "medium"
	FilterSlow   SpeedFilter = "slow"
)

var speedFilters = []SpeedFilter{FilterAll, FilterFast, FilterMedium, FilterSlow}

// ParseSpeedFilter converts a user-supplied string into a SpeedFilter.
// The empty string yields FilterAll.
func ParseSpeedFilter(s string) (SpeedFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range speedFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown speed filter %q (want all, fast, medium or slow)", s)
}

// Next returns the following filter in cycle order.
func (f SpeedFilter) Next() SpeedFilter {
	i := slices.Index(speedFilters, f)
	return speedFilters[(i+1)%len(speedFilters)]
}

func (f SpeedFilter) keep(s Speed) bool {
	switch f {
	case FilterFast:
		return s == SpeedFast
	case FilterMedium:
		return s == SpeedFast || s == SpeedMedium
	default:
		return true
	}
}

// Query bundles the user's search, filter, and sort selections.
type Query struct {
	Search string
	Filter SpeedFilter
	Sort   SortKey
	// Locale drives collation for name and provider ordering. Zero value is English.
	Locale language.Tag
}

// ComputeDisplayList filters and sorts models according to q.
// The input slice is never modified; the result is always a fresh slice.
func ComputeDisplayList(models []Model, q Query) []Model {
	term := strings.ToLower(q.Search)

	out := make([]Model, 0, len(models))
	for _, m := range models {
		if !matchesSearch(m, term) {
			continue
		}
		if !q.Filter.keep(ClassifySpeed(m.ID)) {
			continue
		}
		out = append(out, m)
	}

	sortModels(out, q)
	return out
}

func matchesSearch(m Model, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.ID), term) {
		return true
	}
	return m.OwnedBy != "" && strings.Contains(strings.ToLower(m.OwnedBy), term)
}

// sortModels stable-sorts in place so ties keep their input order.
func sortModels(models []Model, q Query) {
	switch q.Sort {
	case SortSpeed:
		slices.SortStableFunc(models, func(a, b Model) int {
			return ClassifySpeed(a.ID).Rank() - ClassifySpeed(b.ID).Rank()
		})
	case SortSize:
		slices.SortStableFunc(models, func(a, b Model) int {
			return ClassifySize(a.ID) - ClassifySize(b.ID)
		})
	case SortProvider:
		c := newCollator(q.Locale)
		slices.SortStableFunc(models, func(a, b Model) int {
			return c.CompareString(a.OwnedBy, b.OwnedBy)
		})
	default:
		c := newCollator(q.Locale)
		slices.SortStableFunc(models, func(a, b Model) int {
			return c.CompareString(a.ID, b.ID)
		})
	}
}

// newCollator returns a fresh collator; collate.Collator is not safe for
// concurrent use, so one is built per sort.
func newCollator(tag language.Tag) *collate.Collator {
	if tag == language.Und {
		tag = language.English
	}
	return collate.New(tag)
}

// DisplayItem is a model annotated for rendering.
type DisplayItem struct {
	Model
	Speed    Speed
	Size     int
	Selected bool
}

// State is the session-local display state: the last fetched listing, the
// active model, and the user's query. It is safe for concurrent use; the
// display list is recomputed from scratch on every call.
type State struct {
	mu      sync.RWMutex
	models  []Model
	current *ActiveModel
	query   Query
}

// NewState creates a State with the default query (all speeds, sorted by name).
func NewState() *State {
	return &State{query: Query{Filter: FilterAll, Sort: SortName}}
}

// SetModels replaces the listing wholesale.
func (s *State) SetModels(models []Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = slices.Clone(models)
}

// Models returns a copy of the listing.
func (s *State) Models() []Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.models)
}

// SetCurrent records the active model. nil clears it.
func (s *State) SetCurrent(m *ActiveModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = m
}

// Current returns the active model, or nil before the first successful fetch.
func (s *State) Current() *ActiveModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentID returns the active model's ID, or "" when unknown.
func (s *State) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Query returns the current query.
func (s *State) Query() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the whole query.
func (s *State) SetQuery(q Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// SetSearch updates the search term.
func (s *State) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = term
}

// SetSort updates the sort key.
func (s *State) SetSort(k SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Sort = k
}

// SetFilter updates the speed filter.
func (s *State) SetFilter(f SpeedFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Filter = f
}

// DisplayList computes the annotated display list for the current query.
func (s *State) DisplayList() []DisplayItem {
	s.mu.RLock()
	models, q, currentID := s.models, s.query, ""
	if s.current != nil {
		currentID = s.current.ID
	}
	s.mu.RUnlock()

	list := ComputeDisplayList(models, q)
	items := make([]DisplayItem, len(list))
	for i, m := range list {
		items[i] = DisplayItem{
			Model:    m,
			Speed:    ClassifySpeed(m.ID),
			Size:     ClassifySize(m.ID),
			Selected: currentID != "" && m.ID == currentID,
		}
	}
	return items
}
