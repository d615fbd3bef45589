// SPDX-License-Identifier: Apache-2.0

package recognition

import (
	"slices"
	"sync"
)

// Store is an ordered, id-keyed collection of templates. Iteration order is
// insertion order and serves as the tie-break between equal scores.
// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	templates []Template
	index     map[string]int
}

// NewStore creates a Store seeded with the given templates, in order.
func NewStore(templates ...Template) (*Store, error) {
	s := &Store{index: make(map[string]int)}
	for _, t := range templates {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers t. A template with the same ID is replaced in place,
// keeping its position; otherwise t is appended.
func (s *Store) Add(t Template) error {
	_, err := s.Put(t)
	return err
}

// Put is Add that also reports whether an existing template was replaced.
func (s *Store) Put(t Template) (replaced bool, err error) {
	if err := Validate(t); err != nil {
		return false, err
	}
	t = t.clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[t.ID]; ok {
		s.templates[i] = t
		return true, nil
	}
	s.index[t.ID] = len(s.templates)
	s.templates = append(s.templates, t)
	return false, nil
}

// Remove deletes the template with the given ID and reports whether it
// was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.templates = slices.Delete(s.templates, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.templates); j++ {
		s.index[s.templates[j].ID] = j
	}
	return true
}

// Get returns a copy of the template with the given ID.
func (s *Store) Get(id string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Template{}, false
	}
	return s.templates[i].clone(), true
}

// All returns copies of every template in store order.
func (s *Store) All() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.clone()
	}
	return out
}

// ByCategory returns the templates whose category equals category exactly.
func (s *Store) ByCategory(category string) []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Template{}
	for _, t := range s.templates {
		if t.Category == category {
			out = append(out, t.clone())
		}
	}
	return out
}

// Len returns the number of stored templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// each calls fn for every template in store order while holding the read
// lock. fn must not call back into the store.
func (s *Store) each(fn func(Template)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		fn(t)
	}
}
