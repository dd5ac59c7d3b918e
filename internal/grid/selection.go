package grid

import "sort"

// Selection is the set of checked row ids. It is not scoped to a sheet; ids
// that do not exist in the active sheet are simply inert.
type Selection struct {
	ids map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

func (s *Selection) Toggle(id int) bool {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// Set returns a copy suitable for Store.DeleteRows.
func (s *Selection) Set() map[int]struct{} {
	out := make(map[int]struct{}, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}

func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (s *Selection) Clear() {
	s.ids = make(map[int]struct{})
}
