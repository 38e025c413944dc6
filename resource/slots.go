package resource

import "sync"

// slots is the storage under a Table. Freed handles are reused most recent
// first, so the slice stays as large as the peak number of live values.
type slots struct {
	mu    sync.RWMutex
	items []slot
	free  []Handle
	live  int
}

type slot struct {
	value  any
	typeID uint32
	used   bool
}

func (s *slots) put(typeID uint32, value any) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live++
	it := slot{value: value, typeID: typeID, used: true}
	if n := len(s.free); n > 0 {
		h := s.free[n-1]
		s.free = s.free[:n-1]
		s.items[h-1] = it
		return h
	}
	s.items = append(s.items, it)
	return Handle(len(s.items))
}

// lookup returns the slot for h. The bool is false for handle 0, handles
// never issued and handles already taken.
func (s *slots) lookup(h Handle) (slot, bool) {
	if h == 0 {
		return slot{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(h) > len(s.items) || !s.items[h-1].used {
		return slot{}, false
	}
	return s.items[h-1], true
}

// take empties h and returns what it held.
func (s *slots) take(h Handle) (slot, bool) {
	if h == 0 {
		return slot{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(h) > len(s.items) || !s.items[h-1].used {
		return slot{}, false
	}
	it := s.items[h-1]
	s.items[h-1] = slot{}
	s.free = append(s.free, h)
	s.live--
	return it, true
}

func (s *slots) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}
