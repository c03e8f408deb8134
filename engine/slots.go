package engine

// Slots stores capture bounds in the stdlib regexp layout: group i occupies
// slots [2*i, 2*i+1], and -1 marks a group that did not participate.
type Slots []int

// NewSlots returns storage for groups capture groups (including group 0),
// with every group marked as not participating.
func NewSlots(groups int) *Slots {
	s := make(Slots, 2*groups)
	s.clear()
	return &s
}

// Get implements Locations.
func (s *Slots) Get(i int) (start, end int, ok bool) {
	if i < 0 || 2*i+1 >= len(*s) {
		return 0, 0, false
	}
	start, end = (*s)[2*i], (*s)[2*i+1]
	if start < 0 || end < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// Len implements Locations.
func (s *Slots) Len() int {
	return len(*s) / 2
}

// Record copies an index slice as returned by FindSubmatchIndex into s.
// A nil idx clears s. Extra entries in idx are ignored.
//
// Group bounds that are impossible for the recorded match (negative, end
// before start, or outside group 0) are stored as not participating.
func (s *Slots) Record(idx []int) {
	if idx == nil {
		s.clear()
		return
	}
	n := copy(*s, idx)
	for i := n; i < len(*s); i++ {
		(*s)[i] = -1
	}
	if len(*s) < 2 {
		return
	}

	lo, hi := (*s)[0], (*s)[1]
	for i := 2; i+1 < len(*s); i += 2 {
		start, end := (*s)[i], (*s)[i+1]
		if start < 0 || end < start || start < lo || end > hi {
			(*s)[i], (*s)[i+1] = -1, -1
		}
	}
}

func (s Slots) clear() {
	for i := range s {
		s[i] = -1
	}
}

// slotsOf returns locs as *Slots. Handing an engine locations from a
// different engine is a programming error.
func slotsOf(locs Locations) *Slots {
	s, ok := locs.(*Slots)
	if !ok {
		panic("engine: capture locations were not allocated by this engine")
	}
	return s
}
