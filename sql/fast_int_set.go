package sql

import (
	"sort"
	"strconv"
	"strings"
)

// FastIntSet keeps track of a set of non-negative integers. It is optimized
// for sets whose elements are all smaller than 64, which are stored inline;
// larger elements spill to a map.
//
// Mutating methods take a pointer receiver. A FastIntSet that may share a
// spill map with another set must be Copy()ed before mutation.
type FastIntSet struct {
	small uint64
	large map[int]struct{}
}

// NewFastIntSet returns a set initialized with the given values.
func NewFastIntSet(vals ...int) FastIntSet {
	var s FastIntSet
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add adds a value to the set. Values must be non-negative.
func (s *FastIntSet) Add(i int) {
	if i < 64 {
		s.small |= 1 << uint64(i)
		return
	}
	if s.large == nil {
		s.large = make(map[int]struct{})
	}
	s.large[i] = struct{}{}
}

// Contains returns true if the set contains the value.
func (s FastIntSet) Contains(i int) bool {
	if i < 64 {
		return s.small&(1<<uint64(i)) != 0
	}
	_, ok := s.large[i]
	return ok
}

// Empty returns true if the set contains no values.
func (s FastIntSet) Empty() bool {
	return s.small == 0 && len(s.large) == 0
}

// Len returns the number of values in the set.
func (s FastIntSet) Len() int {
	return popCount(s.small) + len(s.large)
}

// Intersects returns true if the sets have any values in common.
func (s FastIntSet) Intersects(o FastIntSet) bool {
	if s.small&o.small != 0 {
		return true
	}
	for v := range s.large {
		if o.Contains(v) {
			return true
		}
	}
	return false
}

// Union returns a new set with all the values of both sets.
func (s FastIntSet) Union(o FastIntSet) FastIntSet {
	r := s.Copy()
	o.ForEach(func(i int) {
		r.Add(i)
	})
	return r
}

// Equals returns true if the two sets contain the same values.
func (s FastIntSet) Equals(o FastIntSet) bool {
	if s.small != o.small || len(s.large) != len(o.large) {
		return false
	}
	for v := range s.large {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of the set.
func (s FastIntSet) Copy() FastIntSet {
	r := FastIntSet{small: s.small}
	if len(s.large) > 0 {
		r.large = make(map[int]struct{}, len(s.large))
		for v := range s.large {
			r.large[v] = struct{}{}
		}
	}
	return r
}

// Ordered returns the values of the set in increasing order.
func (s FastIntSet) Ordered() []int {
	if s.Empty() {
		return nil
	}
	result := make([]int, 0, s.Len())
	for i := 0; i < 64; i++ {
		if s.small&(1<<uint64(i)) != 0 {
			result = append(result, i)
		}
	}
	spill := make([]int, 0, len(s.large))
	for v := range s.large {
		spill = append(spill, v)
	}
	sort.Ints(spill)
	return append(result, spill...)
}

// ForEach calls the given function for each value in the set, in increasing
// order.
func (s FastIntSet) ForEach(f func(i int)) {
	for _, v := range s.Ordered() {
		f(v)
	}
}

func (s FastIntSet) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, v := range s.Ordered() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(v))
	}
	buf.WriteByte(')')
	return buf.String()
}

func popCount(x uint64) int {
	var n int
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}
