package domain

import "sort"

// FileSet is an unordered set of file names.
type FileSet map[string]struct{}

// NewFileSet builds a set from names. Duplicates collapse.
func NewFileSet(names ...string) FileSet {
	s := make(FileSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s FileSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set. Safe on a nil set.
func (s FileSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names.
func (s FileSet) Len() int {
	return len(s)
}

// Minus returns the names of s that are in none of others.
func (s FileSet) Minus(others ...FileSet) FileSet {
	out := make(FileSet, len(s))
	for n := range s {
		excluded := false
		for _, o := range others {
			if o.Has(n) {
				excluded = true
				break
			}
		}
		if !excluded {
			out[n] = struct{}{}
		}
	}
	return out
}

// Intersect returns the names present in both s and other.
func (s FileSet) Intersect(other FileSet) FileSet {
	out := make(FileSet)
	for n := range s {
		if other.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Sorted returns the names in lexicographic order.
func (s FileSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
