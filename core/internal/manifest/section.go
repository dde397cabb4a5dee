package manifest

import "sort"

// Kind tells whether a section holds variables directly or named records.
type Kind int

const (
	// Flat sections map variable -> value.
	Flat Kind = iota
	// Named sections map record name -> (variable -> value).
	Named
)

func (k Kind) String() string {
	if k == Named {
		return "named"
	}
	return "flat"
}

// Section is one bracketed block of the manifest.
//
// The kind is chosen when the section is created and never changes. Only the
// map that matches the kind is ever populated.
type Section struct {
	kind    Kind
	values  map[string]string
	records map[string]map[string]string
}

func newSection(kind Kind) *Section {
	s := &Section{kind: kind}
	if kind == Named {
		s.records = make(map[string]map[string]string)
	} else {
		s.values = make(map[string]string)
	}
	return s
}

// Kind returns the section kind.
func (s *Section) Kind() Kind {
	return s.kind
}

func (s *Section) empty() bool {
	if s.kind == Named {
		return len(s.records) == 0
	}
	return len(s.values) == 0
}

func (s *Section) record(name string, create bool) map[string]string {
	rec, ok := s.records[name]
	if !ok && create {
		rec = make(map[string]string)
		s.records[name] = rec
	}
	return rec
}

func (s *Section) names() []string {
	return sortedKeys(s.records)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyValues(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
