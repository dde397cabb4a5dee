// Package manifest reads and writes the git-pkg manifest file.
//
// The format is a small subset of git-config: bracketed section headers with at
// most one quoted sub-section name, followed by "variable = value" lines.
//
//	[dependency "vendor/lib"]
//	  branch = master
//	  commit = HEAD
//	  path = vendor/lib
//	  url = https://example.com/owner/lib.git
//
// A section is either flat (variables directly under the header) or named (one
// record per quoted name). Output is always sorted by section, record and
// variable so that the file diffs cleanly.
package manifest

import (
	"github.com/rs/zerolog/log"
)

type loadState int

const (
	unloaded loadState = iota
	loaded
)

// Manifest is the in-memory view of one manifest file.
//
// Every public method loads the file on first use. A missing file is an empty
// manifest. After a failed load the read accessors see an empty manifest and
// Load, the mutators, Store and WriteTo return the load error. Mutations only
// touch memory until Store is called.
type Manifest struct {
	path     string
	state    loadState
	loadErr  error
	sections map[string]*Section
}

// New returns a manifest bound to path. Nothing is read until first use.
func New(path string) *Manifest {
	return &Manifest{
		path:     path,
		sections: make(map[string]*Section),
	}
}

// Path returns the file the manifest reads from and stores to.
func (m *Manifest) Path() string {
	return m.path
}

// Load reads the file if that has not happened yet and returns the result of
// that single attempt.
func (m *Manifest) Load() error {
	return m.ensureLoaded()
}

func (m *Manifest) ensureLoaded() error {
	if m.state == loaded {
		return m.loadErr
	}
	m.state = loaded

	sections, err := parseFile(m.path)
	if err != nil {
		log.Debug().Err(err).Str("manifest", m.path).Msg("manifest load failed")
		m.loadErr = err
		return err
	}
	m.sections = sections
	log.Debug().Str("manifest", m.path).Int("sections", len(sections)).Msg("manifest loaded")
	return nil
}

// Empty reports whether the manifest holds no sections.
func (m *Manifest) Empty() bool {
	m.ensureLoaded()
	return len(m.sections) == 0
}

// Sections returns all section names, sorted.
func (m *Manifest) Sections() []string {
	m.ensureLoaded()
	return sortedKeys(m.sections)
}

// Section returns the section with the given name.
func (m *Manifest) Section(name string) (*Section, bool) {
	m.ensureLoaded()
	s, ok := m.sections[name]
	return s, ok
}

// IsNamed reports whether section exists and holds named records.
func (m *Manifest) IsNamed(section string) bool {
	s, ok := m.Section(section)
	return ok && s.kind == Named
}

// Keys returns the variables of a flat section, sorted.
func (m *Manifest) Keys(section string) []string {
	s, ok := m.Section(section)
	if !ok || s.kind != Flat {
		return nil
	}
	return sortedKeys(s.values)
}

// Values returns a copy of a flat section's variables.
func (m *Manifest) Values(section string) map[string]string {
	s, ok := m.Section(section)
	if !ok || s.kind != Flat {
		return nil
	}
	return copyValues(s.values)
}

// Value looks up one variable of a flat section.
func (m *Manifest) Value(section, variable string) (string, bool) {
	s, ok := m.Section(section)
	if !ok || s.kind != Flat {
		return "", false
	}
	v, ok := s.values[variable]
	return v, ok
}

// Names returns the record names of a named section, sorted.
func (m *Manifest) Names(section string) []string {
	s, ok := m.Section(section)
	if !ok || s.kind != Named {
		return nil
	}
	return s.names()
}

// NamedKeys returns the variables of one record, sorted.
func (m *Manifest) NamedKeys(section, name string) []string {
	s, ok := m.Section(section)
	if !ok || s.kind != Named {
		return nil
	}
	rec := s.record(name, false)
	if rec == nil {
		return nil
	}
	return sortedKeys(rec)
}

// NamedValues returns a copy of one record, or nil when it does not exist.
func (m *Manifest) NamedValues(section, name string) map[string]string {
	s, ok := m.Section(section)
	if !ok || s.kind != Named {
		return nil
	}
	return copyValues(s.record(name, false))
}

// NamedValue looks up one variable of one record.
func (m *Manifest) NamedValue(section, name, variable string) (string, bool) {
	s, ok := m.Section(section)
	if !ok || s.kind != Named {
		return "", false
	}
	v, ok := s.record(name, false)[variable]
	return v, ok
}

// section returns the section for writing, creating it with kind when absent.
func (m *Manifest) section(name string, kind Kind) (*Section, error) {
	if err := m.ensureLoaded(); err != nil {
		return nil, err
	}
	s, ok := m.sections[name]
	if !ok {
		s = newSection(kind)
		m.sections[name] = s
		return s, nil
	}
	if s.kind != kind {
		return nil, kindMismatch(name, s.kind, kind)
	}
	return s, nil
}

// SetCoreSetting sets one variable of a flat section.
func (m *Manifest) SetCoreSetting(section, variable, value string) error {
	s, err := m.section(section, Flat)
	if err != nil {
		return err
	}
	s.values[variable] = value
	return nil
}

// SetNamedSetting sets one variable of a record, creating the record as needed.
func (m *Manifest) SetNamedSetting(section, name, variable, value string) error {
	s, err := m.section(section, Named)
	if err != nil {
		return err
	}
	s.record(name, true)[variable] = value
	return nil
}

// ReplaceCore drops every variable of a flat section and writes values.
func (m *Manifest) ReplaceCore(section string, values map[string]string) error {
	return m.writeCore(section, values, true)
}

// MergeIntoCore writes values into a flat section, keeping other variables.
func (m *Manifest) MergeIntoCore(section string, values map[string]string) error {
	return m.writeCore(section, values, false)
}

func (m *Manifest) writeCore(section string, values map[string]string, overwrite bool) error {
	s, err := m.section(section, Flat)
	if err != nil {
		return err
	}
	if overwrite {
		s.values = make(map[string]string, len(values))
	}
	for k, v := range values {
		s.values[k] = v
	}
	m.prune(section)
	return nil
}

// ReplaceRecord drops every variable of a record and writes values.
func (m *Manifest) ReplaceRecord(section, name string, values map[string]string) error {
	return m.writeRecord(section, name, values, true)
}

// MergeIntoRecord writes values into a record, keeping other variables.
func (m *Manifest) MergeIntoRecord(section, name string, values map[string]string) error {
	return m.writeRecord(section, name, values, false)
}

func (m *Manifest) writeRecord(section, name string, values map[string]string, overwrite bool) error {
	s, err := m.section(section, Named)
	if err != nil {
		return err
	}
	if overwrite {
		delete(s.records, name)
	}
	rec := s.record(name, true)
	for k, v := range values {
		rec[k] = v
	}
	if len(rec) == 0 {
		delete(s.records, name)
	}
	m.prune(section)
	return nil
}

// RemoveCoreSetting removes the given variables from a flat section, or the
// whole section when no variable is given. Missing entries are ignored.
func (m *Manifest) RemoveCoreSetting(section string, variables ...string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	s, ok := m.sections[section]
	if !ok {
		return nil
	}
	if s.kind != Flat {
		return kindMismatch(section, s.kind, Flat)
	}
	if len(variables) == 0 {
		delete(m.sections, section)
		return nil
	}
	for _, v := range variables {
		delete(s.values, v)
	}
	m.prune(section)
	return nil
}

// RemoveNamedSetting narrows its scope by the arguments given: no name removes
// the whole section, a name alone removes the record, a name with variables
// removes only those variables. Records and sections left empty are removed.
func (m *Manifest) RemoveNamedSetting(section, name string, variables ...string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	s, ok := m.sections[section]
	if !ok {
		return nil
	}
	if s.kind != Named {
		return kindMismatch(section, s.kind, Named)
	}
	switch {
	case name == "":
		delete(m.sections, section)
		return nil
	case len(variables) == 0:
		delete(s.records, name)
	default:
		rec := s.record(name, false)
		for _, v := range variables {
			delete(rec, v)
		}
		if len(rec) == 0 {
			delete(s.records, name)
		}
	}
	m.prune(section)
	return nil
}

// RemoveSection removes a section of either kind.
func (m *Manifest) RemoveSection(section string) error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}
	delete(m.sections, section)
	return nil
}

func (m *Manifest) prune(section string) {
	if s, ok := m.sections[section]; ok && s.empty() {
		delete(m.sections, section)
	}
}
