package model

// Dependency is one record of the manifest's dependency section.
//
// Path is the record key and is also stored as a value. URL may be a remote
// location or a filesystem path. Branch and Commit pin the checkout; Commit may
// name a tag, a branch or a hash.
//
// Extra holds any variables the record carries beyond the four known ones, so
// that hand-edited entries survive an edit.
type Dependency struct {
	Path   string            `json:"path" yaml:"path"`
	URL    string            `json:"url" yaml:"url"`
	Branch string            `json:"branch" yaml:"branch"`
	Commit string            `json:"commit" yaml:"commit"`
	Extra  map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}
