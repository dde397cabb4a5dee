package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// dump flattens a manifest into section -> record -> variable -> value. Flat
// sections use the empty record name.
func dump(m *Manifest) map[string]map[string]map[string]string {
	out := make(map[string]map[string]map[string]string)
	for _, section := range m.Sections() {
		recs := make(map[string]map[string]string)
		if m.IsNamed(section) {
			for _, name := range m.Names(section) {
				recs[name] = m.NamedValues(section, name)
			}
		} else {
			recs[""] = m.Values(section)
		}
		out[section] = recs
	}
	return out
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gitpackages")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadParsesSectionsAndRecords(t *testing.T) {
	path := writeManifest(t, `orphan = ignored
[core]
  editor = vim
	pager=less -R

[dependency "vendor/a"]
  url = https://example.com/a.git
  path = vendor/a
this line has no separator
[broken "header"
[dependency "vendor/b"]
  url = git@example.com:b.git
  note = a=b
`)

	m := New(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]map[string]map[string]string{
		"core": {"": {"editor": "vim", "pager": "less-R"}},
		"dependency": {
			"vendor/a": {"url": "https://example.com/a.git", "path": "vendor/a"},
			"vendor/b": {"url": "git@example.com:b.git", "note": "a=b"},
		},
	}
	if diff := cmp.Diff(want, dump(m)); diff != "" {
		t.Errorf("unexpected manifest (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "missing"))
	if err := m.Load(); err != nil {
		t.Fatalf("expected no error for missing manifest, got %v", err)
	}
	if !m.Empty() {
		t.Fatalf("expected empty manifest, got %v", m.Sections())
	}
}

func TestLoadRejectsSectionKindChange(t *testing.T) {
	path := writeManifest(t, `[dependency]
  url = x

[dependency "a"]
  url = y
`)

	m := New(path)
	err := m.Load()
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 5 || perr.Section != "dependency" {
		t.Fatalf("unexpected parse error location: line %d section %q", perr.Line, perr.Section)
	}

	// The failure is sticky and mutations refuse to run on a half-read file.
	if err := m.SetCoreSetting("core", "a", "b"); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected sticky load error, got %v", err)
	}
}

func TestLoadHappensOnce(t *testing.T) {
	path := writeManifest(t, "[core]\n  a = 1\n")
	m := New(path)
	if v, _ := m.Value("core", "a"); v != "1" {
		t.Fatalf("expected a=1, got %q", v)
	}

	if err := os.WriteFile(path, []byte("[core]\n  a = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Value("core", "a"); v != "1" {
		t.Fatalf("expected cached a=1 after file change, got %q", v)
	}
}

func TestStoreSortsOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitpackages")
	m := New(path)

	mustNil(t, m.SetNamedSetting("zeta", "b", "y", "2"))
	mustNil(t, m.SetNamedSetting("zeta", "a", "x", "1"))
	mustNil(t, m.SetCoreSetting("alpha", "z", "last"))
	mustNil(t, m.SetCoreSetting("alpha", "b", "first"))
	mustNil(t, m.ReplaceRecord("dependency", "lib", map[string]string{
		"url": "u", "path": "lib", "commit": "HEAD", "branch": "master",
	}))
	mustNil(t, m.Store())

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[alpha]
  b = first
  z = last

[dependency "lib"]
  branch = master
  commit = HEAD
  path = lib
  url = u

[zeta "a"]
  x = 1

[zeta "b"]
  y = 2
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("unexpected file content (-want +got):\n%s", diff)
	}
}

func TestStoreRoundTripAndIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitpackages")
	m := New(path)
	mustNil(t, m.MergeIntoCore("core", map[string]string{"k": "v", "eq": "a=b"}))
	mustNil(t, m.MergeIntoRecord("dependency", "x/y", map[string]string{"url": "one"}))
	mustNil(t, m.MergeIntoRecord("dependency", "a", map[string]string{"url": "two", "branch": "dev"}))
	mustNil(t, m.Store())

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	reloaded := New(path)
	if diff := cmp.Diff(dump(m), dump(reloaded)); diff != "" {
		t.Fatalf("round trip changed state (-stored +reloaded):\n%s", diff)
	}

	mustNil(t, reloaded.Store())
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("store is not idempotent:\n%s\n---\n%s", first, second)
	}
	if string(m.Bytes()) != string(first) {
		t.Fatalf("Bytes differs from stored file")
	}
}

func TestStoreRoundTripLongValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitpackages")
	long := "https://example.com/" + strings.Repeat("q", 70000) + "/lib.git"

	m := New(path)
	mustNil(t, m.SetNamedSetting("dependency", "lib", "url", long))
	mustNil(t, m.Store())

	reloaded := New(path)
	mustNil(t, reloaded.Load())
	if v, _ := reloaded.NamedValue("dependency", "lib", "url"); v != long {
		t.Fatalf("long url did not survive a round trip (got %d bytes)", len(v))
	}
}

func TestLoadLastLineWithoutNewline(t *testing.T) {
	m := New(writeManifest(t, "[core]\n  a = 1\n  b = 2"))
	mustNil(t, m.Load())
	if v, _ := m.Value("core", "b"); v != "2" {
		t.Fatalf("Value(core, b) = %q, want 2", v)
	}
}

func TestFailedLoadReadsAsEmpty(t *testing.T) {
	m := New(writeManifest(t, "[dependency]\n  url = x\n[dependency \"a\"]\n  url = y\n"))
	if !m.Empty() || len(m.Sections()) != 0 {
		t.Fatalf("expected failed load to read as empty")
	}
	var buf strings.Builder
	if _, err := m.WriteTo(&buf); err == nil {
		t.Fatalf("expected WriteTo to report the load error")
	}
	if buf.Len() != 0 {
		t.Fatalf("WriteTo wrote %q after a failed load", buf.String())
	}
}

func TestStoreEmptyRemovesFile(t *testing.T) {
	path := writeManifest(t, "[dependency \"a\"]\n  url = x\n")
	m := New(path)

	mustNil(t, m.RemoveNamedSetting("dependency", "a"))
	if !m.Empty() {
		t.Fatalf("expected empty manifest, got %v", m.Sections())
	}
	mustNil(t, m.Store())

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected manifest file to be removed, stat err = %v", err)
	}

	// Storing an empty manifest without a file is fine too.
	mustNil(t, m.Store())
}

func TestStoreFailsOnUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", ".gitpackages")
	m := New(path)
	mustNil(t, m.SetCoreSetting("core", "a", "b"))

	if err := m.Store(); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

func TestReplaceVersusMerge(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "m"))
	mustNil(t, m.MergeIntoRecord("dependency", "a", map[string]string{"url": "u", "extra": "1"}))

	mustNil(t, m.MergeIntoRecord("dependency", "a", map[string]string{"url": "v"}))
	if diff := cmp.Diff(map[string]string{"url": "v", "extra": "1"}, m.NamedValues("dependency", "a")); diff != "" {
		t.Errorf("merge (-want +got):\n%s", diff)
	}

	mustNil(t, m.ReplaceRecord("dependency", "a", map[string]string{"url": "w"}))
	if diff := cmp.Diff(map[string]string{"url": "w"}, m.NamedValues("dependency", "a")); diff != "" {
		t.Errorf("replace (-want +got):\n%s", diff)
	}

	mustNil(t, m.ReplaceCore("core", map[string]string{"a": "1", "b": "2"}))
	mustNil(t, m.ReplaceCore("core", map[string]string{"c": "3"}))
	if diff := cmp.Diff([]string{"c"}, m.Keys("core")); diff != "" {
		t.Errorf("replace core keys (-want +got):\n%s", diff)
	}

	// Replacing with nothing leaves nothing behind.
	mustNil(t, m.ReplaceRecord("dependency", "a", nil))
	if m.IsNamed("dependency") {
		t.Errorf("expected dependency section to be removed, got %v", m.Sections())
	}
}

func TestRemoveScopes(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "m"))
	mustNil(t, m.MergeIntoRecord("dependency", "a", map[string]string{"url": "u", "path": "a"}))
	mustNil(t, m.MergeIntoRecord("dependency", "b", map[string]string{"url": "u"}))
	mustNil(t, m.MergeIntoCore("core", map[string]string{"x": "1", "y": "2"}))

	mustNil(t, m.RemoveNamedSetting("dependency", "a", "path"))
	if diff := cmp.Diff([]string{"url"}, m.NamedKeys("dependency", "a")); diff != "" {
		t.Errorf("after variable removal (-want +got):\n%s", diff)
	}

	mustNil(t, m.RemoveNamedSetting("dependency", "a", "url"))
	if diff := cmp.Diff([]string{"b"}, m.Names("dependency")); diff != "" {
		t.Errorf("last variable should remove record (-want +got):\n%s", diff)
	}

	mustNil(t, m.RemoveNamedSetting("dependency", "b"))
	if diff := cmp.Diff([]string{"core"}, m.Sections()); diff != "" {
		t.Errorf("last record should remove section (-want +got):\n%s", diff)
	}

	// The section is gone entirely, so it may come back as the other kind.
	mustNil(t, m.SetCoreSetting("dependency", "flat", "ok"))

	mustNil(t, m.RemoveCoreSetting("core", "x"))
	mustNil(t, m.RemoveCoreSetting("core", "missing"))
	if diff := cmp.Diff([]string{"y"}, m.Keys("core")); diff != "" {
		t.Errorf("core keys (-want +got):\n%s", diff)
	}
	mustNil(t, m.RemoveCoreSetting("core"))
	mustNil(t, m.RemoveNamedSetting("nothing", "here"))
	mustNil(t, m.RemoveSection("dependency"))
	if !m.Empty() {
		t.Errorf("expected empty manifest, got %v", m.Sections())
	}
}

func TestKindMismatchOnWrite(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "m"))
	mustNil(t, m.SetNamedSetting("dependency", "a", "url", "u"))

	tests := []struct {
		name string
		fn   func() error
	}{
		{"set core", func() error { return m.SetCoreSetting("dependency", "a", "b") }},
		{"merge core", func() error { return m.MergeIntoCore("dependency", map[string]string{"a": "b"}) }},
		{"remove core", func() error { return m.RemoveCoreSetting("dependency", "a") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrKindMismatch) {
				t.Fatalf("expected ErrKindMismatch, got %v", err)
			}
		})
	}

	if _, ok := m.Value("dependency", "a"); ok {
		t.Errorf("flat lookup on a named section should miss")
	}
	if m.Keys("dependency") != nil {
		t.Errorf("flat keys on a named section should be nil")
	}
}

func TestStripSpace(t *testing.T) {
	got := stripSpace(" \t a b c \r")
	if got != "abc" {
		t.Fatalf("stripSpace = %q", got)
	}
	if !strings.HasPrefix(stripSpace(`[dependency "a b"]`), `[dependency"ab"]`) {
		t.Fatalf("header whitespace not stripped")
	}
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
