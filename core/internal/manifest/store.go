package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

// Store writes the manifest to its file. An empty manifest removes the file
// instead of leaving an empty one behind.
func (m *Manifest) Store() error {
	if err := m.ensureLoaded(); err != nil {
		return err
	}

	if len(m.sections) == 0 {
		if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove empty manifest %s: %w", m.path, err)
		}
		log.Debug().Str("manifest", m.path).Msg("manifest empty, file removed")
		return nil
	}

	f, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("failed to open manifest %s for writing: %w", m.path, err)
	}

	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest %s: %w", m.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close manifest %s: %w", m.path, err)
	}

	log.Debug().Str("manifest", m.path).Int("sections", len(m.sections)).Msg("manifest stored")
	return nil
}

// Bytes returns the serialized manifest, or nil when it failed to load.
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// WriteTo serializes the manifest: sections, records and variables in sorted
// order, one blank line between blocks. A failed load is returned before
// anything is written.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	if err := m.ensureLoaded(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: bufio.NewWriter(w)}
	first := true
	block := func(header string, values map[string]string) {
		if !first {
			fmt.Fprintln(cw)
		}
		first = false
		fmt.Fprintln(cw, header)
		for _, k := range sortedKeys(values) {
			fmt.Fprintf(cw, "  %s = %s\n", k, values[k])
		}
	}

	for _, name := range sortedKeys(m.sections) {
		s := m.sections[name]
		if s.kind == Named {
			for _, rec := range s.names() {
				block(fmt.Sprintf("[%s \"%s\"]", name, rec), s.records[rec])
			}
			continue
		}
		block(fmt.Sprintf("[%s]", name), s.values)
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
