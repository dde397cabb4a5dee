package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// headerPattern matches a header after whitespace has been stripped, so
// [dependency "a/b"] arrives here as [dependency"a/b"].
var headerPattern = regexp.MustCompile(`^\[([^"\[\]]+)(?:"([^"\[\]]+)")?\]$`)

// parseFile reads path into a section map. A file that cannot be opened is
// treated as an empty manifest.
func parseFile(path string) (map[string]*Section, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("manifest", path).Msg("no manifest file yet")
		} else {
			log.Debug().Err(err).Str("manifest", path).Msg("manifest not readable, starting empty")
		}
		return make(map[string]*Section), nil
	}
	defer f.Close()

	return parse(path, f)
}

// parse interprets manifest text. Unrecognised lines are dropped; a section
// that shows up both flat and named is an error.
func parse(path string, r io.Reader) (map[string]*Section, error) {
	sections := make(map[string]*Section)

	var (
		current string
		name    string
		lineNo  int
	)

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("failed to read manifest %s: %w", path, readErr)
		}
		if readErr == io.EOF && raw == "" {
			break
		}
		lineNo++
		line := stripSpace(raw)

		if match := headerPattern.FindStringSubmatch(line); match != nil {
			current, name = match[1], match[2]
			continue
		}
		if current == "" {
			continue
		}

		variable, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		kind := Flat
		if name != "" {
			kind = Named
		}
		s, exists := sections[current]
		if !exists {
			s = newSection(kind)
			sections[current] = s
		} else if s.kind != kind {
			return nil, &ParseError{
				Path:    path,
				Line:    lineNo,
				Section: current,
				Err:     kindMismatch(current, s.kind, kind),
			}
		}

		if kind == Named {
			s.record(name, true)[variable] = value
		} else {
			s.values[variable] = value
		}
	}

	return sections, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
