package dependency

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects how a dependency list is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// NoDependencies is printed by the text format when the manifest is empty.
const NoDependencies = "No dependencies registered."

// ParseFormat validates a user supplied format name. Empty means text.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or table)", raw)
	}
}

// Render formats every dependency in the requested format.
func (r *Registry) Render(format Format) (string, error) {
	switch format {
	case "", FormatText:
		return r.RenderDependencyList()
	}

	deps, err := r.List()
	if err != nil {
		return "", err
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(deps, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to serialize JSON: %w", err)
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(deps)
		if err != nil {
			return "", fmt.Errorf("failed to serialize YAML: %w", err)
		}
		return string(data), nil

	case FormatTable:
		var buf bytes.Buffer
		table := tablewriter.NewWriter(&buf)
		table.Header("PATH", "URL", "BRANCH", "COMMIT")
		for _, d := range deps {
			if err := table.Append([]string{d.Path, d.URL, d.Branch, d.Commit}); err != nil {
				return "", fmt.Errorf("failed to render table: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return "", fmt.Errorf("failed to render table: %w", err)
		}
		return buf.String(), nil
	}

	return "", fmt.Errorf("unknown output format %q", format)
}

// RenderDependencyList formats the records for humans: the path as a heading,
// then each variable with its value quoted and the "=" signs aligned.
func (r *Registry) RenderDependencyList() (string, error) {
	paths, err := r.Dependencies()
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return NoDependencies + "\n", nil
	}

	var sb strings.Builder
	for i, p := range paths {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p + "\n")

		keys := r.manifest.NamedKeys(Section, p)
		width := 0
		for _, k := range keys {
			width = max(width, len(k))
		}
		for _, k := range keys {
			v, _ := r.manifest.NamedValue(Section, p, k)
			sb.WriteString(fmt.Sprintf("  %-*s = %q\n", width, k, v))
		}
	}
	return sb.String(), nil
}
