// Package output serializes snapshot results to stdout as YAML (for
// humans) or JSON (for agents and pipes).
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// RectsResult is the top-level output of the `rects` command: the
// interactive snapshot keyed by string-encoded identifier.
type RectsResult struct {
	URL   string                    `yaml:"url,omitempty"   json:"url,omitempty"`
	Title string                    `yaml:"title,omitempty" json:"title,omitempty"`
	TS    int64                     `yaml:"ts"              json:"ts"`
	Rects map[string]inspect.Region `yaml:"rects"           json:"rects"`
}

// ElementsResult is the top-level output of the `elements` command.
type ElementsResult struct {
	URL      string            `yaml:"url,omitempty"   json:"url,omitempty"`
	Title    string            `yaml:"title,omitempty" json:"title,omitempty"`
	TS       int64             `yaml:"ts"              json:"ts"`
	Elements []inspect.Element `yaml:"elements"        json:"elements"`
}

// ViewportResult is the top-level output of the `viewport` command.
type ViewportResult struct {
	URL      string       `yaml:"url,omitempty" json:"url,omitempty"`
	TS       int64        `yaml:"ts"            json:"ts"`
	Viewport dom.Viewport `yaml:"viewport"      json:"viewport"`
}

// FocusedResult is the top-level output of the `focused` command. ID is
// null when nothing labeled has focus.
type FocusedResult struct {
	URL string  `yaml:"url,omitempty" json:"url,omitempty"`
	TS  int64   `yaml:"ts"            json:"ts"`
	ID  *string `yaml:"id"            json:"id"`
}

// MetadataResult is the top-level output of the `metadata` command.
type MetadataResult struct {
	URL      string           `yaml:"url,omitempty" json:"url,omitempty"`
	TS       int64            `yaml:"ts"            json:"ts"`
	Metadata inspect.Metadata `yaml:"metadata"      json:"metadata"`
}

// TextResult is the top-level output of the `text` command.
type TextResult struct {
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	TS   int64  `yaml:"ts"            json:"ts"`
	Text string `yaml:"text"          json:"text"`
}

// MarkdownResult is the top-level output of the `markdown` command.
type MarkdownResult struct {
	URL      string `yaml:"url,omitempty" json:"url,omitempty"`
	TS       int64  `yaml:"ts"            json:"ts"`
	Markdown string `yaml:"markdown"      json:"markdown"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// IsOutputPiped reports whether stdout is not a terminal. Piped output
// selects the agent-friendly JSON default.
func IsOutputPiped() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
