// Package content holds the hand-authored page tables that feed the site
// generator, plus the static listings served by the development API.
//
// Tables are YAML documents. The built-in set is embedded into the binary;
// a directory with the same layout can replace it at run time.
package content

import (
	"fmt"
	"strings"
)

// Kind selects the page skeleton a table renders with.
type Kind string

const (
	KindService   Kind = "service"
	KindPortfolio Kind = "portfolio"
	KindSolution  Kind = "solution"
)

// Kinds lists every known kind in generation order.
var Kinds = []Kind{KindService, KindPortfolio, KindSolution}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindService, KindPortfolio, KindSolution:
		return true
	}
	return false
}

// DefaultDir is the output subdirectory used when a table names none.
func (k Kind) DefaultDir() string {
	switch k {
	case KindService:
		return "services"
	case KindSolution:
		return "solutions"
	default:
		return string(k)
	}
}

// ParseKind accepts a kind name or its directory form ("services").
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == string(k) || s == k.DefaultDir() {
			return k, nil
		}
	}
	return "", fmt.Errorf("content: unknown page kind %q", s)
}

// Record is one page's worth of content. Empty fields are treated as absent.
type Record struct {
	Filename    string `yaml:"filename"`
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle,omitempty"`
	Description string `yaml:"description,omitempty"`
	ShortDesc   string `yaml:"short_desc,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Image       string `yaml:"image,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Group       string `yaml:"group,omitempty"`
	NavLabel    string `yaml:"nav_label,omitempty"`
	Content     string `yaml:"content,omitempty"`
	Markdown    string `yaml:"markdown,omitempty"`
}

// Table is an ordered list of records sharing one skeleton and output dir.
type Table struct {
	Kind    Kind     `yaml:"kind"`
	Dir     string   `yaml:"dir"`
	Records []Record `yaml:"records"`
}

// Find returns the table of the given kind.
func Find(tables []Table, kind Kind) (Table, bool) {
	for _, t := range tables {
		if t.Kind == kind {
			return t, true
		}
	}
	return Table{}, false
}
