package views

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/devtechai/sitegen/content"
)

// rePlaceholder matches the escaped braces "{{" and "}}" as well as named
// placeholders such as {title}. Anything else in a skeleton is literal text.
var rePlaceholder = regexp.MustCompile(`\{\{|\}\}|\{([a-z_][a-z0-9_]*)\}`)

// MissingFieldError reports placeholders that had no value.
type MissingFieldError struct {
	Kind   content.Kind
	Name   string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	where := "skeleton"
	if e.Kind != "" {
		where = string(e.Kind) + " skeleton"
	}
	if e.Name != "" {
		where += " for " + e.Name
	}
	return fmt.Sprintf("views: %s: missing field(s) %s", where, strings.Join(e.Fields, ", "))
}

// Interpolate substitutes every placeholder in skeleton with its value from
// fields, verbatim. If any placeholder has no value nothing is returned and
// the error lists every missing name.
func Interpolate(skeleton string, fields map[string]string) (string, error) {
	var missing map[string]struct{}
	out := rePlaceholder.ReplaceAllStringFunc(skeleton, func(tok string) string {
		switch tok {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		name := tok[1 : len(tok)-1]
		v, ok := fields[name]
		if !ok {
			if missing == nil {
				missing = make(map[string]struct{})
			}
			missing[name] = struct{}{}
			return tok
		}
		return v
	})
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for n := range missing {
			names = append(names, n)
		}
		sort.Strings(names)
		return "", &MissingFieldError{Fields: names}
	}
	return out, nil
}

// Placeholders lists the distinct field names a skeleton refers to.
func Placeholders(skeleton string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range rePlaceholder.FindAllStringSubmatch(skeleton, -1) {
		if m[1] == "" {
			continue
		}
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	sort.Strings(names)
	return names
}
