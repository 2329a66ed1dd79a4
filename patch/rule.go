// Package patch rewrites generated HTML in place with ordered find/replace
// rules. Every rule must be idempotent: running a rule set over its own
// output changes nothing. The executor checks this on every file.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// File identifies the document a rule is applied to.
type File struct {
	Path string
	// Nested is true for pages one directory below the site root, which
	// reach shared assets through "../".
	Nested bool
}

// AssetPrefix is the relative prefix from the file to the site root.
func (f File) AssetPrefix() string {
	if f.Nested {
		return "../"
	}
	return ""
}

// Rule transforms the full text of one file.
type Rule interface {
	Name() string
	Apply(f File, text string) (string, error)
}

// Replace substitutes every match of Pattern. Replacement uses regexp
// template syntax (${1}) unless Literal is set. When Guard is non-empty and
// already present in the text the rule does nothing.
type Replace struct {
	RuleName    string
	Pattern     *regexp.Regexp
	Replacement string
	Literal     bool
	Guard       string
}

func (r *Replace) Name() string { return r.RuleName }

func (r *Replace) Apply(_ File, text string) (string, error) {
	if r.Guard != "" && strings.Contains(text, r.Guard) {
		return text, nil
	}
	if r.Literal {
		return r.Pattern.ReplaceAllLiteralString(text, r.Replacement), nil
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement), nil
}

// ReplaceFunc substitutes every match of Pattern with the result of Func,
// which receives the match and its submatches.
type ReplaceFunc struct {
	RuleName string
	Pattern  *regexp.Regexp
	Func     func(f File, groups []string) string
}

func (r *ReplaceFunc) Name() string { return r.RuleName }

func (r *ReplaceFunc) Apply(f File, text string) (string, error) {
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	var b strings.Builder
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(r.Func(f, groups))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// InsertAfter inserts Block at the end of the line holding the first match
// of Anchor. Files already containing Marker are left alone.
type InsertAfter struct {
	RuleName string
	Anchor   *regexp.Regexp
	Block    string
	Marker   string
}

func (r *InsertAfter) Name() string { return r.RuleName }

func (r *InsertAfter) Apply(_ File, text string) (string, error) {
	if strings.Contains(text, r.Marker) {
		return text, nil
	}
	loc := r.Anchor.FindStringIndex(text)
	if loc == nil {
		return text, nil
	}
	at := loc[1]
	if nl := strings.IndexByte(text[at:], '\n'); nl >= 0 {
		at += nl
	}
	return text[:at] + r.Block + text[at:], nil
}

// Apply runs rules in order over text and returns the result along with the
// names of the rules that changed it.
func Apply(rules []Rule, f File, text string) (string, []string, error) {
	var changed []string
	for _, r := range rules {
		out, err := r.Apply(f, text)
		if err != nil {
			return "", nil, fmt.Errorf("patch: rule %s: %w", r.Name(), err)
		}
		if out != text {
			changed = append(changed, r.Name())
			text = out
		}
	}
	return text, changed, nil
}

// RuleConfig is the configuration form of a Replace rule.
type RuleConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Match   string `mapstructure:"match" yaml:"match"`
	Replace string `mapstructure:"replace" yaml:"replace"`
	Guard   string `mapstructure:"guard" yaml:"guard,omitempty"`
}

// PatternError reports a rule whose pattern does not compile.
type PatternError struct {
	Rule string
	Err  error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("patch: rule %s: %v", e.Rule, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile turns configured rules into Rules. Entries that fail to compile are
// skipped and reported together in the returned error; the rest are still
// returned.
func Compile(cfgs []RuleConfig) ([]Rule, error) {
	var (
		rules []Rule
		errs  error
	)
	for i, s := range cfgs {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("custom-%d", i+1)
		}
		if s.Match == "" {
			errs = multierr.Append(errs, &PatternError{Rule: name, Err: fmt.Errorf("empty match pattern")})
			continue
		}
		re, err := regexp.Compile(s.Match)
		if err != nil {
			errs = multierr.Append(errs, &PatternError{Rule: name, Err: err})
			continue
		}
		rules = append(rules, &Replace{RuleName: name, Pattern: re, Replacement: s.Replace, Guard: s.Guard})
	}
	return rules, errs
}
