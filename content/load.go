package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var builtinTables embed.FS

// BuiltinFS exposes the embedded table files, rooted at the table directory.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinTables, "tables")
	if err != nil {
		panic(err)
	}
	return sub
}

// Builtin returns the tables compiled into the binary.
func Builtin() ([]Table, error) {
	return Load(BuiltinFS())
}

// LoadDir reads every *.yaml table in dir.
func LoadDir(dir string) ([]Table, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content: open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load decodes and validates every *.yaml or *.yml file at the root of fsys.
// Tables are returned in file-name order. All decode and validation errors
// are reported together.
func Load(fsys fs.FS) ([]Table, error) {
	names, err := tableFiles(fsys)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("content: no table files found")
	}

	var (
		tables []Table
		errs   error
		seen   = make(map[Kind]string)
	)
	for _, name := range names {
		t, err := decodeTable(fsys, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, ok := seen[t.Kind]; ok {
			errs = multierr.Append(errs, fmt.Errorf("content: %s: kind %q already defined in %s", name, t.Kind, prev))
			continue
		}
		seen[t.Kind] = name
		if err := t.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		tables = append(tables, t)
	}
	if errs != nil {
		return nil, errs
	}
	return tables, nil
}

func tableFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("content: list tables: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch path.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func decodeTable(fsys fs.FS, name string) (Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Table{}, fmt.Errorf("content: read %s: %w", name, err)
	}
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Table{}, fmt.Errorf("content: decode %s: %w", name, err)
	}
	t.Kind = Kind(strings.ToLower(string(t.Kind)))
	if t.Dir == "" {
		t.Dir = t.Kind.DefaultDir()
	}
	return t, nil
}

// ValidationError describes a table or record that cannot be emitted.
type ValidationError struct {
	Kind   Kind
	Index  int // record index, -1 for table-level problems
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("content: %s table: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("content: %s table: record %d (%s): %s", e.Kind, e.Index, e.Name, e.Reason)
}

// Validate checks the table-level invariants: a known kind, a single-segment
// output dir, and unique single-segment output filenames with titles.
func (t Table) Validate() error {
	var errs error
	if !t.Kind.Valid() {
		errs = multierr.Append(errs, &ValidationError{Kind: t.Kind, Index: -1, Reason: "unknown kind"})
	}
	if !isPlainPath(t.Dir, true) {
		errs = multierr.Append(errs, &ValidationError{Kind: t.Kind, Index: -1, Reason: fmt.Sprintf("dir %q must be a relative path inside the output directory", t.Dir)})
	}

	seen := make(map[string]int, len(t.Records))
	for i, r := range t.Records {
		name := r.OutputName()
		if err := r.validate(t.Kind, i); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if first, ok := seen[name]; ok {
			errs = multierr.Append(errs, &ValidationError{Kind: t.Kind, Index: i, Name: name, Reason: fmt.Sprintf("duplicate filename, first used by record %d", first)})
			continue
		}
		seen[name] = i
	}
	return errs
}

// RecordErrors runs Validate and splits the result. Table-level problems are
// returned as err; problems with individual records are keyed by record index.
func (t Table) RecordErrors() (map[int]error, error) {
	var (
		byRecord map[int]error
		tableErr error
	)
	for _, err := range multierr.Errors(t.Validate()) {
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Index < 0 {
			tableErr = multierr.Append(tableErr, err)
			continue
		}
		if byRecord == nil {
			byRecord = make(map[int]error)
		}
		byRecord[verr.Index] = multierr.Append(byRecord[verr.Index], err)
	}
	return byRecord, tableErr
}

func (r Record) validate(kind Kind, i int) error {
	name := r.OutputName()
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Kind: kind, Index: i, Name: name, Reason: "title is required"}
	}
	if !isPlainPath(name, false) {
		return &ValidationError{Kind: kind, Index: i, Name: name, Reason: "filename must be a single path segment"}
	}
	if name == ".html" {
		return &ValidationError{Kind: kind, Index: i, Name: name, Reason: "filename is empty"}
	}
	return nil
}

// isPlainPath reports whether p stays inside its parent. When nested is false
// p must also be a single segment.
func isPlainPath(p string, nested bool) bool {
	if p == "" || strings.ContainsRune(p, '\\') || !filepath.IsLocal(p) {
		return false
	}
	if !nested && path.Base(p) != p {
		return false
	}
	return true
}
