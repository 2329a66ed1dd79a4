package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestBuiltinTables(t *testing.T) {
	tables, err := Builtin()
	require.NoError(t, err)
	require.Len(t, tables, 3)

	counts := map[Kind]int{}
	for _, tbl := range tables {
		counts[tbl.Kind] = len(tbl.Records)
		assert.Equal(t, tbl.Kind.DefaultDir(), tbl.Dir)
		for _, r := range tbl.Records {
			assert.NotEmpty(t, r.Title, "record %s", r.OutputName())
			assert.True(t, strings.HasSuffix(r.OutputName(), ".html"))
			assert.NotEmpty(t, r.Content, "record %s has no body", r.OutputName())
		}
	}
	assert.Equal(t, 11, counts[KindService])
	assert.Equal(t, 9, counts[KindPortfolio])
	assert.Equal(t, 8, counts[KindSolution])
}

func TestLoadRejectsDuplicateFilenames(t *testing.T) {
	fsys := fstest.MapFS{
		"services.yaml": {Data: []byte(`kind: service
records:
- filename: a.html
  title: A
- filename: a
  title: Also A
`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.Contains(t, verr.Reason, "duplicate filename")
}

func TestLoadRejectsTraversal(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"parent filename", "kind: service\nrecords:\n- filename: ../escape.html\n  title: X\n"},
		{"nested filename", "kind: service\nrecords:\n- filename: sub/page.html\n  title: X\n"},
		{"absolute dir", "kind: service\ndir: /etc\nrecords:\n- filename: ok.html\n  title: X\n"},
		{"parent dir", "kind: service\ndir: ../up\nrecords:\n- filename: ok.html\n  title: X\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"t.yaml": {Data: []byte(tt.yaml)}})
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
		})
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("kind: widget\nrecords: []\n")},
		"b.yaml": {Data: []byte("kind: service\nrecords:\n- filename: x.html\n")},
		"c.yaml": {Data: []byte("kind: portfolio\nrecords:\n- filename: x.html\n  title: X\n  colour: red\n")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestLoadDuplicateKind(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("kind: service\nrecords:\n- {filename: a.html, title: A}\n")},
		"b.yaml": {Data: []byte("kind: service\nrecords:\n- {filename: b.html, title: B}\n")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined in a.yaml")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solutions.yml"), []byte(`kind: solution
records:
- title: "AI & ML: Data, Models"
  description: d
  markdown: "**bold** and <em>raw</em>"
`), 0o644))

	tables, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	r := tables[0].Records[0]
	assert.Equal(t, "solutions", tables[0].Dir)
	assert.Equal(t, "ai-and-ml-data-models.html", r.OutputName())

	fields, err := r.Fields(KindSolution)
	require.NoError(t, err)
	assert.Equal(t, DefaultSolutionIcon, fields["icon"])
	assert.Contains(t, fields["content"], "<strong>bold</strong>")
	assert.Contains(t, fields["content"], "<em>raw</em>")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestFieldsFallbacks(t *testing.T) {
	r := Record{Filename: "demo.html", Title: "Demo", Subtitle: "x", Category: "Y", Image: "img.jpg", Content: "<p>hi</p>"}
	fields, err := r.Fields(KindService)
	require.NoError(t, err)

	assert.Equal(t, "x", fields["description"])
	assert.Equal(t, "x", fields["short_desc"])
	assert.Equal(t, "x", fields["subtitle"])
	_, hasIcon := fields["icon"]
	assert.False(t, hasIcon, "icon defaults only apply to solutions")
}

func TestFieldsOmitEmpty(t *testing.T) {
	fields, err := Record{Title: "T"}.Fields(KindPortfolio)
	require.NoError(t, err)
	_, ok := fields["content"]
	assert.False(t, ok)
	assert.Equal(t, "t.html", fields["filename"])
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"AI & ML", "ai-and-ml"},
		{"R&D Labs", "randd-labs"},
		{"Cloud/Edge Services", "cloud-edge-services"},
		{"Data: Pipelines, Lakes", "data-pipelines-lakes"},
		{"  Café Déjà Vu  ", "cafe-deja-vu"},
		{"already-slugged", "already-slugged"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"service": KindService, "Services": KindService, "portfolio": KindPortfolio, "solutions": KindSolution} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("blog")
	assert.Error(t, err)
}

func TestListingsAreCopies(t *testing.T) {
	s := Services()
	require.Len(t, s, 6)
	s[0].Name = "changed"
	assert.Equal(t, "AI Integration", Services()[0].Name)
	assert.Len(t, Team(), 4)
}
