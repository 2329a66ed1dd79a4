package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultSolutionIcon is the Bootstrap icon used by solution records without one.
const DefaultSolutionIcon = "gear"

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		// Bodies are trusted site copy and routinely embed raw HTML.
		gmhtml.WithUnsafe(),
	),
)

// OutputName is the file the record is emitted to, relative to its table dir.
// Records without a filename fall back to a slug of the title.
func (r Record) OutputName() string {
	name := strings.TrimSpace(r.Filename)
	if name == "" {
		name = Slugify(r.Title)
	}
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return name
}

// Label is the text used for the record in navigation lists.
func (r Record) Label() string {
	if r.NavLabel != "" {
		return r.NavLabel
	}
	return r.Title
}

// Body returns the page body as HTML, converting the Markdown form when no
// HTML body is set.
func (r Record) Body() (string, error) {
	if r.Content != "" || r.Markdown == "" {
		return r.Content, nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(r.Markdown), &buf); err != nil {
		return "", fmt.Errorf("content: convert markdown for %s: %w", r.OutputName(), err)
	}
	return buf.String(), nil
}

// Fields returns the placeholder values for the record. Only non-empty values
// are present, so a skeleton placeholder with no value is detectable.
func (r Record) Fields(kind Kind) (map[string]string, error) {
	body, err := r.Body()
	if err != nil {
		return nil, err
	}

	description := firstNonEmpty(r.Description, r.Subtitle)
	subtitle := firstNonEmpty(r.Subtitle, r.Description)
	icon := r.Icon
	if icon == "" && kind == KindSolution {
		icon = DefaultSolutionIcon
	}

	fields := make(map[string]string, 10)
	set := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}
	set("filename", r.OutputName())
	set("title", r.Title)
	set("subtitle", subtitle)
	set("description", description)
	set("short_desc", firstNonEmpty(r.ShortDesc, description))
	set("category", r.Category)
	set("image", r.Image)
	set("icon", icon)
	set("content", body)
	return fields, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
