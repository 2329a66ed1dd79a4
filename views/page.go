// Package views renders site pages from the embedded skeletons.
//
// A skeleton is a complete HTML document with {name} placeholders. Values
// come from a content.Record plus navigation fragments derived from the
// record's table; they are inserted verbatim.
package views

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"

	"github.com/devtechai/sitegen/content"
)

// RenderPage renders rec with the skeleton for table.Kind.
func RenderPage(table content.Table, rec content.Record) (string, error) {
	skel, err := Skeleton(table.Kind)
	if err != nil {
		return "", err
	}
	fields, err := rec.Fields(table.Kind)
	if err != nil {
		return "", err
	}

	current := rec.OutputName()
	switch table.Kind {
	case content.KindService:
		fields["nav"] = SidebarNav(table, current)
	case content.KindSolution:
		fields["nav"] = SidebarNav(table, current)
		fields["menu"] = SolutionMenu(table, current)
	}

	out, err := Interpolate(skel, fields)
	if err != nil {
		var mf *MissingFieldError
		if errors.As(err, &mf) {
			mf.Kind = table.Kind
			mf.Name = current
		}
		return "", err
	}
	return out, nil
}

// Page exposes RenderPage as a templ component so files and HTTP responses
// are written through the same path.
func Page(table content.Table, rec content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := RenderPage(table, rec)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
