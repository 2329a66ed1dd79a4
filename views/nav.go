package views

import (
	"fmt"
	"strings"

	"github.com/devtechai/sitegen/content"
)

const (
	sidebarIndent = "                "
	menuIndent    = "              "
)

// SidebarNav renders the services-list links for every record in table,
// marking current as active.
func SidebarNav(table content.Table, current string) string {
	var b strings.Builder
	for i, r := range table.Records {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := r.OutputName()
		fmt.Fprintf(&b, `%s<a href="%s"%s><i class="bi bi-arrow-right-circle"></i><span>%s</span></a>`,
			sidebarIndent, name, activeAttr(name, current), r.Label())
	}
	return b.String()
}

// SolutionMenu renders the header "Solutions" dropdown items. Records that
// share a group are nested into one sub-dropdown, placed where the group's
// first record appears.
func SolutionMenu(table content.Table, current string) string {
	type entry struct {
		group   string
		records []content.Record
	}
	var entries []*entry
	groups := make(map[string]*entry)
	for _, r := range table.Records {
		if r.Group == "" {
			entries = append(entries, &entry{records: []content.Record{r}})
			continue
		}
		e, ok := groups[r.Group]
		if !ok {
			e = &entry{group: r.Group}
			groups[r.Group] = e
			entries = append(entries, e)
		}
		e.records = append(e.records, r)
	}

	var lines []string
	for _, e := range entries {
		if e.group == "" {
			lines = append(lines, menuItem(menuIndent, e.records[0], current))
			continue
		}
		lines = append(lines,
			fmt.Sprintf(`%s<li class="dropdown"><a href="#"><span>%s</span> <i class="bi bi-chevron-down toggle-dropdown"></i></a>`, menuIndent, e.group),
			menuIndent+"  <ul>")
		for _, r := range e.records {
			lines = append(lines, menuItem(menuIndent+"    ", r, current))
		}
		lines = append(lines, menuIndent+"  </ul>", menuIndent+"</li>")
	}
	return strings.Join(lines, "\n")
}

func menuItem(indent string, r content.Record, current string) string {
	name := r.OutputName()
	return fmt.Sprintf(`%s<li><a href="%s"%s>%s</a></li>`, indent, name, activeAttr(name, current), r.Label())
}

func activeAttr(name, current string) string {
	if name == current {
		return ` class="active"`
	}
	return ""
}
