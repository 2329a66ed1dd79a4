package patch

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed assets/mobile.html
var mobileCSS string

// MobileMarker identifies files that already carry the mobile stylesheet.
const MobileMarker = "Mobile Responsive Enhancements"

const (
	contactEmail = "contact@devtechai.org"
	contactPhone = "+91 7794841440"
)

// Set is a named, ordered group of rules and the directories it targets by
// default, relative to the site root.
type Set struct {
	Name  string
	Dirs  []string
	Rules []Rule
}

var pageDirs = []string{"services", "portfolio", "solutions", "public/services", "public/portfolio", "public/solutions"}

var builtinSets = []Set{
	{
		Name: "contact-info",
		Dirs: []string{"services"},
		Rules: []Rule{
			literal("help-box-email",
				`<p class="d-flex align-items-center mt-2 mb-0"><i class="bi bi-telephone me-2"></i> <span>+1 (555) 123-4567</span></p>`,
				`<p class="d-flex align-items-center mt-2 mb-0"><i class="bi bi-envelope me-2"></i> <a href="mailto:`+contactEmail+`">`+contactEmail+`</a></p>`),
			literal("address-line-1", `<p>123 AI Innovation Drive</p>`, `<p>4th Floor, Mani Tech Space</p>`),
			literal("address-line-2", `<p>Tech Valley, CA 94000</p>`, `<p>Siddhi Vinayak Nagar, Madhapur, Hyderabad, Telangana 500081</p>`),
			literal("footer-contact",
				`<strong>Phone:</strong> <span>+1 (555) 123-4567</span>`,
				`<strong>Contact:</strong> <span>`+contactEmail+`</span>`),
		},
	},
	{
		Name: "contact-footer",
		Dirs: []string{"services", "portfolio"},
		Rules: []Rule{
			literal("footer-contact-lines",
				`<p class="mt-3"><strong>Contact:</strong> <span>`+contactEmail+`</span></p>`,
				`<p class="mt-3"><strong>Contact:</strong></p>
              <p>`+contactEmail+`</p>
              <p>`+contactPhone+`</p>`),
		},
	},
	{
		Name: "contact-format",
		Dirs: []string{"services", "portfolio"},
		Rules: []Rule{
			&Replace{
				RuleName: "footer-email-phone",
				Pattern: regexp.MustCompile(`<p class="mt-3"><strong>Contact:</strong></p>\s*<p>` +
					regexp.QuoteMeta(contactEmail) + `</p>\s*<p>` + regexp.QuoteMeta(contactPhone) + `</p>`),
				Replacement: `<p class="mt-3"><strong>Email:</strong> <span>` + contactEmail + `</span></p>
              <p><strong>Phone:</strong> <span>` + contactPhone + `</span></p>`,
				Literal: true,
			},
		},
	},
	{
		Name: "headers",
		Dirs: pageDirs,
		Rules: []Rule{
			&ReplaceFunc{
				RuleName: "header-logo",
				Pattern:  regexp.MustCompile(`(<a href="[^"]*" class="logo[^"]*">)\s*<h1 class="sitename">DevTechAI</h1>\s*<span>\.Org</span>`),
				Func: func(f File, g []string) string {
					return g[1] + `<img src="` + f.AssetPrefix() + `assets/img/logo.png?v=2" alt="DevTechAI.Org Logo" class="logo-img"><h1 class="sitename">DevTechAI</h1><span>.Org</span>`
				},
			},
			&Replace{
				RuleName:    "home-links",
				Pattern:     regexp.MustCompile(`href="(?:\.\./)?index\.html(["#])`),
				Replacement: `href="/${1}`,
			},
		},
	},
	{
		Name: "mobile",
		Dirs: pageDirs,
		Rules: []Rule{
			&InsertAfter{
				RuleName: "mobile-css",
				Anchor:   regexp.MustCompile(`<link href="[^"]*main\.css"[^>]*>`),
				Block:    mobileCSS,
				Marker:   MobileMarker,
			},
			&ReplaceFunc{
				RuleName: "logo-class",
				Pattern:  regexp.MustCompile(`(<img src="[^"]*logo\.png[^"]*")([^>]*>)`),
				Func: func(_ File, g []string) string {
					if strings.Contains(g[0], "class=") {
						return g[0]
					}
					return g[1] + ` class="logo-img"` + g[2]
				},
			},
		},
	},
}

func literal(name, old, replacement string) Rule {
	return &Replace{
		RuleName:    name,
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(old)),
		Replacement: replacement,
		Literal:     true,
	}
}

// Sets returns the built-in rule sets in the order they are meant to run.
func Sets() []Set {
	out := make([]Set, len(builtinSets))
	copy(out, builtinSets)
	return out
}

// Lookup returns the built-in set with the given name.
func Lookup(name string) (Set, bool) {
	for _, s := range builtinSets {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

// SetNames lists the built-in set names in run order.
func SetNames() []string {
	names := make([]string, len(builtinSets))
	for i, s := range builtinSets {
		names[i] = s.Name
	}
	return names
}
