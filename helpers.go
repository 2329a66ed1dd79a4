package sitegen

import (
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments. Directory paths get a
// trailing slash; paths ending in a file name such as "page.html" do not.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	joined := path.Join(pathSegments...)
	u.Path = path.Join("/", u.Path, joined)
	if path.Ext(joined) == "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
