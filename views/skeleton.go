package views

import (
	"embed"
	"fmt"

	"github.com/devtechai/sitegen/content"
)

//go:embed skeletons/*.html
var skeletons embed.FS

// Skeleton returns the page skeleton for kind.
func Skeleton(kind content.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("views: no skeleton for kind %q", kind)
	}
	b, err := skeletons.ReadFile("skeletons/" + string(kind) + ".html")
	if err != nil {
		return "", fmt.Errorf("views: read %s skeleton: %w", kind, err)
	}
	return string(b), nil
}
