// Package scaffold provides the embedded files written by "sitegen init".
package scaffold

import "embed"

// Templates contains the project files. Files ending in .tmpl are executed
// as Go text/template with the .tmpl suffix removed; others are copied as is.
//
//go:embed all:templates
var Templates embed.FS
