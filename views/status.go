package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

const statusPage = `<!DOCTYPE html>
<html lang="en">

<head>
  <meta charset="utf-8">
  <meta content="width=device-width, initial-scale=1.0" name="viewport">
  <title>%[1]s - DevTechAI</title>
  <link href="/assets/vendor/bootstrap/css/bootstrap.min.css" rel="stylesheet">
  <link href="/assets/css/main.css" rel="stylesheet">
</head>

<body>
  <main class="main">
    <section class="section">
      <div class="container text-center">
        <h1>%[2]d</h1>
        <h2>%[1]s</h2>
        <p>%[3]s</p>
        <a href="/" class="btn-get-started">Back to Home</a>
      </div>
    </section>
  </main>
</body>

</html>
`

func statusComponent(code int, title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, statusPage, html.EscapeString(title), code, html.EscapeString(message))
		return err
	})
}

// NotFound is the page served for missing files.
func NotFound() templ.Component {
	return statusComponent(404, "Page Not Found", "The page you are looking for does not exist.")
}

// ServerError is the page served when a handler fails.
func ServerError() templ.Component {
	return statusComponent(500, "Something Went Wrong", "Please try again in a moment.")
}
