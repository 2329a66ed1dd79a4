package sitegen

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devtechai/sitegen/content"
	"github.com/devtechai/sitegen/views"
)

const (
	healthMessage     = "DevTechAI WebApp v2.0 is running"
	contactMessage    = "Your message has been sent successfully. We will get back to you soon!"
	newsletterMessage = "Thank you for subscribing to our newsletter!"

	// maxFormBody bounds how much of a form submission is drained.
	maxFormBody = 1 << 20
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type formResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON body with the permissive CORS header every API
// response carries, whether or not the request had an Origin.
func writeJSON(c echo.Context, code int, v any) error {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return c.JSON(code, v)
}

func handleHealth(c echo.Context) error {
	return writeJSON(c, http.StatusOK, healthResponse{Status: "healthy", Message: healthMessage})
}

func handleServices(c echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string][]content.Service{"services": content.Services()})
}

func handleTeam(c echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string][]content.TeamMember{"team": content.Team()})
}

func handleAPINotFound(c echo.Context) error {
	return writeJSON(c, http.StatusNotFound, errorResponse{Error: "API endpoint not found"})
}

// formHandler acknowledges a submission without looking at it.
func (a *App) formHandler(message string) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := io.Copy(io.Discard, io.LimitReader(c.Request().Body, maxFormBody))
		if err != nil {
			a.Logger.Warn("form body read failed", zap.String("path", c.Path()), zap.Error(err))
		}
		a.Logger.Debug("form received", zap.String("path", c.Path()), zap.Int64("bytes", n))
		return writeJSON(c, http.StatusOK, formResponse{Status: "success", Message: message})
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Tables())
}

// handlePreview renders a page straight from the tables, without writing it.
func (a *App) handlePreview(c echo.Context) error {
	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		return echo.ErrNotFound
	}
	table, ok := content.Find(a.Tables(), kind)
	if !ok {
		return echo.ErrNotFound
	}
	file := c.Param("file")
	for _, rec := range table.Records {
		if rec.OutputName() == file || rec.OutputName() == file+".html" {
			return Render(c, views.Page(table, rec))
		}
	}
	return echo.ErrNotFound
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if code == http.StatusNotFound {
			msg = "API endpoint not found"
		}
		_ = writeJSON(c, code, errorResponse{Error: msg})
		return
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	if code >= 500 {
		a.Logger.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
