package sitegen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"go.uber.org/zap"
)

// ErrAddrInUse is returned by Listen when the configured port is taken.
var ErrAddrInUse = errors.New("address already in use")

func (a *App) setupRoutes() {
	e := a.Echo
	methods := []string{http.MethodGet, http.MethodPost}

	api := e.Group("/api")
	api.Match(methods, "/health", handleHealth)
	api.Match(methods, "/services", handleServices)
	api.Match(methods, "/team", handleTeam)
	api.Any("/*", handleAPINotFound)

	e.POST("/forms/contact.php", a.formHandler(contactMessage), a.formLimitMiddleware)
	e.POST("/forms/newsletter.php", a.formHandler(newsletterMessage), a.formLimitMiddleware)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/_preview/:kind/:file", a.handlePreview)
}

// Handler exposes the router for embedding and tests.
func (a *App) Handler() http.Handler {
	return a.Echo
}

// Listen binds the configured address.
func (a *App) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", a.Config.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("sitegen: port %s is already in use: %w", portOf(a.Config.Addr), ErrAddrInUse)
		}
		return nil, fmt.Errorf("sitegen: listen on %s: %w", a.Config.Addr, err)
	}
	return ln, nil
}

// Start binds the configured address and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	ln, err := a.Listen()
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	a.Echo.Listener = ln
	a.Logger.Info("serving site",
		zap.String("addr", ln.Addr().String()),
		zap.String("root", a.Config.OutputDir),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start("")
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sitegen: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.Logger.Info("server stopped")
	return nil
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
