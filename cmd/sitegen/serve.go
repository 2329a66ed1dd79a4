package main

import (
	"errors"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devtechai/sitegen"
	"github.com/devtechai/sitegen/internal/printer"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with the development API",
	Long: `Serve the output directory over HTTP together with the /api endpoints
and the contact and newsletter form stubs.

With --watch the pages are generated once at startup and again whenever a
table in the content directory changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			appConfig.Addr = serveAddr
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if serveWatch {
			if app.Config.ContentDir == "" {
				return printer.Error("Nothing to watch",
					"--watch rebuilds pages when the content tables change, but the built-in tables are in use.",
					[]string{"Set content_dir in sitegen.yaml, or pass --content-dir (see sitegen init)."})
			}
			if err := runGenerate(cmd, app, nil); err != nil {
				return err
			}
		}

		ln, err := app.Listen()
		if errors.Is(err, sitegen.ErrAddrInUse) {
			_, port, _ := net.SplitHostPort(app.Config.Addr)
			return printer.Error("Port "+port+" is already in use",
				"Another process is already listening on "+app.Config.Addr+".",
				[]string{"Stop the other server", "Choose a different address with --addr or SITEGEN_ADDR"})
		}
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printer.Success("Server running at http://%s", displayAddr(ln.Addr()))
		printer.Info("  serving files from %s", app.Config.OutputDir)
		printer.Info("  press Ctrl+C to stop")

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return app.Serve(gctx, ln) })
		if serveWatch {
			g.Go(func() error { return app.Watch(gctx) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
		printer.Info("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default \":8000\")")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "regenerate pages when content tables change")
}

func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		return net.JoinHostPort("localhost", strconv.Itoa(tcp.Port))
	}
	return addr.String()
}
