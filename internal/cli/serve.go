// Implements the serve command: the HTTP server lifecycle.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/ingest"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server"
)

const version = "0.1.0"

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string
	var load string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roster web server",
		Long: `Run the roster web server.

The dataset starts empty unless --load points at a spreadsheet; with
--watch the file is re-ingested whenever it changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd.Context(), rootOpts, addr, load, watch)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&load, "load", "", "spreadsheet to load on startup (.csv, .xlsx, .xls)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-ingest the --load file when it changes")
	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, addr, load string, watch bool) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if watch && load == "" {
		return fmt.Errorf("--watch requires --load")
	}

	store := roster.NewStore(cfg.RequiredColumns)
	views := roster.NewViews(store, &roster.Reporter{
		HireDateColumn: cfg.HireDateColumn,
		RecentWindow:   time.Duration(cfg.RecentHireDays) * 24 * time.Hour,
		ClassColumns:   cfg.ClassColumns,
	})
	if load != "" {
		if err := loadFile(store, cfg, load); err != nil {
			return err
		}
	}

	// Create context that cancels on SIGTERM and SIGINT
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if watch {
		if err := watchFile(ctx, store, cfg, load); err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     server.NewRouter(store, views, cfg, version),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	// Run server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", cfg.Addr, "version", version)
		serverErr <- httpServer.ListenAndServe()
	}()

	// Wait for either context cancellation or server error
	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		// Graceful shutdown
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.Info("Server stopped")
	}
	return nil
}

// loadFile replaces the dataset with the spreadsheet at path.
func loadFile(store *roster.Store, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	t, err := ingest.Read(filepath.Base(path), f, ingest.Options{DateColumns: cfg.DateColumns})
	if err != nil {
		return err
	}
	store.Load(t)
	slog.Info("Dataset loaded", "file", path, "rows", t.Len(), "columns", len(t.Columns))
	return nil
}

// watchFile re-ingests path on every write. A file that becomes unreadable
// mid-run is logged and the previous dataset stays live.
func watchFile(ctx context.Context, store *roster.Store, cfg *config.Config, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace the file, which drops a
	// watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}
	base := filepath.Base(path)
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := loadFile(store, cfg, path); err != nil {
						slog.WarnContext(ctx, "Re-ingest failed, keeping previous dataset", "file", path, "err", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching dataset file", "err", err)
			}
		}
	}()
	return nil
}
