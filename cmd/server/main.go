package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/Fantasim/viteassets/internal/api"
	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/logging"
	"github.com/Fantasim/viteassets/internal/vite"
	"github.com/Fantasim/viteassets/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "manifest":
		if err := runManifest(os.Stdout); err != nil {
			slog.Error("manifest error", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("viteassets %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: viteassets <command>

Commands:
  serve     Start the HTTP server
  manifest  Print manifest entries and the tags they resolve to
  version   Print version information
`)
}

func templatesFS(cfg *config.Config) (fs.FS, error) {
	if cfg.TemplatesDir != "" {
		return os.DirFS(cfg.TemplatesDir), nil
	}
	return fs.Sub(web.Templates, "templates")
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	api.Version = version

	slog.Info("starting viteassets",
		"version", version,
		"devMode", cfg.IsDevMode(),
		"basePath", cfg.BasePath,
		"assetsPath", cfg.FullAssetsPath(),
		"manifestPath", cfg.FullManifestPath(),
		"logLevel", cfg.LogLevel,
	)

	tfs, err := templatesFS(cfg)
	if err != nil {
		return fmt.Errorf("failed to access templates: %w", err)
	}

	router, resolver, err := api.NewRouter(cfg, tfs)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	// Load the manifest once up front so request handlers only read the cache.
	if !cfg.IsDevMode() {
		m, err := resolver.Manifest().Load()
		if err != nil {
			return fmt.Errorf("failed to load vite manifest: %w", err)
		}
		if len(m) == 0 {
			slog.Warn("vite manifest is empty or missing, asset tags will render nothing",
				"manifestPath", cfg.FullManifestPath(),
			)
		}
	}

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    config.ServerReadTimeout,
		WriteTimeout:   config.ServerWriteTimeout,
		IdleTimeout:    config.ServerIdleTimeout,
		MaxHeaderBytes: config.ServerMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func runManifest(out io.Writer) error {
	fset := flag.NewFlagSet("manifest", flag.ExitOnError)
	all := fset.Bool("all", false, "List every chunk, not only entry points")
	dev := fset.Bool("dev", false, "Resolve tags as in development mode (default: production resolution, ENV and VITE_FORCE_DEV_MODE are ignored)")
	fset.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	vc := cfg.ViteConfig
	vc.ForceDevMode = dev
	resolver := vite.NewResolver(&vc, nil)

	m, err := resolver.Manifest().Load()
	if err != nil {
		return fmt.Errorf("failed to load vite manifest: %w", err)
	}

	var keys []string
	if *all {
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	} else if keys, err = resolver.Manifest().Entries(); err != nil {
		return err
	}

	fmt.Fprintf(out, "manifest: %s (%d chunks)\n", cfg.FullManifestPath(), len(m))
	for _, k := range keys {
		tags, err := resolver.Tags(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", k)
		for _, t := range tags {
			fmt.Fprintf(out, "  %s\n", t)
		}
	}
	return nil
}
