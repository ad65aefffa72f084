package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/boracayhouse/ogengine"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "resolve":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: ogengine resolve <path>")
			os.Exit(1)
		}
		if err := runResolve(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("ogengine %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ogengine - Open Graph tags for the Boracay.House single-page app

Usage:
  ogengine <command> [arguments]

Commands:
  serve           Run the HTTP server
  resolve <path>  Print the metadata a path resolves to, as JSON
  version         Print the ogengine version
  help            Show this help message

Configuration is read from the environment and from .env in the working
directory. See SITE_URL, ORIGIN_URL, CONTENT_STORE_DRIVER, CONTENT_STORE_URL,
CONTENT_STORE_KEY, DATABASE_URL and ADMIN_PASSWORD.

Examples:
  ogengine serve
  ogengine resolve /blog/guides/how-to-buy`)
}

func newApp() (*ogengine.App, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := log.New("ogengine")
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
	logger.SetLevel(logLevel(ogengine.EnvOr("LOG_LEVEL", "info")))
	return ogengine.New(cfg, ogengine.WithLogger(logger)), nil
}

func runServe() error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}

func runResolve(path string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()
	app.Echo.Logger.SetOutput(os.Stderr)
	if err := app.Init(); err != nil {
		return err
	}

	match, meta := app.Pipeline.Preview(context.Background(), "", path)
	out := struct {
		Path  string                `json:"path"`
		Route string                `json:"route"`
		Slug  string                `json:"slug,omitempty"`
		Meta  ogengine.PageMetadata `json:"meta"`
	}{path, match.Kind.String(), match.Slug, meta}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
