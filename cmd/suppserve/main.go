/*
Package main runs the suppserve autocomplete service.

suppserve answers "what products or brands start with this text" queries from
an in-memory prefix index, one tree per category. The dataset can be replaced
at runtime without blocking or dropping in-flight queries: a fresh tree is
built on a background goroutine and published with a single pointer swap
under a brief exclusive lock.

# Usage

Start the IPC server with default settings:

	suppserve

Use a custom data directory and enable debug logging:

	suppserve -data /var/lib/suppserve -d

Run in CLI mode for interactive testing:

	suppserve -c -limit 10

Expose Prometheus metrics while serving:

	suppserve -metrics :9109

# Data

Each category persists to <data-dir>/<category>.json as a bracketed list of
quoted, normalized entries. Missing or corrupt files are replaced by the
built-in seed dataset on startup and re-persisted immediately; current state
is written back on shutdown.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout; logs go to
stderr. Completion requests name a category and prefix:

	{"id": "req1", "cmd": "complete", "cat": "products", "p": "whey", "l": 10}

and are answered with matching entries plus timing information. "reload"
replaces a category's full dataset asynchronously and is acknowledged with
an accepted flag; a reload already in flight causes rejection, never
queueing. See pkg/server for the full message set.

# Configuration

Runtime configuration lives in a TOML file, created with defaults when
missing:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60

	[data]
	dir = "data/autocomplete"
	save_on_close = true

	[[categories]]
	name = "products"
	limit = 25

Configuration problems are never fatal: the service falls back to built-in
defaults, or to in-memory-only operation when the data directory is
unusable.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/suppserve/suppserve/internal/cli"
	"github.com/suppserve/suppserve/internal/logger"
	"github.com/suppserve/suppserve/internal/metrics"
	"github.com/suppserve/suppserve/pkg/autocomplete"
	"github.com/suppserve/suppserve/pkg/config"
	"github.com/suppserve/suppserve/pkg/server"
)

const (
	Version = "1.2.0"
	AppName = "suppserve"
)

// sigHandler persists current state before the process exits.
func sigHandler(svc *autocomplete.Service) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nshutting down...\n")
		if err := svc.Close(); err != nil {
			log.Errorf("persisting state on shutdown: %v", err)
		}
		os.Exit(0)
	}()
}

// main wires config, service, and the chosen frontend together; the actual
// logic lives in the packages.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory for category cache files (overrides config)")
	configPath := flag.String("config", "suppserve.toml", "Path to the TOML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI instead of the IPC server")
	limit := flag.Int("limit", 0, "Suggestion limit in CLI mode (0 uses category defaults)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address (empty disables)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *dataDir != "" {
		appConfig.Data.Dir = *dataDir
	}

	var m *metrics.Metrics
	if *metricsAddr != "" {
		m = metrics.New(prometheus.DefaultRegisterer)
		shutdown := metrics.StartServer(*metricsAddr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	svc := autocomplete.New(appConfig, m)
	svc.Init()
	sigHandler(svc)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(svc, "products", *limit)
		if err := handler.Start(); err != nil {
			svc.Close()
			return
		}
		return
	}

	showStartupInfo(appConfig.Data.Dir)

	srv := server.NewServer(svc, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
	if err := svc.Close(); err != nil {
		log.Errorf("persisting state on shutdown: %v", err)
	}
}

// printVersion mirrors the rest of the tooling's styled version output.
func printVersion() {
	vlog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("[ suppserve ] prefix search for products and brands")
	vlog.Print("", "version", Version)
	vlog.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("pid: [ %d ]", os.Getpid())
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
