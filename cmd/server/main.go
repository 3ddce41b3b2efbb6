package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gigcompliance/anj-resolver/pkg/api"
	"github.com/gigcompliance/anj-resolver/pkg/chassis"
	"github.com/gigcompliance/anj-resolver/pkg/chat"
	"github.com/gigcompliance/anj-resolver/pkg/importer"
	"github.com/gigcompliance/anj-resolver/pkg/sheet"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

type config struct {
	Addr      string `yaml:"addr"`
	SheetsDir string `yaml:"sheets_dir"`
	CertFile  string `yaml:"cert_file"`
	KeyFile   string `yaml:"key_file"`
	// MCP enables the QUIC chassis (HTTP/3 + MCP on the same port).
	// Off, the server is a plain HTTP listener.
	MCP bool `yaml:"mcp"`
	// SourceCheckInterval is how often the importer source URLs are
	// probed for availability ("1h", "30m"). Empty disables the checker.
	SourceCheckInterval string `yaml:"source_check_interval"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: anj-resolver <command>\n\nCommands:\n  serve    Start the resolver server\n  import   Download ANJ sheets into the sheets directory\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadConfig(*cfgPath, logger)

	// Load sheets.
	reg := sheet.NewRegistry(cfg.SheetsDir)
	if err := reg.Load(); err != nil {
		logger.Error("failed to load sheets", "error", err)
		os.Exit(1)
	}
	logger.Info("sheets loaded", "count", reg.SheetCount(), "records", reg.TotalRecords())

	sessions := chat.NewStore(0)
	router := api.NewRouter(reg, sessions, logger)

	// SIGHUP: hot reload sheets.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading sheets")
			if err := reg.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				logger.Info("sheets reloaded", "count", reg.SheetCount(), "records", reg.TotalRecords())
			}
		}
	}()

	// Expired dialog sessions are swept in the background.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(); n > 0 {
					logger.Debug("chat sessions swept", "removed", n)
				}
			}
		}
	}()

	startSourceChecker(ctx, cfg, logger)

	if cfg.MCP {
		serveChassis(ctx, cfg, reg, router, logger)
		return
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("anj-resolver listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

// serveChassis runs the dual-transport chassis: HTTP/1.1+2 on TCP,
// HTTP/3 and MCP-over-QUIC on UDP, same port.
func serveChassis(ctx context.Context, cfg config, reg *sheet.Registry, router http.Handler, logger *slog.Logger) {
	mcpSrv := server.NewMCPServer("anj-resolver", version)
	api.RegisterMCPTools(mcpSrv, reg)

	ch, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("chassis init failed", "error", err)
		os.Exit(1)
	}

	if err := ch.Start(ctx); err != nil {
		logger.Error("chassis error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ch.Stop(shutdownCtx)
}

// startSourceChecker probes the registered import source URLs so a moved
// spreadsheet shows up in the logs before the next import fails.
func startSourceChecker(ctx context.Context, cfg config, logger *slog.Logger) {
	if cfg.SourceCheckInterval == "" {
		return
	}
	interval, err := time.ParseDuration(cfg.SourceCheckInterval)
	if err != nil || interval <= 0 {
		logger.Warn("invalid source_check_interval, checker disabled", "value", cfg.SourceCheckInterval)
		return
	}
	sdb, err := importer.OpenSourceDB(filepath.Join(cfg.SheetsDir, "sources.db"))
	if err != nil {
		logger.Warn("source checker disabled", "error", err)
		return
	}
	if err := sdb.Seed(importer.All()); err != nil {
		logger.Warn("source seed failed", "error", err)
		sdb.Close()
		return
	}
	checker := importer.NewChecker(sdb, logger, interval)
	go func() {
		defer sdb.Close()
		checker.Start(ctx)
	}()
	logger.Info("source checker started", "interval", interval.String())
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:      ":8430",
		SheetsDir: "sheets",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
