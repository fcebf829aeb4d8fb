package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Wikid82/hermes/internal/config"
	"github.com/Wikid82/hermes/internal/logger"
	"github.com/Wikid82/hermes/internal/server"
	"github.com/Wikid82/hermes/internal/systemd"
	"github.com/Wikid82/hermes/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Setup logging with rotation
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		log.Fatalf("ensure log directory: %v", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "hermes.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	// Log to both stdout and file
	mw := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(mw)
	logger.Init(cfg.Environment == "development", mw)

	logger.WithFields(map[string]interface{}{
		"version": version.Full(),
		"port":    cfg.HTTPPort,
	}).Infof("starting %s", version.Name)
	logSecurityPosture(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, err := systemd.New(ctx, cfg.Backend)
	if err != nil {
		log.Fatalf("select service backend: %v", err)
	}

	snap := config.NewSnapshot(cfg)
	if err := config.Watch(ctx, snap); err != nil {
		log.Fatalf("watch services file: %v", err)
	}

	srv, err := server.New(snap, ctrl)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}

	logger.Log().Info("shut down cleanly")
}

// logSecurityPosture records the effective admission configuration so
// operators can tell reverse-proxy mode apart from a misconfiguration.
func logSecurityPosture(cfg *config.Config) {
	var modes []string
	if cfg.HasAPIKey() {
		modes = append(modes, "API key")
	}
	if cfg.HasHostRestriction() {
		modes = append(modes, "host allowlist")
	}

	if len(modes) == 0 {
		logger.Log().Warn("security: NONE (reverse proxy mode)")
	} else {
		logger.WithFields(map[string]interface{}{
			"allowed_hosts": len(cfg.AllowedHosts),
		}).Infof("security: %s", strings.Join(modes, " + "))
	}

	for _, svc := range cfg.Services {
		logger.WithFields(map[string]interface{}{
			"unit":         svc.Service,
			"display_name": svc.DisplayName,
		}).Info("monitoring service")
	}
}
