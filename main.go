package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"fsd_recorder/internal/config"
	"fsd_recorder/internal/daemon"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "fsd_recorder - records an FSD feed")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fsd_recorder [-config config.yaml]        run the recorder until interrupted")
	fmt.Fprintln(w, "  fsd_recorder decode [-stats] [file ...]   decode FSD lines to JSON records")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration is read from config.yaml in /etc/fsd_recorder or the")
	fmt.Fprintln(w, "working directory, and from FSD_RECORDER_* environment variables.")
}

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	w := logWriter(cfg.Log)

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// logWriter returns stdout, or stdout plus a rotated file when log.file is set
func logWriter(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "decode":
			os.Exit(runDecode(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
		case "help", "-h", "--help":
			usage(os.Stdout)
			return
		}
	}

	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()

	if *configPath != "" {
		os.Setenv("FSD_RECORDER_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// The configured logger isn't available yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := daemon.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start daemon", "error", err)
		os.Exit(1)
	}

	if err := d.Run(ctx); err != nil {
		slog.Error("Daemon stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}
