package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/soocke/wall-annotator/app"
	"github.com/soocke/wall-annotator/config"
	"github.com/soocke/wall-annotator/debug"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the JSON config file")
	server := flag.String("server", "", "inference server base URL (overrides config)")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime loggers")
	flag.Parse()

	var level slog.LevelVar
	logger := NewLogger(&level)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *debugFlag {
		cfg.Debug = true
	}
	_ = cfg.Validate()

	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}
	logger.Info("starting", "server", cfg.ServerURL, "config", *cfgPath, "image_type", cfg.ImageType)

	application := app.NewApp("Wall Annotator", cfg, *cfgPath, logger)

	if cfg.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c := application.Container()
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger, func() []slog.Attr {
			return []slog.Attr{
				slog.Int("pending_callbacks", c.Dispatch.Pending()),
				slog.Bool("inference_busy", c.Processing.Busy()),
			}
		})
		debug.StartMemLogger(ctx, 10*time.Second, logger)
	}

	application.Start()
}
