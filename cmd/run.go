package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/app"
	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/config"
	"github.com/abhisek/pinyin/internal/recognizer"
	"github.com/abhisek/pinyin/internal/screens"
	"github.com/abhisek/pinyin/internal/speech"
	"github.com/abhisek/pinyin/internal/telemetry"
)

// runApp loads settings, builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	rng := newRand(cfg.Practice.Seed)
	sim, err := recognizer.NewSimulator(cat, rng, cfg.RecognizerConfig())
	if err != nil {
		return fmt.Errorf("create recognizer: %w", err)
	}

	if cfg.Telemetry.MetricsAddr != "" {
		provider, err := telemetry.Setup(ctx, "pinyin", version, logger)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = provider.Shutdown(shutdownCtx)
		}()
		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if _, err := provider.Serve(serveCtx, cfg.Telemetry.MetricsAddr, logger); err != nil {
			return fmt.Errorf("serve metrics: %w", err)
		}
	}

	env := &screens.Env{
		Catalog:         cat,
		Recognizer:      sim,
		Speaker:         newSpeaker(cfg, logger),
		Tally:           analytics.New(),
		Logger:          logger,
		Settings:        &cfg,
		ConfigPath:      cfgPath,
		Calibration:     calibration.DefaultConfig(),
		CalibrationRand: rng,
		Mic:             rng,
	}

	logger.Info("starting", slog.String("version", version), slog.Int("items", cat.Len()))
	return app.Run(ctx, env, app.Options{})
}

// newSpeaker returns the configured TTS command, or a silent speaker when
// disabled or unavailable.
func newSpeaker(cfg config.Config, logger *slog.Logger) speech.Speaker {
	if !cfg.TTS.Enabled {
		return speech.Noop{}
	}
	exec, err := speech.NewExecSpeaker(cfg.TTS.Command)
	if err != nil {
		logger.Warn("tts disabled", slog.String("error", err.Error()))
		return speech.Noop{}
	}
	if err := exec.Available(); err != nil {
		logger.Warn("tts command not found, demos are silent", slog.String("error", err.Error()))
		return speech.Noop{}
	}
	return speech.NewBestEffort(exec, logger)
}

// openLogFile opens the JSON log under the XDG state directory; the
// terminal itself belongs to the UI.
func openLogFile(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Telemetry.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
