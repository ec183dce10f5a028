// Package config loads application settings from TOML with environment
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/recognizer"
	"github.com/abhisek/pinyin/internal/speech"
)

// Demo speeds.
const (
	SpeedSlow   = "slow"
	SpeedNormal = "normal"
)

// Config is the full settings file.
type Config struct {
	Practice  PracticeConfig  `toml:"practice"`
	Display   DisplayConfig   `toml:"display"`
	TTS       TTSConfig       `toml:"tts"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// PracticeConfig maps session timings and simulation parameters.
type PracticeConfig struct {
	// Catalog is a JSON or YAML catalog file; empty uses the built-in set.
	Catalog            string  `toml:"catalog"`
	CountdownSteps     int     `toml:"countdown_steps"`
	CountdownTickMS    int     `toml:"countdown_tick_ms"`
	SampleIntervalMS   int     `toml:"sample_interval_ms"`
	CaptureMS          int     `toml:"capture_ms"`
	ProcessingMS       int     `toml:"processing_ms"`
	SuccessProbability float64 `toml:"success_probability"`
	AmplifyProbability float64 `toml:"amplify_probability"`
	AutoAdvance        bool    `toml:"auto_advance"`

	// Seed fixes the random source; zero picks a fresh seed per run.
	Seed uint64 `toml:"seed"`
}

// DisplayConfig maps presentation toggles edited on the settings screen.
type DisplayConfig struct {
	ShowToneCurve bool   `toml:"show_tone_curve"`
	DemoSpeed     string `toml:"demo_speed"`
	Notifications bool   `toml:"notifications"`
}

// TTSConfig maps the pronunciation demo command.
type TTSConfig struct {
	Enabled bool   `toml:"enabled"`
	Command string `toml:"command"`
	Lang    string `toml:"lang"`
}

// TelemetryConfig maps logging and metrics.
type TelemetryConfig struct {
	LogLevel string `toml:"log_level"`

	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string `toml:"metrics_addr"`
}

// Default returns the built-in settings.
func Default() Config {
	pc := practice.DefaultConfig()
	rc := recognizer.DefaultConfig()
	return Config{
		Practice: PracticeConfig{
			CountdownSteps:     pc.CountdownSteps,
			CountdownTickMS:    int(pc.CountdownTick / time.Millisecond),
			SampleIntervalMS:   int(pc.SampleInterval / time.Millisecond),
			CaptureMS:          int(pc.CaptureDuration / time.Millisecond),
			ProcessingMS:       int(pc.ProcessingDelay / time.Millisecond),
			SuccessProbability: rc.SuccessProbability,
			AmplifyProbability: rc.AmplifyProbability,
		},
		Display: DisplayConfig{
			ShowToneCurve: true,
			DemoSpeed:     SpeedNormal,
			Notifications: true,
		},
		TTS: TTSConfig{
			Enabled: true,
			Command: speech.DefaultCommand,
			Lang:    speech.DefaultLang,
		},
		Telemetry: TelemetryConfig{
			LogLevel: "info",
		},
	}
}

// Load reads path over the defaults, applies PINYIN_* environment
// overrides and validates the result. A missing file is not an error; an
// override that does not parse is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment override: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories. The file is
// replaced atomically.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	overrideString(&cfg.Practice.Catalog, "PINYIN_PRACTICE_CATALOG")
	overrideString(&cfg.Display.DemoSpeed, "PINYIN_DISPLAY_DEMO_SPEED")
	overrideString(&cfg.TTS.Command, "PINYIN_TTS_COMMAND")
	overrideString(&cfg.TTS.Lang, "PINYIN_TTS_LANG")
	overrideString(&cfg.Telemetry.LogLevel, "PINYIN_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.MetricsAddr, "PINYIN_TELEMETRY_METRICS_ADDR")
	return errors.Join(
		overrideInt(&cfg.Practice.CountdownSteps, "PINYIN_PRACTICE_COUNTDOWN_STEPS"),
		overrideInt(&cfg.Practice.CountdownTickMS, "PINYIN_PRACTICE_COUNTDOWN_TICK_MS"),
		overrideInt(&cfg.Practice.SampleIntervalMS, "PINYIN_PRACTICE_SAMPLE_INTERVAL_MS"),
		overrideInt(&cfg.Practice.CaptureMS, "PINYIN_PRACTICE_CAPTURE_MS"),
		overrideInt(&cfg.Practice.ProcessingMS, "PINYIN_PRACTICE_PROCESSING_MS"),
		overrideFloat(&cfg.Practice.SuccessProbability, "PINYIN_PRACTICE_SUCCESS_PROBABILITY"),
		overrideFloat(&cfg.Practice.AmplifyProbability, "PINYIN_PRACTICE_AMPLIFY_PROBABILITY"),
		overrideBool(&cfg.Practice.AutoAdvance, "PINYIN_PRACTICE_AUTO_ADVANCE"),
		overrideUint(&cfg.Practice.Seed, "PINYIN_PRACTICE_SEED"),
		overrideBool(&cfg.Display.ShowToneCurve, "PINYIN_DISPLAY_SHOW_TONE_CURVE"),
		overrideBool(&cfg.Display.Notifications, "PINYIN_DISPLAY_NOTIFICATIONS"),
		overrideBool(&cfg.TTS.Enabled, "PINYIN_TTS_ENABLED"),
	)
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

// overrideParsed sets target from envKey when present. A value that does
// not parse is reported with the variable name and leaves target alone.
func overrideParsed[T any](target *T, envKey string, parse func(string) (T, error)) error {
	value, ok := os.LookupEnv(envKey)
	if !ok {
		return nil
	}
	parsed, err := parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s=%q: %w", envKey, value, err)
	}
	*target = parsed
	return nil
}

func overrideInt(target *int, envKey string) error {
	return overrideParsed(target, envKey, strconv.Atoi)
}

func overrideUint(target *uint64, envKey string) error {
	return overrideParsed(target, envKey, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

func overrideBool(target *bool, envKey string) error {
	return overrideParsed(target, envKey, strconv.ParseBool)
}

func overrideFloat(target *float64, envKey string) error {
	return overrideParsed(target, envKey, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.SessionConfig().Validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if err := c.RecognizerConfig().Validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	switch c.Display.DemoSpeed {
	case SpeedSlow, SpeedNormal:
	default:
		return fmt.Errorf("display.demo_speed must be %q or %q, got %q", SpeedSlow, SpeedNormal, c.Display.DemoSpeed)
	}
	if c.TTS.Enabled && strings.TrimSpace(c.TTS.Command) == "" {
		return errors.New("tts.command must not be empty when tts is enabled")
	}
	if _, err := ParseLevel(c.Telemetry.LogLevel); err != nil {
		return err
	}
	return nil
}

// SessionConfig converts the practice section to session timings.
func (c Config) SessionConfig() practice.Config {
	p := c.Practice
	return practice.Config{
		CountdownSteps:  p.CountdownSteps,
		CountdownTick:   time.Duration(p.CountdownTickMS) * time.Millisecond,
		SampleInterval:  time.Duration(p.SampleIntervalMS) * time.Millisecond,
		CaptureDuration: time.Duration(p.CaptureMS) * time.Millisecond,
		ProcessingDelay: time.Duration(p.ProcessingMS) * time.Millisecond,
		AutoAdvance:     p.AutoAdvance,
	}
}

// RecognizerConfig returns the simulator probabilities.
func (c Config) RecognizerConfig() recognizer.Config {
	return recognizer.Config{
		SuccessProbability: c.Practice.SuccessProbability,
		AmplifyProbability: c.Practice.AmplifyProbability,
	}
}

// SpeechOptions returns the demo playback options.
func (c Config) SpeechOptions() speech.Options {
	rate := speech.RateNormal
	if c.Display.DemoSpeed == SpeedSlow {
		rate = speech.RateSlow
	}
	return speech.Options{Rate: rate, Lang: c.TTS.Lang}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("telemetry.log_level: %w", err)
	}
	return l, nil
}
