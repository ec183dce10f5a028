package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/config"
)

func TestSimulateForcedOutcome(t *testing.T) {
	cfg := config.Default()
	cfg.Practice.Seed = 7

	var out bytes.Buffer
	err := simulate(context.Background(), &out, cfg,
		simulateOptions{rounds: 3, speed: 1000, outcome: "tone"}, discardLogger())
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "tone error"))
	assert.Contains(t, text, "3 attempts, 0 correct (0%)")
	assert.Contains(t, text, "1/10 媽")
	assert.Contains(t, text, "3/10 馬")
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	cfg := config.Default()
	var out bytes.Buffer
	assert.Error(t, simulate(context.Background(), &out, cfg, simulateOptions{rounds: 0, speed: 1}, discardLogger()))
	assert.Error(t, simulate(context.Background(), &out, cfg, simulateOptions{rounds: 1, speed: 0}, discardLogger()))
	assert.Error(t, simulate(context.Background(), &out, cfg, simulateOptions{rounds: 1, speed: 1, outcome: "volume"}, discardLogger()))
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCatalog(&out, catalog.Default()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 11)
	assert.Contains(t, lines[0], "PINYIN")
	assert.Contains(t, lines[1], "媽")
	assert.Contains(t, lines[1], "high level (1st)")
}

func TestCatalogValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - character: 他
    pinyin: tā
    initial: t
    final: a
    tone: 1
`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"catalog", "validate", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "ok, 1 items")
}

func TestConfigPathHonoursFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "path", "--config", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, path+"\n", out.String())
}
