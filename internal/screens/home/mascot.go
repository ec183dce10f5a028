package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

// SealVariant selects the seal stamp art.
type SealVariant int

const (
	SealIdle  SealVariant = iota // no calibration yet
	SealReady                    // quiet room
	SealNoisy                    // noisy room, input may be amplified
)

const sealIdle = `╔═════╗
║ 拼音 ║
║ 練習 ║
╚═════╝`

const sealReady = `╔═════╗
║ 拼音 ║
║ 練習 ║
╚══✓══╝`

const sealNoisy = `╔═════╗
║ 拼音 ║ ♪
║ 練習 ║ ♪
╚═════╝`

func sealFor(env calibration.Environment) SealVariant {
	switch env {
	case calibration.EnvironmentQuiet:
		return SealReady
	case calibration.EnvironmentNoisy:
		return SealNoisy
	default:
		return SealIdle
	}
}

// RenderSeal returns the seal art for v.
func RenderSeal(v SealVariant) string {
	art, fg := sealIdle, theme.Primary
	switch v {
	case SealReady:
		art, fg = sealReady, theme.Success
	case SealNoisy:
		art, fg = sealNoisy, theme.Warning
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
