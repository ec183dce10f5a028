package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/calibration"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

const bannerFull = `  ██████╗ ██╗███╗   ██╗██╗   ██╗██╗███╗   ██╗
  ██╔══██╗██║████╗  ██║╚██╗ ██╔╝██║████╗  ██║
  ██████╔╝██║██╔██╗ ██║ ╚████╔╝ ██║██╔██╗ ██║
  ██╔═══╝ ██║██║╚██╗██║  ╚██╔╝  ██║██║╚██╗██║
  ██║     ██║██║ ╚████║   ██║   ██║██║ ╚████║
  ╚═╝     ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "拼 · 音 · P I N Y I N"

// contentWidth returns the shared inner width of every home section.
func contentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 60))
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	title := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
	sub := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(theme.Subtitle.Render("Pinyin Master · 聲調練習"))
	return title + "\n" + sub
}

// renderStatsBar shows this run's accuracy and the last calibration verdict.
func renderStatsBar(sum analytics.Summary, env calibration.Environment, cw int) string {
	attempts := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accuracy := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	acc := theme.Hint.Render("accuracy n/a")
	if sum.Attempts > 0 {
		acc = accuracy.Render(fmt.Sprintf("%.0f%% accuracy", sum.Accuracy))
	}
	stats := strings.Join([]string{
		attempts.Render(fmt.Sprintf("%d attempts", sum.Attempts)),
		acc,
		environmentBadge(env),
	}, "  ·  ")

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func environmentBadge(env calibration.Environment) string {
	switch env {
	case calibration.EnvironmentQuiet:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("mic: quiet")
	case calibration.EnvironmentNoisy:
		return theme.Notice.Render("mic: noisy")
	default:
		return theme.Hint.Render("mic: unchecked")
	}
}

const buttonWidth = 24

func renderMenu(labels []string, selected, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := selectedBtn.
		Bold(false).
		UnsetBackground().
		BorderForeground(theme.Border)

	buttons := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			buttons[i] = selectedBtn.Render("▸ " + label)
		} else {
			buttons[i] = normalBtn.Render(label)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(buttons, "\n"))
}

func renderSeal(env calibration.Environment, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderSeal(sealFor(env)))
}

// renderFrame centers content inside a double border filling the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
