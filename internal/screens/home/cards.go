package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/pinyin"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

func card(title string, accent lipgloss.Style, body string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(accent.Render(title) + "\n" + body)
}

// renderMissions lists the daily goals with a done/total counter.
func renderMissions(missions []analytics.Mission, cw int) string {
	done := 0
	lines := make([]string, len(missions))
	for i, m := range missions {
		progress := fmt.Sprintf("%d/%d", m.Progress, m.Target)
		if m.Done() {
			done++
			lines[i] = theme.Correct.Render("✓ "+m.Label) + "  " + theme.Hint.Render(progress)
		} else {
			lines[i] = theme.Body.Render("○ "+m.Label) + "  " + theme.Hint.Render(progress)
		}
	}
	if len(missions) > 0 && done == len(missions) {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("任務完成！"))
	}

	title := fmt.Sprintf("DAILY MISSION · %d/%d", done, len(missions))
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	return card(title, accent, strings.Join(lines, "\n"), cw)
}

// renderSuggestion names the weakest tone of this run.
func renderSuggestion(weak analytics.ToneStat, found bool, cw int) string {
	accent := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if !found {
		return card("SMART SUGGESTION", accent, theme.Hint.Render("Practice a few cards to get a suggestion."), cw)
	}
	tone := lipgloss.NewStyle().Foreground(theme.ToneColor(weak.Tone)).Bold(true)
	body := theme.Body.Render("今天重點加強：") + tone.Render(toneName(weak.Tone)) + "\n" +
		theme.Hint.Render(fmt.Sprintf("%s tone at %.0f%% over %d attempts",
			weak.Tone.Description(), weak.Accuracy(), weak.Attempts))
	return card("SMART SUGGESTION", accent, body, cw)
}

func toneName(t pinyin.Tone) string {
	switch t {
	case pinyin.ToneFirst:
		return "第一聲"
	case pinyin.ToneSecond:
		return "第二聲"
	case pinyin.ToneThird:
		return "第三聲"
	case pinyin.ToneFourth:
		return "第四聲"
	default:
		return "輕聲"
	}
}
