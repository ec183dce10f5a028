package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/recognizer"
	"github.com/abhisek/pinyin/internal/ui/components"
	"github.com/abhisek/pinyin/internal/ui/theme"
)

const cardWidth = 56

func (p *PracticeScreen) View(width, height int) string {
	if p.err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(fmt.Sprintf("Cannot start practice: %v", p.err)))
	}

	w := min(width-4, cardWidth)
	inner := w - 6

	sections := []string{
		p.renderProgress(inner),
		"",
		p.renderItem(),
		"",
		p.renderStage(inner),
	}
	card := theme.Card.Width(w).Align(lipgloss.Center).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (p *PracticeScreen) renderProgress(width int) string {
	pct := 0.0
	if p.snap.Total > 0 {
		pct = float64(p.snap.Index+1) / float64(p.snap.Total)
	}
	label := fmt.Sprintf("%d / %d", p.snap.Index+1, p.snap.Total)
	return components.NewProgressBar(label, pct, false, width).View()
}

func (p *PracticeScreen) renderItem() string {
	it := p.snap.Item
	toneStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ToneColor(it.Tone))

	lines := []string{
		theme.Glyph.Render(it.Character),
		toneStyle.Render(it.Pinyin),
	}
	if it.Meaning != "" {
		lines = append(lines, theme.Hint.Render(it.Meaning))
	}
	if p.env.Settings.Display.ShowToneCurve {
		lines = append(lines, toneStyle.Render(it.Tone.Contour()+"  "+it.Tone.Description()))
	}
	return strings.Join(lines, "\n")
}

func (p *PracticeScreen) renderStage(width int) string {
	switch p.snap.Stage {
	case sess.StageIdle:
		return strings.Join([]string{
			theme.Hint.Render("Press Space and read the character aloud"),
			"",
			components.ButtonRow(
				components.KeyButton{Key: "Space", Label: "Record", Active: true},
				components.KeyButton{Key: "P", Label: "Listen"},
			),
		}, "\n")

	case sess.StageCountdown:
		return strings.Join([]string{
			theme.Notice.Render("Get ready"),
			lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(fmt.Sprintf("%d", p.snap.CountdownRemaining)),
		}, "\n")

	case sess.StageRecording:
		rec := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("● REC")
		return strings.Join([]string{
			rec + theme.Hint.Render(fmt.Sprintf("  level %3.0f", p.snap.LatestMicLevel)),
			theme.Level.Render(components.Waveform(p.snap.Samples, width)),
			"",
			components.ButtonRow(components.KeyButton{Key: "Space", Label: "Stop", Active: true}),
		}, "\n")

	case sess.StageProcessing:
		return strings.Join([]string{
			theme.Level.Render(components.Waveform(p.snap.Samples, width)),
			theme.Hint.Render("Analyzing your pronunciation..."),
		}, "\n")

	case sess.StageResult:
		return p.renderResult()
	}
	return ""
}

func (p *PracticeScreen) renderResult() string {
	out := p.snap.LastResult
	if out == nil {
		return ""
	}

	var lines []string
	if out.IsCorrect {
		lines = append(lines, theme.Correct.Render("✓ 很好! Well done"))
	} else {
		lines = append(lines,
			theme.Incorrect.Render("✗ "+out.ErrorKind.Description()),
			theme.Body.Render("Heard: ")+theme.Glyph.Render(out.RecognizedLabel),
			theme.Hint.Render(errorTip(out.ErrorKind)))
	}
	if out.Amplified && p.env.Settings.Display.Notifications {
		lines = append(lines, theme.Notice.Render("Input was quiet and had to be amplified"))
	}
	lines = append(lines, "", components.ButtonRow(
		components.KeyButton{Key: "R", Label: "Retry", Active: !out.IsCorrect},
		components.KeyButton{Key: "N", Label: "Next", Active: out.IsCorrect},
		components.KeyButton{Key: "P", Label: "Listen"},
	))
	return strings.Join(lines, "\n")
}

func errorTip(k recognizer.ErrorKind) string {
	switch k {
	case recognizer.ErrorTone:
		return "Follow the tone curve above and exaggerate the pitch."
	case recognizer.ErrorInitial:
		return "Watch the opening consonant."
	case recognizer.ErrorFinal:
		return "Hold the vowel shape through the end of the syllable."
	default:
		return ""
	}
}
