package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestWaveform(t *testing.T) {
	assert.Equal(t, "  ▁█", Waveform([]float64{0, 99.9}, 4))
	assert.Equal(t, "▅▁", Waveform([]float64{10, 60, 5}, 2))
	assert.Empty(t, Waveform([]float64{50}, 0))
}

func TestLevelGlyphClamps(t *testing.T) {
	assert.Equal(t, '▁', LevelGlyph(-5))
	assert.Equal(t, '█', LevelGlyph(150))
	assert.Equal(t, '▄', LevelGlyph(40))
}

func TestMenuSkipsDisabled(t *testing.T) {
	picked := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a", Action: func() tea.Cmd { picked = "a"; return nil }},
		{Label: "gone", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { picked = "b"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "b", picked)

	m, _ = m.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	assert.Equal(t, 1, m.Selected)
	assert.True(t, strings.Contains(m.View(), "▸ a"))
}

func TestOnOff(t *testing.T) {
	assert.Contains(t, OnOff(true), "on")
	assert.Contains(t, OnOff(false), "off")
}
