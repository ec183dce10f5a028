package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in       string
		wantBase string
		wantTone Tone
	}{
		{"mā", "ma", ToneFirst},
		{"má", "ma", ToneSecond},
		{"mǎ", "ma", ToneThird},
		{"mà", "ma", ToneFourth},
		{"ba", "ba", ToneNeutral},
		{"lǜ", "lü", ToneFourth},
		{"shuǐ", "shui", ToneThird},
		{"xiǎng", "xiang", ToneThird},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			base, tone := Split(tt.in)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantTone, tone)
		})
	}
}

func TestMark(t *testing.T) {
	tests := []struct {
		base string
		tone Tone
		want string
	}{
		{"ma", ToneFirst, "mā"},
		{"ma", ToneThird, "mǎ"},
		{"hao", ToneThird, "hǎo"},
		{"dou", ToneFourth, "dòu"},
		{"shui", ToneThird, "shuǐ"},
		{"liu", ToneSecond, "liú"},
		{"lü", ToneFourth, "lǜ"},
		{"lv", ToneSecond, "lǘ"},
		{"xue", ToneSecond, "xué"},
		{"ba", ToneNeutral, "ba"},
		{"m", ToneSecond, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Mark(tt.base, tt.tone))
		})
	}
}

func TestRetone(t *testing.T) {
	assert.Equal(t, "má", Retone("mā", ToneSecond))
	assert.Equal(t, "ba", Retone("bà", ToneNeutral))
	assert.Equal(t, "dǒng", Retone("dòng", ToneThird))
}

func TestToneValid(t *testing.T) {
	for _, tone := range AllTones {
		assert.True(t, tone.Valid(), tone.String())
	}
	assert.False(t, Tone(5).Valid())
	assert.False(t, Tone(-1).Valid())
}
