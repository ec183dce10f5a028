package recognizer

import (
	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/pinyin"
)

// Simulator draws outcomes at random. Each Classify call consumes, in
// order: one Float64 for correctness; when incorrect, one IntN(3) for the
// error kind and, for tone errors, one IntN for the substitute tone; then
// one Float64 for amplification.
type Simulator struct {
	cat *catalog.Catalog
	rng Rand
	cfg Config

	// force, when set, replaces the correctness and error-kind draws.
	force *ErrorKind
}

var _ Recognizer = (*Simulator)(nil)

// NewSimulator returns a simulator drawing wrong labels from cat.
func NewSimulator(cat *catalog.Catalog, rng Rand, cfg Config) (*Simulator, error) {
	if cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{cat: cat, rng: rng, cfg: cfg}, nil
}

// Force returns a copy of s that always reports kind. Substitute tones
// and amplification are still drawn at random.
func (s *Simulator) Force(kind ErrorKind) *Simulator {
	cp := *s
	cp.force = &kind
	return &cp
}

func (s *Simulator) Classify(item catalog.Item) Outcome {
	var out Outcome
	if s.force != nil {
		out.ErrorKind = *s.force
		out.IsCorrect = out.ErrorKind == ErrorNone
		out.RecognizedLabel = item.Character
		if !out.IsCorrect {
			out.RecognizedLabel = s.mislabel(item, out.ErrorKind)
		}
	} else if s.rng.Float64() < s.cfg.SuccessProbability {
		out.IsCorrect = true
		out.ErrorKind = ErrorNone
		out.RecognizedLabel = item.Character
	} else {
		out.ErrorKind = ErrorKinds[s.rng.IntN(len(ErrorKinds))]
		out.RecognizedLabel = s.mislabel(item, out.ErrorKind)
	}
	out.Amplified = s.rng.Float64() < s.cfg.AmplifyProbability
	return out
}

// mislabel picks a wrong label that agrees with kind where the catalog
// allows it. Tone errors re-mark the syllable; initial and final errors
// take the nearest item differing in that part, then any neighbour.
func (s *Simulator) mislabel(item catalog.Item, kind ErrorKind) string {
	if kind == ErrorTone {
		return s.retone(item)
	}

	i := s.cat.Index(item.Character)
	if i < 0 {
		return s.retone(item)
	}

	var differs func(catalog.Item) bool
	switch kind {
	case ErrorInitial:
		differs = func(o catalog.Item) bool { return o.Initial != item.Initial }
	default:
		differs = func(o catalog.Item) bool { return o.Final != item.Final }
	}
	if j := s.cat.Nearest(i, differs); j >= 0 {
		return s.cat.At(j).Character
	}
	if nb := s.cat.Neighbors(i); len(nb) > 0 {
		return s.cat.At(nb[len(nb)-1]).Character
	}
	return s.retone(item)
}

func (s *Simulator) retone(item catalog.Item) string {
	others := make([]pinyin.Tone, 0, 4)
	for _, t := range []pinyin.Tone{pinyin.ToneFirst, pinyin.ToneSecond, pinyin.ToneThird, pinyin.ToneFourth} {
		if t != item.Tone {
			others = append(others, t)
		}
	}
	return pinyin.Retone(item.Pinyin, others[s.rng.IntN(len(others))])
}
