// Package practice runs the record-and-evaluate flow for one practice
// session: countdown, capture, recognition and result. A Session is not
// safe for concurrent use; every intent and every clock callback must run
// on the same goroutine.
package practice

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/recognizer"
)

// MicSource supplies raw mic levels; Float64 values in [0,1) are scaled
// to [0,100).
type MicSource interface {
	Float64() float64
}

// Session owns the state of one practice run over a catalog.
type Session struct {
	id     string
	cat    *catalog.Catalog
	rec    recognizer.Recognizer
	clk    clock.Clock
	cfg    Config
	mic    MicSource
	logger *slog.Logger
	meter  metric.Meter
	m      *instruments

	observers []Observer

	stage     Stage
	index     int
	countdown int
	samples   []float64
	result    *recognizer.Outcome
	complete  bool

	// timers holds every token scheduled since the last stage entry.
	timers []clock.Token
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithObserver registers an observer for snapshots.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithMicSource sets the source of simulated mic levels.
func WithMicSource(m MicSource) Option {
	return func(s *Session) { s.mic = m }
}

// WithMeter records session metrics on m instead of the global meter
// provider. A nil meter disables metrics.
func WithMeter(m metric.Meter) Option {
	return func(s *Session) { s.meter = m }
}

// WithStartIndex positions the session on item i instead of the first.
// Out-of-range indices are ignored.
func WithStartIndex(i int) Option {
	return func(s *Session) {
		if i >= 0 && i < s.cat.Len() {
			s.index = i
		}
	}
}

// New creates an idle session on the first catalog item.
func New(cat *catalog.Catalog, rec recognizer.Recognizer, clk clock.Clock, cfg Config, opts ...Option) (*Session, error) {
	if cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: nil recognizer", ErrInvalidConfig)
	}
	if clk == nil {
		return nil, fmt.Errorf("%w: nil clock", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.NewString(),
		cat:    cat,
		rec:    rec,
		clk:    clk,
		cfg:    cfg,
		logger: slog.Default(),
		meter:  otel.Meter(meterName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mic == nil {
		s.mic = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.logger = s.logger.With(slog.String("component", "practice"), slog.String("session", s.id))
	s.m = newInstruments(s.meter, s.logger)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Subscribe adds an observer. It does not receive the current state;
// call State for that.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// State returns the current snapshot.
func (s *Session) State() Snapshot {
	snap := Snapshot{
		SessionID:     s.id,
		Stage:         s.stage,
		Item:          s.cat.At(s.index),
		Index:         s.index,
		Total:         s.cat.Len(),
		CycleComplete: s.complete,
	}
	if s.stage == StageCountdown {
		snap.CountdownRemaining = s.countdown
	}
	if n := len(s.samples); n > 0 {
		snap.Samples = append([]float64(nil), s.samples...)
		snap.LatestMicLevel = s.samples[n-1]
	}
	if s.result != nil {
		r := *s.result
		snap.LastResult = &r
	}
	return snap
}

// Start begins the countdown from Idle.
func (s *Session) Start() bool {
	if s.stage != StageIdle {
		return s.ignore("start")
	}
	s.complete = false
	s.startCountdown()
	return true
}

// Stop ends recording early.
func (s *Session) Stop() bool {
	if s.stage != StageRecording {
		return s.ignore("stop")
	}
	s.startProcessing(true)
	return true
}

// Retry records the same item again from its result.
func (s *Session) Retry() bool {
	if s.stage != StageResult {
		return s.ignore("retry")
	}
	s.startCountdown()
	return true
}

// Next moves from a result to the following item. Past the last item it
// wraps to the first, returns to Idle and raises CycleComplete.
func (s *Session) Next() bool {
	if s.stage != StageResult {
		return s.ignore("next")
	}
	if s.index == s.cat.Len()-1 {
		s.index = 0
		s.enter(StageIdle)
		s.complete = true
		s.logger.Info("practice cycle complete", slog.Int("items", s.cat.Len()))
		s.publish()
		return true
	}
	s.index++
	if s.cfg.AutoAdvance {
		s.startCountdown()
		return true
	}
	s.enter(StageIdle)
	s.publish()
	return true
}

// Exit abandons any in-flight attempt and returns to Idle on the current
// item. It is valid in every stage.
func (s *Session) Exit() bool {
	s.enter(StageIdle)
	s.complete = false
	s.publish()
	return true
}

// Select moves to item i while Idle.
func (s *Session) Select(i int) bool {
	if s.stage != StageIdle || i < 0 || i >= s.cat.Len() {
		return s.ignore("select")
	}
	s.index = i
	s.complete = false
	s.publish()
	return true
}

// Close cancels any pending timers without publishing.
func (s *Session) Close() {
	s.cancelTimers()
}

func (s *Session) ignore(intent string) bool {
	s.logger.Debug("intent ignored", slog.String("intent", intent), slog.String("stage", s.stage.String()))
	return false
}

// enter switches stage after cancelling every timer of the previous one.
func (s *Session) enter(stage Stage) {
	s.cancelTimers()
	from := s.stage
	s.stage = stage
	if stage != StageResult {
		s.result = nil
	}
	switch stage {
	case StageIdle:
		s.countdown = 0
		s.samples = nil
	case StageCountdown, StageRecording:
		s.samples = nil
	}
	s.logger.Debug("stage changed",
		slog.String("from", from.String()),
		slog.String("to", stage.String()),
		slog.Int("index", s.index))
}

func (s *Session) schedule(t clock.Token) {
	s.timers = append(s.timers, t)
}

func (s *Session) cancelTimers() {
	for _, t := range s.timers {
		s.clk.Cancel(t)
	}
	s.timers = s.timers[:0]
}

func (s *Session) startCountdown() {
	s.enter(StageCountdown)
	s.countdown = s.cfg.CountdownSteps
	s.schedule(s.clk.Every(s.cfg.CountdownTick, s.onCountdownTick))
	s.publish()
}

func (s *Session) onCountdownTick() {
	s.countdown--
	if s.countdown <= 0 {
		s.startRecording()
		return
	}
	s.publish()
}

func (s *Session) startRecording() {
	s.enter(StageRecording)
	// The sampler is scheduled first so a sample due at the capture
	// deadline is taken before capture ends.
	s.schedule(s.clk.Every(s.cfg.SampleInterval, s.onSample))
	s.schedule(s.clk.After(s.cfg.CaptureDuration, func() { s.startProcessing(false) }))
	s.publish()
}

func (s *Session) onSample() {
	s.samples = append(s.samples, s.mic.Float64()*100)
	s.publish()
}

func (s *Session) startProcessing(early bool) {
	s.enter(StageProcessing)
	s.m.recordCapture(len(s.samples), early)
	s.schedule(s.clk.After(s.cfg.ProcessingDelay, s.onProcessed))
	s.publish()
}

func (s *Session) onProcessed() {
	item := s.cat.At(s.index)
	out := s.rec.Classify(item)
	s.enter(StageResult)
	s.result = &out
	s.m.recordOutcome(out)
	s.logger.Info("attempt classified",
		slog.String("character", item.Character),
		slog.Bool("correct", out.IsCorrect),
		slog.String("error_kind", out.ErrorKind.String()),
		slog.String("heard", out.RecognizedLabel),
		slog.Bool("amplified", out.Amplified))
	s.publish()
}

func (s *Session) publish() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.State()
	for _, o := range s.observers {
		o.OnSnapshot(snap)
	}
}
