package practice

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/abhisek/pinyin/internal/recognizer"
)

const meterName = "github.com/abhisek/pinyin/practice"

type instruments struct {
	attempts  metric.Int64Counter
	amplified metric.Int64Counter
	stopped   metric.Int64Counter
	samples   metric.Int64Histogram
}

func newInstruments(meter metric.Meter, logger *slog.Logger) *instruments {
	if meter == nil {
		return nil
	}
	attempts, err := meter.Int64Counter("pinyin.practice.attempts",
		metric.WithDescription("Classified attempts by outcome and error kind"))
	if err != nil {
		logger.Warn("practice metrics disabled", slog.String("error", err.Error()))
		return nil
	}
	amplified, err := meter.Int64Counter("pinyin.practice.amplified",
		metric.WithDescription("Attempts whose input had to be amplified"))
	if err != nil {
		logger.Warn("practice metrics disabled", slog.String("error", err.Error()))
		return nil
	}
	stopped, err := meter.Int64Counter("pinyin.practice.stopped_early",
		metric.WithDescription("Captures ended by the learner before the capture window"))
	if err != nil {
		logger.Warn("practice metrics disabled", slog.String("error", err.Error()))
		return nil
	}
	samples, err := meter.Int64Histogram("pinyin.practice.capture.samples",
		metric.WithDescription("Mic level samples collected per capture"),
		metric.WithExplicitBucketBoundaries(0, 5, 10, 15, 20, 25, 30, 40))
	if err != nil {
		logger.Warn("practice metrics disabled", slog.String("error", err.Error()))
		return nil
	}
	return &instruments{attempts: attempts, amplified: amplified, stopped: stopped, samples: samples}
}

func (m *instruments) recordCapture(n int, early bool) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.samples.Record(ctx, int64(n))
	if early {
		m.stopped.Add(ctx, 1)
	}
}

func (m *instruments) recordOutcome(out recognizer.Outcome) {
	if m == nil {
		return
	}
	ctx := context.Background()
	outcome := "incorrect"
	if out.IsCorrect {
		outcome = "correct"
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("error_kind", out.ErrorKind.String()),
	))
	if out.Amplified {
		m.amplified.Add(ctx, 1)
	}
}
