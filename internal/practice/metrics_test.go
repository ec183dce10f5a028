package practice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/abhisek/pinyin/internal/recognizer"
)

func collect(t *testing.T, reader sdkmetric.Reader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestSessionMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	f := newFixture(t, DefaultConfig(), WithMeter(provider.Meter("test")))
	f.rec.Push(
		recognizer.Outcome{RecognizedLabel: "媽", IsCorrect: true, Amplified: true},
		recognizer.Outcome{RecognizedLabel: "麻", ErrorKind: recognizer.ErrorInitial},
	)

	f.toResult(t)

	f.s.Retry()
	f.clk.Advance(3*time.Second + 300*time.Millisecond)
	f.s.Stop()
	f.clk.Advance(time.Second)

	metrics := collect(t, reader)

	attempts, ok := metrics["pinyin.practice.attempts"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "attempts counter missing")
	byKind := map[string]int64{}
	for _, dp := range attempts.DataPoints {
		kind, _ := dp.Attributes.Value(attribute.Key("error_kind"))
		byKind[kind.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"none": 1, "initial": 1}, byKind)

	amplified, ok := metrics["pinyin.practice.amplified"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, amplified.DataPoints, 1)
	assert.Equal(t, int64(1), amplified.DataPoints[0].Value)

	stopped, ok := metrics["pinyin.practice.stopped_early"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, stopped.DataPoints, 1)
	assert.Equal(t, int64(1), stopped.DataPoints[0].Value)

	samples, ok := metrics["pinyin.practice.capture.samples"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, samples.DataPoints, 1)
	assert.Equal(t, uint64(2), samples.DataPoints[0].Count)
	assert.Equal(t, int64(20+3), samples.DataPoints[0].Sum)
}
