package telemetry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandlerExportsCounters(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, "pinyin-test", "dev", discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })
	require.NotNil(t, p.Handler())

	counter, err := p.Meter("test").Int64Counter("pinyin.practice.attempts")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pinyin_practice_attempts")
}

func TestSetupTwice(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		p, err := Setup(ctx, "pinyin-test", "dev", discard())
		require.NoError(t, err)
		require.NotNil(t, p.Handler())
		require.NoError(t, p.Shutdown(ctx))
	}
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := Setup(ctx, "pinyin-test", "dev", discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	addr, err := p.Serve(ctx, "127.0.0.1:0", discard())
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp2, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}
