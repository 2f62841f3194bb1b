package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChromeRendererDisabledByConfig(t *testing.T) {
	cfg := newFetcherTestConfig()
	cfg.RenderMaxConcurrency = 0

	_, err := NewChromeRenderer(cfg, zap.NewNop())
	require.ErrorIs(t, err, ErrRendererDisabled)
}

func TestChromeRendererNilReceiver(t *testing.T) {
	var r *ChromeRenderer
	_, err := r.Fetch(context.Background(), "https://example.org/")
	require.ErrorIs(t, err, ErrRendererDisabled)
	require.NoError(t, r.Close(context.Background()))
}

func TestChromeRendererFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1 id="t">rendered</h1><script>document.getElementById("t").textContent = "hydrated";</script></body></html>`))
	}))
	defer server.Close()

	cfg := newFetcherTestConfig()
	cfg.RenderMaxConcurrency = 1
	cfg.RenderTimeout = 20 * time.Second

	renderer, err := NewChromeRenderer(cfg, zap.NewNop())
	if err != nil {
		t.Skipf("chromedp unavailable: %v", err)
	}
	defer renderer.Close(context.Background())

	body, err := renderer.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Contains(t, string(body), "hydrated", "the rendered DOM reflects script execution")
}
