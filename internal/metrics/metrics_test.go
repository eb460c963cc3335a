package metrics

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFrame(t *testing.T) {
	r := New()
	r.ObserveFrame(10 * time.Millisecond)
	r.ObserveFrame(20 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.frames))
	assert.Equal(t, 1, testutil.CollectAndCount(r.frameSeconds))
}

func TestSetScene(t *testing.T) {
	r := New()
	r.SetScene(2820, 900, 14, 3700)

	assert.Equal(t, float64(2820), testutil.ToFloat64(r.voxels.WithLabelValues("castle")))
	assert.Equal(t, float64(900), testutil.ToFloat64(r.voxels.WithLabelValues("village")))
	assert.Equal(t, float64(14), testutil.ToFloat64(r.batches))
	assert.Equal(t, float64(3700), testutil.ToFloat64(r.instances))

	// Remounting overwrites rather than accumulates.
	r.SetScene(10, 0, 1, 10)
	assert.Equal(t, float64(10), testutil.ToFloat64(r.voxels.WithLabelValues("castle")))
}

func TestHandler(t *testing.T) {
	r := New()
	r.CountScreenshot()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "citadel_screenshots_total 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := New()
	r.ObserveFrame(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/metrics", ln.Addr())
	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.True(t, strings.Contains(body, "citadel_frames_total 1"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeBadAddr(t *testing.T) {
	err := New().Serve(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
