// Package metrics exports frame timing and scene size to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-citadel/internal/logger"
)

const namespace = "citadel"

// Recorder holds the diorama metrics in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	frameSeconds prometheus.Histogram
	frames       prometheus.Counter
	screenshots  prometheus.Counter
	voxels       *prometheus.GaugeVec
	batches      prometheus.Gauge
	instances    prometheus.Gauge
}

// New creates a recorder with Go runtime collectors registered alongside.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Wall time spent producing one frame.",
			Buckets:   []float64{.002, .004, .008, .0167, .025, .0333, .05, .1, .25},
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames presented since mount.",
		}),
		screenshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screenshots_total",
			Help:      "Screenshots written to disk.",
		}),
		voxels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "voxels",
			Help:      "Voxels in the mounted diorama by group.",
		}, []string{"group"}),
		batches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draw_batches",
			Help:      "Draw batches in the mounted scene.",
		}),
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances",
			Help:      "Instanced voxel draws in the mounted scene.",
		}),
	}
	r.registry.MustRegister(
		r.frameSeconds, r.frames, r.screenshots,
		r.voxels, r.batches, r.instances,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveFrame records one presented frame.
func (r *Recorder) ObserveFrame(d time.Duration) {
	r.frameSeconds.Observe(d.Seconds())
	r.frames.Inc()
}

// CountScreenshot records one saved screenshot.
func (r *Recorder) CountScreenshot() {
	r.screenshots.Inc()
}

// SetScene publishes the size of a freshly mounted scene.
func (r *Recorder) SetScene(castle, village, batches, instances int) {
	r.voxels.WithLabelValues("castle").Set(float64(castle))
	r.voxels.WithLabelValues("village").Set(float64(village))
	r.batches.Set(float64(batches))
	r.instances.Set(float64(instances))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return r.serve(ctx, ln)
}

func (r *Recorder) serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}
