package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onemax/internal/evo"
)

// PrometheusObserver exports the latest generation statistics and run
// outcomes as Prometheus metrics.
type PrometheusObserver struct {
	generation  prometheus.Gauge
	best        prometheus.Gauge
	worst       prometheus.Gauge
	average     prometheus.Gauge
	generations prometheus.Counter
	outcomes    *prometheus.CounterVec
}

func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		generation:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "onemax_generation", Help: "Number of the last completed generation."}),
		best:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "onemax_best_fitness", Help: "Best fitness of the last completed generation."}),
		worst:       prometheus.NewGauge(prometheus.GaugeOpts{Name: "onemax_worst_fitness", Help: "Worst fitness of the last completed generation."}),
		average:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "onemax_average_fitness", Help: "Average fitness of the last completed generation."}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{Name: "onemax_generations_total", Help: "Completed generations."}),
		outcomes:    prometheus.NewCounterVec(prometheus.CounterOpts{Name: "onemax_runs_terminated_total", Help: "Finished runs by terminal reason."}, []string{"reason"}),
	}
	for _, c := range []prometheus.Collector{o.generation, o.best, o.worst, o.average, o.generations, o.outcomes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) ObserveGeneration(record evo.GenerationRecord) {
	o.generation.Set(float64(record.Generation))
	o.best.Set(float64(record.Best))
	o.worst.Set(float64(record.Worst))
	o.average.Set(record.Average)
	o.generations.Inc()
}

func (o *PrometheusObserver) ObserveOutcome(outcome evo.Outcome) {
	o.outcomes.WithLabelValues(outcome.Reason.String()).Inc()
}

// NewMetricsHandler exposes /metrics for gatherer and a /healthz probe.
func NewMetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return r
}

// ServeMetrics serves handler on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}
