// Package metrics exports HTTP server metrics through OpenTelemetry and the
// Prometheus exporter.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/unit"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

var (
	methodKey = attribute.Key("method")
	routeKey  = attribute.Key("route")
	statusKey = attribute.Key("status")
)

// NewExporter builds a cumulative Prometheus exporter. Its ServeHTTP is the
// /metrics endpoint and its MeterProvider feeds it.
func NewExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	return prometheus.New(config, c)
}

type Recorder struct {
	completed metric.Int64Counter
	duration  metric.Float64ValueRecorder
}

func NewRecorder(meter metric.Meter) *Recorder {
	m := metric.Must(meter)

	return &Recorder{
		completed: m.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
		),
		duration: m.NewFloat64ValueRecorder(
			"http/server/duration_ms",
			metric.WithDescription("Request latency, by HTTP method, route and response status"),
			metric.WithUnit(unit.Milliseconds),
		),
	}
}

// Middleware counts every request once the handler returns. Requests that
// matched no route are labelled with an empty route so that unknown paths
// cannot blow up the label cardinality.
func (rec *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		labels := []attribute.KeyValue{
			methodKey.String(r.Method),
			routeKey.String(route),
			statusKey.String(strconv.Itoa(status)),
		}
		rec.completed.Add(r.Context(), 1, labels...)
		rec.duration.Record(r.Context(), float64(time.Since(start))/float64(time.Millisecond), labels...)
	})
}
