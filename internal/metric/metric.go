// Package metric records request and prediction statistics with OpenCensus
// and exposes them in Prometheus format.
package metric

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "insight"

var (
	KeyRoute     = tag.MustNewKey("route")
	KeyStatus    = tag.MustNewKey("status")
	KeyComponent = tag.MustNewKey("component")
	KeyOutcome   = tag.MustNewKey("outcome")

	MRequestLatency = stats.Float64("insight/request_latency", "HTTP request latency", stats.UnitMilliseconds)
	MPredictions    = stats.Int64("insight/predictions", "Predictions served per component", stats.UnitDimensionless)
)

var (
	RequestCountView = &view.View{
		Name:        "request_count",
		Measure:     MRequestLatency,
		Description: "Count of HTTP requests by route and status",
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyRoute, KeyStatus},
	}
	RequestLatencyView = &view.View{
		Name:        "request_latency_ms",
		Measure:     MRequestLatency,
		Description: "Distribution of HTTP request latency",
		Aggregation: view.Distribution(1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000),
		TagKeys:     []tag.Key{KeyRoute},
	}
	PredictionCountView = &view.View{
		Name:        "prediction_count",
		Measure:     MPredictions,
		Description: "Count of predictions by component and outcome",
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{KeyComponent, KeyOutcome},
	}
)

func Views() []*view.View {
	return []*view.View{RequestCountView, RequestLatencyView, PredictionCountView}
}

// Register registers the views. Registering the same views twice is a no-op.
func Register() error {
	return view.Register(Views()...)
}

// NewExporter registers the views and returns the /metrics handler.
func NewExporter() (http.Handler, error) {
	if err := Register(); err != nil {
		return nil, err
	}
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	return pe, nil
}

// ObserveRequest matches middleware.StatusObserver. Unmatched paths share a
// single route tag.
func ObserveRequest(r *http.Request, status int, elapsed time.Duration) {
	route := r.URL.Path
	if status == http.StatusNotFound {
		route = "unmatched"
	}
	_ = stats.RecordWithTags(r.Context(),
		[]tag.Mutator{tag.Upsert(KeyRoute, route), tag.Upsert(KeyStatus, strconv.Itoa(status))},
		MRequestLatency.M(float64(elapsed)/float64(time.Millisecond)),
	)
}

// RecordPrediction counts one prediction. outcome is the predicted label or
// "value" for regressors.
func RecordPrediction(ctx context.Context, component, outcome string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyComponent, component), tag.Upsert(KeyOutcome, outcome)},
		MPredictions.M(1),
	)
}
