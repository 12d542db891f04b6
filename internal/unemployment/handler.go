package unemployment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-sod/insight/internal/chart"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/metric"
	"github.com/go-sod/insight/internal/records"
)

type emptyResponse struct {
	Message   string            `json:"message"`
	Selection records.Selection `json:"selection"`
}

// ParseSelection reads region, start and end query parameters. Regions may
// repeat or be comma separated. Absent parameters fall back to bounds.
func ParseSelection(q url.Values, bounds records.Selection) (records.Selection, error) {
	sel := bounds
	if values, ok := q["region"]; ok {
		sel.Regions = nil
		for _, v := range values {
			for _, r := range strings.Split(v, ",") {
				if r = strings.TrimSpace(r); r != "" {
					sel.Regions = append(sel.Regions, r)
				}
			}
		}
	}
	if v := q.Get("start"); v != "" {
		t, err := records.ParseDate(v)
		if err != nil {
			return records.Selection{}, fmt.Errorf("start: %w", err)
		}
		sel.Start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := records.ParseDate(v)
		if err != nil {
			return records.Selection{}, fmt.Errorf("end: %w", err)
		}
		sel.End = t
	}
	if !sel.Start.IsZero() && !sel.End.IsZero() && sel.End.Before(sel.Start) {
		return records.Selection{}, fmt.Errorf("end %s is before start %s",
			sel.End.Format(dateLayout), sel.Start.Format(dateLayout))
	}
	return sel, nil
}

type handlerKind int

const (
	kindSummary handlerKind = iota
	kindChart
	kindBounds
)

func NewHandler(cfg *Config, svc *Service) (http.Handler, error) {
	return newHandler(cfg, svc, kindSummary)
}

func NewChartHandler(cfg *Config, svc *Service) (http.Handler, error) {
	return newHandler(cfg, svc, kindChart)
}

func NewBoundsHandler(cfg *Config, svc *Service) (http.Handler, error) {
	return newHandler(cfg, svc, kindBounds)
}

func newHandler(cfg *Config, svc *Service, kind handlerKind) (http.Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("unemployment: service is not configured")
	}
	return &handler{cfg: cfg, svc: svc, kind: kind}, nil
}

type handler struct {
	cfg  *Config
	svc  *Service
	kind handlerKind
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if r.Method != http.MethodGet {
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
		return
	}
	if h.kind == kindBounds {
		httputil.RespJSON(ctx, w, http.StatusOK, h.svc.Bounds())
		return
	}

	sel, err := ParseSelection(r.URL.Query(), h.svc.Bounds())
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
		return
	}

	summary, err := h.svc.Summarize(ctx, sel)
	if errors.Is(err, records.ErrNoData) {
		metric.RecordPrediction(ctx, Component, "empty")
		httputil.RespJSON(ctx, w, http.StatusOK, emptyResponse{Message: records.ErrNoData.Error(), Selection: sel})
		return
	}
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "unemployment summary, %v"}`, err)
		return
	}
	metric.RecordPrediction(ctx, Component, "summary")

	if h.kind == kindChart {
		httputil.RespHTML(ctx, w, func(out io.Writer) error {
			return chart.Render(out, chart.RegionBar(summary.RegionAverages), chart.TrendLine(summary.Trend))
		})
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, summary)
}
