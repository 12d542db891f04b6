package iris

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-sod/insight/internal/chart"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/metric"
)

const formatHTML = "html"

type request struct {
	SepalLength float64 `json:"sepalLength"`
	SepalWidth  float64 `json:"sepalWidth"`
	PetalLength float64 `json:"petalLength"`
	PetalWidth  float64 `json:"petalWidth"`
}

type response struct {
	Species       string      `json:"species"`
	Confidence    float64     `json:"confidence"`
	Probabilities interface{} `json:"probabilities"`
	Accuracy      float64     `json:"accuracy"`
}

func NewHandler(cfg *Config, svc *Service) (http.Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("iris: service is not configured")
	}
	return &handler{cfg: cfg, svc: svc}, nil
}

type handler struct {
	cfg *Config
	svc *Service
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if r.Method == http.MethodGet {
		httputil.RespJSON(ctx, w, http.StatusOK, h.svc.Summary())
		return
	}
	if !httputil.CheckJSONRequest(ctx, w, r, http.MethodPost) {
		return
	}

	defer r.Body.Close()

	var req request
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	c, err := h.svc.Classify(feature.IrisInput{
		SepalLength: req.SepalLength,
		SepalWidth:  req.SepalWidth,
		PetalLength: req.PetalLength,
		PetalWidth:  req.PetalWidth,
	})
	if err != nil {
		if feature.IsValidation(err) {
			httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "iris classification, %v"}`, err)
		return
	}
	metric.RecordPrediction(ctx, Component, c.Label)

	if r.URL.Query().Get("format") == formatHTML {
		httputil.RespHTML(ctx, w, func(out io.Writer) error {
			return chart.Render(out, chart.ProbabilityBar("Iris species probabilities", c))
		})
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, response{
		Species:       c.Label,
		Confidence:    c.Confidence,
		Probabilities: c.Probabilities,
		Accuracy:      h.svc.Summary().Accuracy,
	})
}
