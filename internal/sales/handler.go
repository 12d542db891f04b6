package sales

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/metric"
)

type request struct {
	TV        float64 `json:"tv"`
	Radio     float64 `json:"radio"`
	Newspaper float64 `json:"newspaper"`
}

func NewHandler(cfg *Config, svc *Service) (http.Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("sales: service is not configured")
	}
	return &handler{cfg: cfg, svc: svc}, nil
}

type handler struct {
	cfg *Config
	svc *Service
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if !httputil.CheckJSONRequest(ctx, w, r, http.MethodPost) {
		return
	}

	defer r.Body.Close()

	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	estimate, err := h.svc.Predict(feature.SalesInput{TV: req.TV, Radio: req.Radio, Newspaper: req.Newspaper})
	if err != nil {
		if feature.IsValidation(err) {
			httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "sales prediction, %v"}`, err)
		return
	}

	metric.RecordPrediction(ctx, Component, "value")
	httputil.RespJSON(ctx, w, http.StatusOK, estimate)
}
