package spam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/metric"
	"github.com/go-sod/insight/internal/predictor/text"
)

const warningEmpty = `{"warning": "please enter an email message"}`

type request struct {
	Text string `json:"text"`
}

func NewHandler(cfg *Config, svc *Service) (http.Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("spam: service is not configured")
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
	logger := logging.FromContext(ctx)

	if !httputil.CheckJSONRequest(ctx, w, r, http.MethodPost) {
		return
	}

	defer r.Body.Close()

	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		httputil.RespBadRequest(ctx, w, warningEmpty)
		return
	}
	if h.cfg.MaxTextLen > 0 && len(req.Text) > h.cfg.MaxTextLen {
		httputil.RespBadRequest(ctx, w, `{"error": "text is too long, max allowed len is %d"}`, h.cfg.MaxTextLen)
		return
	}

	verdict, err := h.svc.Check(req.Text)
	if err != nil {
		if errors.Is(err, text.ErrEmptyText) {
			httputil.RespBadRequest(ctx, w, warningEmpty)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "spam classification, %v"}`, err)
		return
	}

	metric.RecordPrediction(ctx, Component, verdict.Verdict)
	logger.Debugf("spam check: %s with confidence %.3f", verdict.Verdict, verdict.Confidence)
	httputil.RespJSON(ctx, w, http.StatusOK, verdict)
}
