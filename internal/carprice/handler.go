package carprice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/metric"
)

type request struct {
	Year         int     `json:"year"`
	PresentPrice float64 `json:"presentPrice"`
	KmsDriven    float64 `json:"kmsDriven"`
	Mileage      float64 `json:"mileage"`
	FuelType     string  `json:"fuelType"`
	SellerType   string  `json:"sellerType"`
	Transmission string  `json:"transmission"`
	Owner        string  `json:"owner"`
}

func NewHandler(cfg *Config, svc *Service) (http.Handler, error) {
	if svc == nil {
		return nil, fmt.Errorf("carprice: service is not configured")
	}
	return &handler{
		cfg: cfg,
		svc: svc,
	}, nil
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

	estimate, err := h.svc.Predict(feature.CarInput{
		Year:         req.Year,
		PresentPrice: req.PresentPrice,
		KmsDriven:    req.KmsDriven,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		SellerType:   req.SellerType,
		Transmission: req.Transmission,
		Owner:        req.Owner,
	})
	if err != nil {
		if feature.IsValidation(err) {
			httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "car price prediction, %v"}`, err)
		return
	}

	metric.RecordPrediction(ctx, Component, "value")
	logger.Debugf("car price estimate %s for %v", estimate.Formatted, estimate.Vector)
	httputil.RespJSON(ctx, w, http.StatusOK, estimate)
}

// HandleOptions serves the categorical labels for building input forms.
func HandleOptions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.RespMethodNotAllowed(r.Context(), w, r.Method)
			return
		}
		httputil.RespJSON(r.Context(), w, http.StatusOK, Options())
	})
}
