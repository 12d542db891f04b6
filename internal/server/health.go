package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-sod/insight/internal/buildinfo"
)

// HandleHealth answers liveness probes. Once ctx is done it reports 503 so
// load balancers drain the instance during shutdown.
func HandleHealth(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		select {
		case <-ctx.Done():
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprint(w, `{"status": "shutting down"}`)
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintf(w, `{"status": "ok", "version": %q}`, buildinfo.Info.Tag())
		}
	})
}
