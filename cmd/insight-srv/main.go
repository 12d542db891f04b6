package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/insight/internal/buildinfo"
	"github.com/go-sod/insight/internal/carprice"
	insight "github.com/go-sod/insight/internal/config"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/metric"
	"github.com/go-sod/insight/internal/middleware"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/server"
	"github.com/go-sod/insight/internal/setup"
	"github.com/go-sod/insight/internal/shutdown"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/srvenv"
	"github.com/go-sod/insight/internal/unemployment"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	defer done()
	logger := logging.DefaultLogger()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := insight.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			logger.Errorf("env.Close: %v", err)
		}
	}()

	mux, err := newMux(ctx, &config, env)
	if err != nil {
		return err
	}
	handler := middleware.Chain(mux,
		middleware.Recover(logger),
		middleware.Logger(logger, metric.ObserveRequest),
		middleware.OTel(config.Middleware.ServiceName),
	)

	metricsHandler, err := metric.NewExporter()
	if err != nil {
		return fmt.Errorf("metric.NewExporter: %w", err)
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	metricsSrv, err := server.New(config.MetricsAddr)
	if err != nil {
		return fmt.Errorf("server.New metrics: %w", err)
	}
	grpcSrv, err := server.New(config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("server.New grpc: %w", err)
	}
	health, healthStatus := server.NewHealthGRPC(config.Middleware.ServiceName)

	logger.Infof("serving http on %s, grpc on %s, metrics on %s", srv.Addr(), grpcSrv.Addr(), metricsSrv.Addr())

	errGrp, grpCtx := errgroup.WithContext(ctx)
	errGrp.Go(func() error {
		return srv.ServeHTTPHandler(grpCtx, handler)
	})
	errGrp.Go(func() error {
		return metricsSrv.ServeHTTPHandler(grpCtx, metricsMux)
	})
	errGrp.Go(func() error {
		return grpcSrv.ServeGRPC(grpCtx, health)
	})
	errGrp.Go(func() error {
		server.ShutdownHealthOnDone(grpCtx, healthStatus)
		return nil
	})
	return errGrp.Wait()
}

func newMux(ctx context.Context, config *insight.Config, env *srvenv.SrvEnv) (*http.ServeMux, error) {
	limit := middleware.RateLimit(config.Middleware.RateLimit, config.Middleware.RateBurst)
	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))

	if svc := env.CarPrice(); svc != nil {
		h, err := carprice.NewHandler(&config.CarPrice, svc)
		if err != nil {
			return nil, fmt.Errorf("carprice.NewHandler: %w", err)
		}
		mux.Handle("/carprice", limit(h))
		mux.Handle("/carprice/options", carprice.HandleOptions())
	}
	if svc := env.Sales(); svc != nil {
		h, err := sales.NewHandler(&config.Sales, svc)
		if err != nil {
			return nil, fmt.Errorf("sales.NewHandler: %w", err)
		}
		mux.Handle("/sales", limit(h))
	}
	if svc := env.Spam(); svc != nil {
		h, err := spam.NewHandler(&config.Spam, svc)
		if err != nil {
			return nil, fmt.Errorf("spam.NewHandler: %w", err)
		}
		mux.Handle("/spam", limit(h))
	}
	if svc := env.Iris(); svc != nil {
		h, err := iris.NewHandler(&config.Iris, svc)
		if err != nil {
			return nil, fmt.Errorf("iris.NewHandler: %w", err)
		}
		mux.Handle("/iris", limit(h))
	}
	if svc := env.Unemployment(); svc != nil {
		h, err := unemployment.NewHandler(&config.Unemployment, svc)
		if err != nil {
			return nil, fmt.Errorf("unemployment.NewHandler: %w", err)
		}
		chartHandler, err := unemployment.NewChartHandler(&config.Unemployment, svc)
		if err != nil {
			return nil, fmt.Errorf("unemployment.NewChartHandler: %w", err)
		}
		boundsHandler, err := unemployment.NewBoundsHandler(&config.Unemployment, svc)
		if err != nil {
			return nil, fmt.Errorf("unemployment.NewBoundsHandler: %w", err)
		}
		mux.Handle("/unemployment", limit(h))
		mux.Handle("/unemployment/chart", limit(chartHandler))
		mux.Handle("/unemployment/bounds", boundsHandler)
	}
	return mux, nil
}
