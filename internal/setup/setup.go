package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/cache"
	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/database"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/records"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/srvenv"
	"github.com/go-sod/insight/internal/unemployment"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

type ComponentsConfigProvider interface {
	Components() []string
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type ManifestConfigProvider interface {
	ManifestFile() string
}

type CacheConfigProvider interface {
	CacheConfig() *cache.Config
}

type CarPriceConfigProvider interface {
	CarPriceConfig() *carprice.Config
}

type SalesConfigProvider interface {
	SalesConfig() *sales.Config
}

type SpamConfigProvider interface {
	SpamConfig() *spam.Config
}

type IrisConfigProvider interface {
	IrisConfig() *iris.Config
}

type UnemploymentConfigProvider interface {
	UnemploymentConfig() *unemployment.Config
}

// Setup reads the environment into config and loads every enabled
// component. Any missing or malformed resource fails the whole setup.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	return SetupWith(ctx, config)
}

// SetupWith is Setup for an already populated config.
func SetupWith(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	env := srvenv.New()
	enabled, err := enabledSet(config)
	if err != nil {
		return nil, err
	}

	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled() {
		logger.Info("Configuring artifact store")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open artifact store: %w", err)
		}
		env = srvenv.WithDatabase(db)(env)
	}

	resolver, err := provideResolverFor(ctx, config, env)
	if err != nil {
		_ = env.Close(ctx)
		return nil, err
	}

	if cacheConfigProvider, ok := config.(CacheConfigProvider); ok && enabled[unemployment.Component] {
		logger.Infof("Configuring %s cache", cacheConfigProvider.CacheConfig().Backend)
		c, err := cache.New(ctx, cacheConfigProvider.CacheConfig())
		if err != nil {
			_ = env.Close(ctx)
			return nil, fmt.Errorf("unable to configure cache: %w", err)
		}
		env = srvenv.WithCache(c)(env)
	}

	serverEnvOpts := make([]srvenv.Option, 5)
	errGrp, grpCtx := errgroup.WithContext(ctx)
	if p, ok := config.(CarPriceConfigProvider); ok && enabled[carprice.Component] {
		errGrp.Go(func() error {
			svc, err := ProvideCarPriceFor(grpCtx, p.CarPriceConfig(), resolver)
			if err != nil {
				return err
			}
			serverEnvOpts[0] = srvenv.WithCarPrice(svc)
			return nil
		})
	}
	if p, ok := config.(SalesConfigProvider); ok && enabled[sales.Component] {
		errGrp.Go(func() error {
			svc, err := ProvideSalesFor(grpCtx, p.SalesConfig(), resolver)
			if err != nil {
				return err
			}
			serverEnvOpts[1] = srvenv.WithSales(svc)
			return nil
		})
	}
	if p, ok := config.(SpamConfigProvider); ok && enabled[spam.Component] {
		errGrp.Go(func() error {
			svc, err := ProvideSpamFor(grpCtx, p.SpamConfig(), resolver)
			if err != nil {
				return err
			}
			serverEnvOpts[2] = srvenv.WithSpam(svc)
			return nil
		})
	}
	if p, ok := config.(IrisConfigProvider); ok && enabled[iris.Component] {
		errGrp.Go(func() error {
			svc, err := ProvideIrisFor(grpCtx, p.IrisConfig())
			if err != nil {
				return err
			}
			serverEnvOpts[3] = srvenv.WithIris(svc)
			return nil
		})
	}
	if p, ok := config.(UnemploymentConfigProvider); ok && enabled[unemployment.Component] {
		c := env.Cache()
		errGrp.Go(func() error {
			svc, err := ProvideUnemploymentFor(grpCtx, p.UnemploymentConfig(), c)
			if err != nil {
				return err
			}
			serverEnvOpts[4] = srvenv.WithUnemployment(svc)
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		_ = env.Close(ctx)
		return nil, err
	}

	for _, opt := range serverEnvOpts {
		if opt != nil {
			env = opt(env)
		}
	}
	return env, nil
}

// provideResolverFor reads the optional manifest. Store names resolve only
// when the artifact store is open.
func provideResolverFor(ctx context.Context, config interface{}, env *srvenv.SrvEnv) (*artifact.Resolver, error) {
	var manifest *artifact.Manifest
	if p, ok := config.(ManifestConfigProvider); ok && p.ManifestFile() != "" {
		logging.FromContext(ctx).Infof("Reading artifact manifest %s", p.ManifestFile())
		m, err := artifact.LoadManifest(p.ManifestFile())
		if err != nil {
			return nil, err
		}
		manifest = m
	}
	if env.Artifacts() == nil {
		return artifact.NewResolver(manifest, nil), nil
	}
	return artifact.NewResolver(manifest, env.Artifacts()), nil
}

// enabledSet lists the components to load; without a provider all are.
// Names outside the known components are an error.
func enabledSet(config interface{}) (map[string]bool, error) {
	known := []string{carprice.Component, sales.Component, spam.Component, iris.Component, unemployment.Component}
	names := known
	if p, ok := config.(ComponentsConfigProvider); ok {
		names = p.Components()
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		found := false
		for _, k := range known {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown component %q, expected any of %v", n, known)
		}
		out[n] = true
	}
	return out, nil
}

func ProvideCarPriceFor(ctx context.Context, cfg *carprice.Config, resolver *artifact.Resolver) (*carprice.Service, error) {
	a, err := resolver.Resolve(ctx, carprice.Component, cfg.Artifact)
	if err != nil {
		return nil, err
	}
	model, err := ProvideRegressorFor(a)
	if err != nil {
		return nil, fmt.Errorf("car price model: %w", err)
	}
	svc, err := carprice.NewService(model)
	if err != nil {
		return nil, fmt.Errorf("car price model %s: %w", a.Name, err)
	}
	logging.FromContext(ctx).Infof("car price model %s %s ready", a.Name, a.Version)
	return svc, nil
}

func ProvideSalesFor(ctx context.Context, cfg *sales.Config, resolver *artifact.Resolver) (*sales.Service, error) {
	a, err := resolver.Resolve(ctx, sales.Component, cfg.Artifact)
	if err != nil {
		return nil, err
	}
	model, err := ProvideRegressorFor(a)
	if err != nil {
		return nil, fmt.Errorf("sales model: %w", err)
	}
	svc, err := sales.NewService(model)
	if err != nil {
		return nil, fmt.Errorf("sales model %s: %w", a.Name, err)
	}
	logging.FromContext(ctx).Infof("sales model %s %s ready", a.Name, a.Version)
	return svc, nil
}

func ProvideSpamFor(ctx context.Context, cfg *spam.Config, resolver *artifact.Resolver) (*spam.Service, error) {
	va, err := resolver.Resolve(ctx, "spam_vectorizer", cfg.VectorizerArtifact)
	if err != nil {
		return nil, err
	}
	ca, err := resolver.Resolve(ctx, "spam_classifier", cfg.ClassifierArtifact)
	if err != nil {
		return nil, err
	}
	model, err := ProvideTextModelFor(va, ca)
	if err != nil {
		return nil, fmt.Errorf("spam model: %w", err)
	}
	svc, err := spam.NewService(model, cfg.SpamLabel)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Infof("spam model %s %s ready", ca.Name, ca.Version)
	return svc, nil
}

func ProvideIrisFor(ctx context.Context, cfg *iris.Config) (*iris.Service, error) {
	ds, err := iris.LoadDataset(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	svc, err := iris.Train(cfg, ds)
	if err != nil {
		return nil, err
	}
	summary := svc.Summary()
	logging.FromContext(ctx).Infof(
		"iris classifier k=%d trained on %d samples, test accuracy %.4f on %d samples",
		summary.K, summary.TrainSize, summary.Accuracy, summary.TestSize,
	)
	return svc, nil
}

func ProvideUnemploymentFor(ctx context.Context, cfg *unemployment.Config, c cache.Cache) (*unemployment.Service, error) {
	rows, err := records.Load(cfg.Files...)
	if err != nil {
		return nil, err
	}
	svc, err := unemployment.NewService(rows, c, cfg.PreviewLen)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Infof("unemployment dashboard loaded %d rows from %d files", len(rows), len(cfg.Files))
	return svc, nil
}
