package srvenv

import (
	"context"
	"errors"

	artifactdb "github.com/go-sod/insight/internal/artifact/database"
	"github.com/go-sod/insight/internal/cache"
	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/database"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/unemployment"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

// SrvEnv holds everything loaded at startup. It is read-only afterwards.
type SrvEnv struct {
	database     *database.DB
	artifacts    *artifactdb.DB
	cache        cache.Cache
	carPrice     *carprice.Service
	sales        *sales.Service
	spam         *spam.Service
	iris         *iris.Service
	unemployment *unemployment.Service
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func (s *SrvEnv) Artifacts() *artifactdb.DB {
	return s.artifacts
}

func (s *SrvEnv) Cache() cache.Cache {
	return s.cache
}

func (s *SrvEnv) CarPrice() *carprice.Service {
	return s.carPrice
}

func (s *SrvEnv) Sales() *sales.Service {
	return s.sales
}

func (s *SrvEnv) Spam() *spam.Service {
	return s.spam
}

func (s *SrvEnv) Iris() *iris.Service {
	return s.iris
}

func (s *SrvEnv) Unemployment() *unemployment.Service {
	return s.unemployment
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		s.artifacts = artifactdb.New(db)
		return s
	}
}

func WithCache(c cache.Cache) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.cache = c
		return s
	}
}

func WithCarPrice(svc *carprice.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.carPrice = svc
		return s
	}
}

func WithSales(svc *sales.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.sales = svc
		return s
	}
}

func WithSpam(svc *spam.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.spam = svc
		return s
	}
}

func WithIris(svc *iris.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.iris = svc
		return s
	}
}

func WithUnemployment(svc *unemployment.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.unemployment = svc
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.database != nil {
		errs = append(errs, s.database.Close(ctx))
	}
	return errors.Join(errs...)
}
