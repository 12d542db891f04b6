package insight

import (
	"github.com/go-sod/insight/internal/cache"
	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/database"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/middleware"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/setup"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/unemployment"
)

var (
	_ setup.ComponentsConfigProvider   = (*Config)(nil)
	_ setup.DatabaseConfigProvider     = (*Config)(nil)
	_ setup.ManifestConfigProvider     = (*Config)(nil)
	_ setup.CacheConfigProvider        = (*Config)(nil)
	_ setup.CarPriceConfigProvider     = (*Config)(nil)
	_ setup.SalesConfigProvider        = (*Config)(nil)
	_ setup.SpamConfigProvider         = (*Config)(nil)
	_ setup.IrisConfigProvider         = (*Config)(nil)
	_ setup.UnemploymentConfigProvider = (*Config)(nil)
)

type Config struct {
	SrvAddr     string   `envconfig:"INSIGHT_ADDR" default:":8787"`
	GRPCAddr    string   `envconfig:"INSIGHT_GRPC_ADDR" default:":8788"`
	MetricsAddr string   `envconfig:"INSIGHT_METRICS_ADDR" default:":9090"`
	Manifest    string   `envconfig:"INSIGHT_MANIFEST"`
	Enabled     []string `envconfig:"INSIGHT_COMPONENTS" default:"carprice,sales,spam,iris,unemployment"`

	Middleware   middleware.Config
	Database     database.Config
	Cache        cache.Config
	CarPrice     carprice.Config
	Sales        sales.Config
	Spam         spam.Config
	Iris         iris.Config
	Unemployment unemployment.Config
}

func (c *Config) Components() []string {
	return c.Enabled
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) ManifestFile() string {
	return c.Manifest
}

func (c *Config) CacheConfig() *cache.Config {
	return &c.Cache
}

func (c *Config) CarPriceConfig() *carprice.Config {
	return &c.CarPrice
}

func (c *Config) SalesConfig() *sales.Config {
	return &c.Sales
}

func (c *Config) SpamConfig() *spam.Config {
	return &c.Spam
}

func (c *Config) IrisConfig() *iris.Config {
	return &c.Iris
}

func (c *Config) UnemploymentConfig() *unemployment.Config {
	return &c.Unemployment
}
