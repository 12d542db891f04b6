package sales

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"INSIGHT_SALES_REQUEST_TIMEOUT" default:"10s"`
	Artifact       string        `envconfig:"INSIGHT_SALES_ARTIFACT" default:"models/sales.json"`
}
