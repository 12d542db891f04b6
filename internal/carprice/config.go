package carprice

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"INSIGHT_CARPRICE_REQUEST_TIMEOUT" default:"10s"`
	Artifact       string        `envconfig:"INSIGHT_CARPRICE_ARTIFACT" default:"models/carprice.json"`
}
