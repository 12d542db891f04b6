package unemployment

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"INSIGHT_UNEMPLOYMENT_REQUEST_TIMEOUT" default:"30s"`
	Files          []string      `envconfig:"INSIGHT_UNEMPLOYMENT_FILES" default:"data/Unemployment in India.csv,data/Unemployment_Rate_upto_11_2020.csv"`
	PreviewLen     int           `envconfig:"INSIGHT_UNEMPLOYMENT_PREVIEW_LEN" default:"20"`
}
