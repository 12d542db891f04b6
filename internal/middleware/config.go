package middleware

type Config struct {
	RateLimit   float64 `envconfig:"INSIGHT_RATE_LIMIT" default:"50"`
	RateBurst   int     `envconfig:"INSIGHT_RATE_BURST" default:"100"`
	ServiceName string  `envconfig:"INSIGHT_SERVICE_NAME" default:"insight"`
}
