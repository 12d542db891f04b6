package httputil

import (
	"fmt"
	"time"
)

// HTTPClientConfig configures the client used by the command line tool.
type HTTPClientConfig struct {
	Addr        string        `envconfig:"INSIGHT_CLIENT_ADDR" default:"127.0.0.1:8787"`
	Timeout     time.Duration `envconfig:"INSIGHT_CLIENT_TIMEOUT" default:"30s"`
	BearerToken string        `envconfig:"INSIGHT_CLIENT_BEARER_TOKEN"`
	BasicAuth   *BasicAuth    `ignored:"true"`
}

func (c *HTTPClientConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("client address must be configured")
	}
	if c.BasicAuth != nil && len(c.BearerToken) > 0 {
		return fmt.Errorf("at most one of basic_auth & bearer_token must be configured")
	}
	if c.BasicAuth != nil && c.BasicAuth.Username == "" {
		return fmt.Errorf("basic_auth requires a username")
	}
	return nil
}

type BasicAuth struct {
	Username string
	Password string
}
