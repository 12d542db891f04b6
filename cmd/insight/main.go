package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-sod/insight/internal/buildinfo"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/logging"
	"github.com/go-sod/insight/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

const usage = `usage: insight <command> [flags]

commands:
  artifact put|list|inspect|delete   manage the artifact store
  predict carprice|sales|spam|iris   ask a running server for a prediction
  dashboard                          print the unemployment summary
  health                             check a running server
  version                            print build information
`

func main() {
	ctx, done := shutdown.New()
	defer done()
	logger := logging.DefaultLogger()
	ctx = logging.WithLogger(ctx, logger)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprint(os.Stderr, usage)
			done()
			os.Exit(2)
		}
		done()
		logger.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return flag.ErrHelp
	}
	switch args[0] {
	case "artifact":
		return runArtifact(ctx, args[1:], out)
	case "predict":
		return runPredict(ctx, args[1:], out)
	case "dashboard":
		return runDashboard(ctx, args[1:], out)
	case "health":
		return runHealth(ctx, args[1:], out)
	case "version":
		_, err := fmt.Fprintf(out, "%s: %s, %s\n", buildinfo.Info.Name(), buildinfo.Info.Time(), buildinfo.Info.Tag())
		return err
	case "help", "-h", "--help":
		return flag.ErrHelp
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// clientConfig reads INSIGHT_CLIENT_* and lets flags override them.
func clientConfig(fs *flag.FlagSet) (func() (httputil.HTTPClientConfig, error), error) {
	var cfg httputil.HTTPClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	addr := fs.String("addr", cfg.Addr, "server address host:port")
	token := fs.String("token", cfg.BearerToken, "bearer token")
	user := fs.String("user", "", "basic auth user")
	password := fs.String("password", "", "basic auth password")
	timeout := fs.Duration("timeout", cfg.Timeout, "request timeout")
	return func() (httputil.HTTPClientConfig, error) {
		cfg.Addr = *addr
		cfg.BearerToken = *token
		cfg.Timeout = *timeout
		if *user != "" {
			cfg.BasicAuth = &httputil.BasicAuth{Username: *user, Password: *password}
		}
		return cfg, cfg.Validate()
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
