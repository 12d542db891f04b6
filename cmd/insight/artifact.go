package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-sod/insight/internal/artifact"
	artifactdb "github.com/go-sod/insight/internal/artifact/database"
	"github.com/go-sod/insight/internal/database"
	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
)

func openStore(ctx context.Context, fs *flag.FlagSet, args []string, readOnly bool) (*database.DB, *artifactdb.DB, error) {
	var cfg database.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	file := fs.String("db", cfg.FileName, "artifact store file")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if *file == "" {
		return nil, nil, fmt.Errorf("artifact store file is not set, use -db or INSIGHT_DB_FILE")
	}
	cfg.FileName = *file
	cfg.ReadOnly = readOnly
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 5 * time.Second
	}
	db, err := database.NewFromEnv(ctx, &cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, artifactdb.New(db), nil
}

func runArtifact(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return flag.ErrHelp
	}
	fs := flag.NewFlagSet("artifact "+args[0], flag.ContinueOnError)
	switch args[0] {
	case "put":
		return artifactPut(ctx, fs, args[1:], out)
	case "list":
		return artifactList(ctx, fs, args[1:], out)
	case "inspect":
		return artifactInspect(ctx, fs, args[1:], out)
	case "delete":
		return artifactDelete(ctx, fs, args[1:], out)
	default:
		return fmt.Errorf("unknown artifact command %q", args[0])
	}
}

// artifactPut stores either a ready envelope (-file) or wraps a bare payload
// (-payload) with -name, -kind and -version.
func artifactPut(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	envelope := fs.String("file", "", "artifact envelope file")
	payload := fs.String("payload", "", "bare payload file")
	name := fs.String("name", "", "artifact name, overrides the envelope")
	kind := fs.String("kind", "", "artifact kind for -payload")
	version := fs.String("version", "v1", "artifact version for -payload")
	db, store, err := openStore(ctx, fs, args, false)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	var a artifact.Artifact
	switch {
	case *envelope != "":
		if a, err = artifact.ReadFile(*envelope); err != nil {
			return err
		}
		if *name != "" {
			a.Name = *name
		}
	case *payload != "":
		if *name == "" || *kind == "" {
			return fmt.Errorf("-payload requires -name and -kind")
		}
		b, err := os.ReadFile(*payload)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		if a, err = artifact.New(*name, artifact.Kind(*kind), *version, b); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of -file or -payload is required")
	}

	if err := store.Store(ctx, a); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "stored %s %s (%s) as %s\n", a.Name, a.Version, a.Kind, a.ID)
	return err
}

func artifactList(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	all := fs.Bool("all", false, "list every version")
	db, store, err := openStore(ctx, fs, args, true)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	names, err := store.Names()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tKIND\tVERSION\tCREATED\tID")
	for _, name := range names {
		var list []artifact.Artifact
		if *all {
			if list, err = store.Versions(ctx, name); err != nil {
				return err
			}
		} else {
			a, err := store.Get(ctx, name)
			if err != nil {
				return err
			}
			list = []artifact.Artifact{a}
		}
		for _, a := range list {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Version, a.CreatedAt.Format(time.RFC3339), a.ID)
		}
	}
	return tw.Flush()
}

func artifactInspect(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	name := fs.String("name", "", "artifact name")
	db, store, err := openStore(ctx, fs, args, true)
	if err != nil {
		return err
	}
	defer db.Close(ctx)
	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	a, err := store.Get(ctx, *name)
	if err != nil {
		return err
	}
	verifyErr := a.Verify()
	payload := a.Payload
	a.Payload = nil

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	dumper.Fdump(out, a)
	if verifyErr != nil {
		_, _ = fmt.Fprintf(out, "checksum: %v\n", verifyErr)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	_, err = fmt.Fprintf(out, "payload (%d bytes):\n%s\n", len(payload), pretty.String())
	return err
}

func artifactDelete(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	name := fs.String("name", "", "artifact name")
	db, store, err := openStore(ctx, fs, args, false)
	if err != nil {
		return err
	}
	defer db.Close(ctx)
	if *name == "" {
		return fmt.Errorf("-name is required")
	}
	if err := store.Delete(ctx, *name); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "deleted %s\n", *name)
	return err
}
