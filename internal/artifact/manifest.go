package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-sod/insight/internal/logging"
)

// Source points at one artifact, either a file or a name in the store.
type Source struct {
	File string `toml:"file"`
	Name string `toml:"name"`
}

// Manifest overrides where each component's artifacts come from, e.g.
//
//	[artifacts.carprice]
//	name = "carprice"
//
//	[artifacts.spam_vectorizer]
//	file = "/models/vectorizer.json"
type Manifest struct {
	Artifacts map[string]Source `toml:"artifacts"`
}

func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}

// Getter fetches the latest stored artifact by name.
type Getter interface {
	Get(ctx context.Context, name string) (Artifact, error)
}

// Resolver finds the artifact of a component: a manifest entry wins over the
// component's default file.
type Resolver struct {
	manifest *Manifest
	store    Getter
}

func NewResolver(manifest *Manifest, store Getter) *Resolver {
	return &Resolver{manifest: manifest, store: store}
}

func (r *Resolver) Resolve(ctx context.Context, component, defaultFile string) (Artifact, error) {
	logger := logging.FromContext(ctx)
	src := Source{File: defaultFile}
	if r != nil && r.manifest != nil {
		if s, ok := r.manifest.Artifacts[component]; ok {
			src = s
		}
	}

	switch {
	case src.Name != "":
		if r == nil || r.store == nil {
			return Artifact{}, fmt.Errorf("artifact %s: store is not configured", src.Name)
		}
		logger.Infof("loading %s artifact %q from store", component, src.Name)
		a, err := r.store.Get(ctx, src.Name)
		if err != nil {
			return Artifact{}, fmt.Errorf("load %s artifact: %w", component, err)
		}
		if err := a.Verify(); err != nil {
			return Artifact{}, err
		}
		return a, nil
	case src.File != "":
		logger.Infof("loading %s artifact from %s", component, src.File)
		a, err := ReadFile(src.File)
		if err != nil {
			return Artifact{}, fmt.Errorf("load %s artifact: %w", component, err)
		}
		return a, nil
	default:
		return Artifact{}, fmt.Errorf("load %s artifact: %w: no source configured", component, ErrNotFound)
	}
}

// IsNotFound reports whether err is a missing artifact.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
