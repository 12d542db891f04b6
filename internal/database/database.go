package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sod/insight/internal/logging"
	bolt "go.etcd.io/bbolt"
)

type Config struct {
	// Empty disables the artifact store.
	FileName    string        `envconfig:"INSIGHT_DB_FILE"`
	OpenTimeout time.Duration `envconfig:"INSIGHT_DB_OPEN_TIMEOUT" default:"5s"`
	ReadOnly    bool          `envconfig:"INSIGHT_DB_READ_ONLY" default:"true"`
}

func (c Config) Enabled() bool {
	return c.FileName != ""
}

type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("opening artifact store %s", config.FileName)

	db, err := bolt.Open(config.FileName, 0600, &bolt.Options{
		Timeout:  config.OpenTimeout,
		ReadOnly: config.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("open artifact store %s: %w", config.FileName, err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing artifact store")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("close artifact store: %w", err)
	}

	return nil
}
