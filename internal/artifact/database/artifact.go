package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/database"
	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

var _ artifact.Getter = (*DB)(nil)

const (
	// name -> id of the latest version
	latestKeys = "artifact:latest"
	prefix     = "artifact:"
)

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

// Store appends a version of the artifact and marks it as the latest.
func (db *DB) Store(_ context.Context, a artifact.Artifact) error {
	if a.Name == "" || prefix+a.Name == latestKeys {
		return fmt.Errorf("artifact name %q is reserved", a.Name)
	}
	bytes, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", a.Name, err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(prefix + a.Name))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(a.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		latest, err := tx.CreateBucketIfNotExists([]byte(latestKeys))
		if err != nil {
			return fmt.Errorf("create latest bucket: %w", err)
		}
		if err := latest.Put([]byte(a.Name), []byte(a.ID.String())); err != nil {
			return fmt.Errorf("put to latest bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// Get returns the latest version stored under name.
func (db *DB) Get(_ context.Context, name string) (artifact.Artifact, error) {
	var a artifact.Artifact
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		latest := tx.Bucket([]byte(latestKeys))
		if latest == nil {
			return fmt.Errorf("%w: %s", artifact.ErrNotFound, name)
		}
		id := latest.Get([]byte(name))
		if id == nil {
			return fmt.Errorf("%w: %s", artifact.ErrNotFound, name)
		}
		b := tx.Bucket([]byte(prefix + name))
		if b == nil {
			return fmt.Errorf("%w: %s", artifact.ErrNotFound, name)
		}
		v := b.Get(id)
		if v == nil {
			return fmt.Errorf("%w: %s@%s", artifact.ErrNotFound, name, id)
		}
		if err := json.Unmarshal(v, &a); err != nil {
			return fmt.Errorf("decode artifact %s: %w", name, err)
		}
		return nil
	}); err != nil {
		return artifact.Artifact{}, fmt.Errorf("view transaction error: %w", err)
	}

	return a, nil
}

// Versions lists every stored version of name, oldest first.
func (db *DB) Versions(_ context.Context, name string) ([]artifact.Artifact, error) {
	var list []artifact.Artifact
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + name))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var a artifact.Artifact
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("decode artifact %s: %w", name, err)
			}
			list = append(list, a)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// Names returns the names that have a latest version, sorted.
func (db *DB) Names() ([]string, error) {
	var names []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(latestKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})

	return names, err
}

// Delete drops every version of name.
func (db *DB) Delete(_ context.Context, name string) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(prefix + name)); err != nil {
			if errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("%w: %s", artifact.ErrNotFound, name)
			}
			return fmt.Errorf("delete bucket: %w", err)
		}
		if latest := tx.Bucket([]byte(latestKeys)); latest != nil {
			return latest.Delete([]byte(name))
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}
