package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/storefront/internal/database"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// Supported SESSION_STORE_DRIVER values.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
	DriverBadger   = "badger"
)

// Store is the method set shared by every backend.
type Store interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Apply(ctx context.Context, batch sessionDomain.Batch) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver  string
	Path    string
	Profile string

	DB    database.Config
	Redis RedisConfig
}

// Open creates the backend named by opts.Driver. The returned store owns every resource it opened.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory:
		return NewMemoryKVStore(), nil
	case DriverFile, "":
		return NewFileKVStore(opts.Path, opts.Profile), nil
	case DriverSQLite:
		return OpenSQLiteKVStore(ctx, sqlitePath(opts.Path), opts.Profile)
	case DriverPostgres, "postgresql":
		db, err := connect(opts.DB, "postgres")
		if err != nil {
			return nil, err
		}
		return &dbOwningStore{Store: NewPostgreSQLKVStore(db, opts.Profile), db: db}, nil
	case DriverMySQL:
		db, err := connect(opts.DB, "mysql")
		if err != nil {
			return nil, err
		}
		return &dbOwningStore{Store: NewMySQLKVStore(db, opts.Profile), db: db}, nil
	case DriverRedis:
		return OpenRedisKVStore(ctx, opts.Redis, opts.Profile)
	case DriverBadger:
		return OpenBadgerKVStore(badgerPath(opts.Path), opts.Profile)
	default:
		return nil, fmt.Errorf("%w: %s", sessionDomain.ErrUnsupportedDriver, opts.Driver)
	}
}

func connect(cfg database.Config, driver string) (*sql.DB, error) {
	cfg.Driver = driver
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	return database.Connect(cfg)
}

// sqlitePath swaps a .json default path for a .db sibling.
func sqlitePath(path string) string {
	if ext := filepath.Ext(path); ext == ".json" {
		return strings.TrimSuffix(path, ext) + ".db"
	}
	return path
}

// badgerPath uses a directory next to a .json default path.
func badgerPath(path string) string {
	if ext := filepath.Ext(path); ext == ".json" {
		return strings.TrimSuffix(path, ext) + ".badger"
	}
	return path
}

type dbOwningStore struct {
	Store
	db *sql.DB
}

func (d *dbOwningStore) Close() error {
	return errors.Join(d.Store.Close(), d.db.Close())
}
