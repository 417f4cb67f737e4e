package pg

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx" //nolint:revive
)

// Config holds the connection parameters for a postgres pool.
type Config struct {
	User               string
	Password           string
	Host               string
	Port               int
	DbName             string
	MaxOpenConnections int
	MaxIdleConnections int
}

// NewWithConfig opens a connection pool with password authentication through
// the New Relic instrumented pgx driver, so queries show up as datastore
// segments in traced transactions.
func NewWithConfig(cfg *Config) (*sql.DB, error) {
	db, err := NewWithUsernameAndPassword(cfg.User, cfg.Password, cfg.Host, fmt.Sprintf("%d", cfg.Port), cfg.DbName)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	return db, nil
}

// NewWithUsernameAndPassword gets a DB connection pool using username/password credentials
func NewWithUsernameAndPassword(username, password, hostname, port, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		username, password, hostname, port, dbname,
	)

	db, err := sql.Open("nrpgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "error opening postgres connection")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "error pinging postgres")
	}

	return db, nil
}
