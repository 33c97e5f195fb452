package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/weekwise/internal/storage/postgres"
	"github.com/julianstephens/weekwise/internal/storage/sqlite"
)

// NewStore selects a backend by config format: PostgreSQL connection strings
// get the postgres store, everything else is treated as a sqlite file path.
func NewStore(config string) Provider {
	if IsPostgresConfig(config) {
		return postgres.New(config)
	}
	return sqlite.New(config)
}

// IsPostgresConfig reports whether the config string is a PostgreSQL
// connection URL.
func IsPostgresConfig(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Credentials belong in the environment or
// .pgpass, never in the config string.
func HasEmbeddedCredentials(config string) bool {
	u, err := url.Parse(config)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
