package cli

import (
	"github.com/blogosphere/blog/internal/infrastructure/db/sqlstore"
	"github.com/blogosphere/blog/internal/pkg/config"
)

func storeConfig(cfg *config.Config) sqlstore.Config {
	return sqlstore.Config{Driver: cfg.Store.Driver, DSN: cfg.Store.DSN}
}
