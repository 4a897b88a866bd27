package cli

import (
	"fmt"

	"github.com/fitlife-pro/fitlife/internal/config"
	"github.com/fitlife-pro/fitlife/internal/db"
)

// openDatabase connects to the configured store and migrates it.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	dc := db.DefaultConfig(cfg.Database.Driver, cfg.Database.URL)
	dc.Debug = cfg.Database.Debug
	if cfg.Database.Driver == db.DriverPostgres {
		if cfg.Database.MaxIdleConn > 0 {
			dc.MaxIdleConn = cfg.Database.MaxIdleConn
		}
		if cfg.Database.MaxOpenConn > 0 {
			dc.MaxOpenConn = cfg.Database.MaxOpenConn
		}
	}

	database, err := db.New(dc)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return database, nil
}
