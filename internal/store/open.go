package store

import (
	"fmt"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/db"
)

// Open builds the store selected by cfg.Driver.
func Open(cfg *config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(cfg.SessionTTL()), nil
	case "bolt":
		return NewBoltStore(cfg.Path)
	case "sqlite", "postgres":
		gormDB, err := db.Init(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(gormDB), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
