package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/ymykhal/pocket/internal/common"
	"github.com/ymykhal/pocket/internal/config"
	"github.com/ymykhal/pocket/internal/ledger"
	"github.com/ymykhal/pocket/internal/storage"
)

// openLedger opens the configured database and loads the ledger from it.
// The returned store must be closed by the caller.
func openLedger(ctx context.Context) (*ledger.Store, *storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError("unable to open the ledger database", err)
	}

	return ledger.New(ctx, store), store, nil
}
