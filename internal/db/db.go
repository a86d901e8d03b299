package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goran-ethernal/CoinFeed/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/russross/meddler"
)

func init() {
	meddler.Default = meddler.SQLite
}

// dsn builds the go-sqlite3 connection string for cfg. Transactions take the
// write lock at BEGIN.
func dsn(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Set("_foreign_keys", "on")
	q.Set("_journal_mode", cfg.JournalMode)
	q.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	q.Set("_synchronous", cfg.Synchronous)

	return "file:" + cfg.Path + "?" + q.Encode()
}

// NewSQLiteDBFromConfig opens and pings the SQLite database described by cfg.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
