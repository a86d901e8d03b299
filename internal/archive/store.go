package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CoinFeed/internal/db"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	"github.com/goran-ethernal/CoinFeed/internal/metrics"
	"github.com/goran-ethernal/CoinFeed/internal/migrations"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
	"github.com/russross/meddler"
)

const (
	coinsTable = "coins"
	dbName     = "archive"
)

// ErrNotFound is returned when an address has never been archived.
var ErrNotFound = errors.New("coin not found in archive")

// coinRow is the database representation of a coin.CoinRecord.
type coinRow struct {
	ID            int64                  `meddler:"id,pk"`
	Address       common.Address         `meddler:"address,address"`
	Name          string                 `meddler:"name"`
	Symbol        string                 `meddler:"symbol"`
	Description   string                 `meddler:"description"`
	ArtistName    string                 `meddler:"artist_name"`
	ArtistAddress common.Address         `meddler:"artist_address,address"`
	CoverArt      string                 `meddler:"cover_art"`
	AudioURL      *string                `meddler:"audio_url"`
	Genre         string                 `meddler:"genre"`
	Type          string                 `meddler:"coin_type"`
	Creator       common.Address         `meddler:"creator,address"`
	MetadataURI   string                 `meddler:"metadata_uri"`
	BlockNumber   uint64                 `meddler:"block_number"`
	TxHash        common.Hash            `meddler:"tx_hash,hash"`
	Metadata      *coin.MetadataDocument `meddler:"metadata,json"`
	FirstSeenAt   int64                  `meddler:"first_seen_at"`
	UpdatedAt     int64                  `meddler:"updated_at"`
}

func toRow(c coin.CoinRecord) *coinRow {
	return &coinRow{
		Address:       c.Address,
		Name:          c.Name,
		Symbol:        c.Symbol,
		Description:   c.Description,
		ArtistName:    c.ArtistName,
		ArtistAddress: c.ArtistAddress,
		CoverArt:      c.CoverArt,
		AudioURL:      c.AudioURL,
		Genre:         c.Genre,
		Type:          c.Type,
		Creator:       c.Creator,
		MetadataURI:   c.MetadataURI,
		BlockNumber:   c.BlockNumber,
		TxHash:        c.TxHash,
		Metadata:      c.Metadata,
	}
}

func (r *coinRow) toCoin() coin.CoinRecord {
	return coin.CoinRecord{
		Address:       r.Address,
		Name:          r.Name,
		Symbol:        r.Symbol,
		Description:   r.Description,
		ArtistName:    r.ArtistName,
		ArtistAddress: r.ArtistAddress,
		CoverArt:      r.CoverArt,
		AudioURL:      r.AudioURL,
		Genre:         r.Genre,
		Type:          r.Type,
		Creator:       r.Creator,
		MetadataURI:   r.MetadataURI,
		BlockNumber:   r.BlockNumber,
		TxHash:        r.TxHash,
		Metadata:      r.Metadata,
	}
}

// Store is a SQLite archive of every coin ever ingested.
type Store struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

// Open opens (creating if needed) the archive database and runs its migrations.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	sqlDB, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run archive migrations: %w", err)
	}

	return &Store{
		db:  sqlDB,
		log: log,
		now: time.Now,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts new coins and refreshes the stored fields of known ones.
// A record built without metadata never replaces one that has it.
func (s *Store) Upsert(ctx context.Context, coins []coin.CoinRecord) (err error) {
	if len(coins) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.DBQueryInc(dbName, "upsert")
		metrics.DBQueryDuration(dbName, "upsert", time.Since(start))
		if err != nil {
			metrics.DBErrorsInc(dbName, "upsert")
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Errorf("failed to rollback archive transaction: %v", rbErr)
			}
		}
	}()

	now := s.now().Unix()
	var inserted, updated int

	for _, c := range coins {
		row := toRow(c)
		row.UpdatedAt = now

		existing, err := s.load(ctx, tx, c.Address)
		switch {
		case errors.Is(err, ErrNotFound):
			row.FirstSeenAt = now
			if err := meddler.Insert(tx, coinsTable, row); err != nil {
				return fmt.Errorf("failed to insert coin %s: %w", c.Address.Hex(), err)
			}
			inserted++

		case err != nil:
			return err

		default:
			if row.Metadata == nil && existing.Metadata != nil {
				continue
			}

			row.ID = existing.ID
			row.FirstSeenAt = existing.FirstSeenAt
			if err := meddler.Update(tx, coinsTable, row); err != nil {
				return fmt.Errorf("failed to update coin %s: %w", c.Address.Hex(), err)
			}
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	s.log.Debugw("archived coins", "inserted", inserted, "updated", updated)

	return nil
}

// Get returns the archived coin with the given address.
func (s *Store) Get(ctx context.Context, address common.Address) (coin.CoinRecord, error) {
	row, err := s.load(ctx, s.db, address)
	if err != nil {
		return coin.CoinRecord{}, err
	}
	return row.toCoin(), nil
}

// List returns archived coins ordered by creation block.
func (s *Store) List(ctx context.Context, limit, offset int) ([]coin.CoinRecord, error) {
	start := time.Now()
	defer func() {
		metrics.DBQueryInc(dbName, "list")
		metrics.DBQueryDuration(dbName, "list", time.Since(start))
	}()

	const listQuery = `
		SELECT * FROM coins
		ORDER BY block_number ASC, id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		metrics.DBErrorsInc(dbName, "list")
		return nil, fmt.Errorf("failed to query coins: %w", err)
	}

	var dbRows []*coinRow
	if err := meddler.ScanAll(rows, &dbRows); err != nil {
		metrics.DBErrorsInc(dbName, "list")
		return nil, fmt.Errorf("failed to scan coins: %w", err)
	}

	out := make([]coin.CoinRecord, 0, len(dbRows))
	for _, r := range dbRows {
		out = append(out, r.toCoin())
	}

	return out, nil
}

// Count returns the number of archived coins.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM coins").Scan(&n); err != nil {
		metrics.DBErrorsInc(dbName, "count")
		return 0, fmt.Errorf("failed to count coins: %w", err)
	}
	return n, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) load(ctx context.Context, q queryer, address common.Address) (*coinRow, error) {
	rows, err := q.QueryContext(ctx, "SELECT * FROM coins WHERE address = ?", address.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to query coin %s: %w", address.Hex(), err)
	}

	var row coinRow
	if err := meddler.ScanRow(rows, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan coin %s: %w", address.Hex(), err)
	}

	return &row, nil
}
