package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/CoinFeed/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker     = "-- +migrate Up"
	downMarker   = "-- +migrate Down"
	prefixMarker = "/*dbprefix*/"
)

// Migration is one SQL file holding a Down section followed by an Up section.
// Every /*dbprefix*/ in SQL is replaced with Prefix, which also prefixes the ID.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrationsDB applies every pending Up migration.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return execMigrations(log, db, migrations, migrate.Up)
}

// RollbackMigrationsDB applies the Down section of every applied migration.
func RollbackMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return execMigrations(log, db, migrations, migrate.Down)
}

func execMigrations(log *logger.Logger, db *sql.DB, migrations []Migration, dir migrate.MigrationDirection) error {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		parsed, err := parseMigration(m)
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, parsed)
		ids = append(ids, parsed.Id)
	}

	log.Debugf("running migrations: %s", strings.Join(ids, ", "))

	n, err := migrate.Exec(db, "sqlite3", source, dir)
	if err != nil {
		return fmt.Errorf("error executing migrations %s: %w", strings.Join(ids, ", "), err)
	}

	log.Infof("successfully ran %d migrations", n)
	return nil
}

func parseMigration(m Migration) (*migrate.Migration, error) {
	text := strings.ReplaceAll(m.SQL, prefixMarker, m.Prefix)

	down, up, ok := strings.Cut(text, upMarker)
	if !ok {
		return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
	}

	if _, after, found := strings.Cut(down, downMarker); found {
		down = after
	}

	return &migrate.Migration{
		Id:   m.Prefix + m.ID,
		Up:   []string{strings.TrimSpace(up)},
		Down: []string{strings.TrimSpace(down)},
	}, nil
}
