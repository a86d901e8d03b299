package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/goran-ethernal/CoinFeed/internal/db"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
)

//go:embed *.sql
var files embed.FS

// All returns the archive migrations ordered by file name.
func All() ([]db.Migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]db.Migration, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, db.Migration{ID: name, SQL: string(data)})
	}
	return out, nil
}

// RunMigrations brings the archive schema up to date.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	migrations, err := All()
	if err != nil {
		return err
	}
	return db.RunMigrationsDB(log, sqlDB, migrations)
}
