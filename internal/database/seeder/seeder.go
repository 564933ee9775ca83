package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"job-portal/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner executes seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	done := 0
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			logger.Printf("seeder=%s status=error err=%v", s.Name(), err)
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		done++
		logger.Printf("seeder=%s status=ok duration=%s", s.Name(), time.Since(start))
	}
	logger.Printf("seeder=run status=finished count=%d", done)
	return nil
}

// requireColumns fails when the migrated schema lacks any column a seeder
// writes to.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if table == "" || len(columns) == 0 {
		return errors.New("table and columns are required")
	}

	rows, err := db.Query(ctx, `
SELECT want.col
FROM unnest($2::text[]) AS want(col)
WHERE NOT EXISTS (
	SELECT 1 FROM information_schema.columns c
	WHERE c.table_schema = 'public' AND c.table_name = $1 AND c.column_name = want.col
)`, table, columns)
	if err != nil {
		return err
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		missing = append(missing, table+"."+col)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
