package repository

import (
	"context"

	"job-portal/internal/database"
	"job-portal/internal/domain/match"
	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

type JobMatchRepository interface {
	// ReplaceForUser swaps the user's stored ranking in one transaction.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, matches []match.JobMatch) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]match.JobMatch, error)
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

func (r *PostgresJobMatchRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, matches []match.JobMatch) error {
	if userID == uuid.Nil {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_matches WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, m := range matches {
			if m.JobID == uuid.Nil {
				continue
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO job_matches (id, user_id, job_id, match_score, rank, matched_at)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (user_id, job_id) DO UPDATE SET
					match_score = EXCLUDED.match_score,
					rank = EXCLUDED.rank,
					matched_at = EXCLUDED.matched_at`,
				uuid.New(), userID, m.JobID, m.Score.Percent(), m.Rank, m.MatchedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresJobMatchRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]match.JobMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, job_id, match_score::float8, rank, matched_at
		 FROM job_matches
		 WHERE user_id = $1
		 ORDER BY rank ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.JobMatch, 0)
	for rows.Next() {
		var m match.JobMatch
		var pct float64
		if err := rows.Scan(&m.UserID, &m.JobID, &pct, &m.Rank, &m.MatchedAt); err != nil {
			return nil, err
		}
		m.Score = matching.ScoreFromPercent(pct)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
