package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jask/pinpad/internal/database"
)

// AttemptRepo handles the attempt history.
type AttemptRepo struct {
	db *sql.DB
}

func NewAttemptRepo(db *sql.DB) *AttemptRepo { return &AttemptRepo{db: db} }

func (r *AttemptRepo) Insert(ctx context.Context, a Attempt) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO attempts(id, outcome, digits, source, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, a.ID, a.Outcome, a.Digits, a.Source, a.CreatedAt)
	return err
}

func (r *AttemptRepo) ByID(ctx context.Context, id string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, outcome, digits, source, created_at FROM attempts WHERE id = ?`, id)
	var a Attempt
	if err := row.Scan(&a.ID, &a.Outcome, &a.Digits, &a.Source, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// List returns the newest attempts first. A non-positive limit returns all.
func (r *AttemptRepo) List(ctx context.Context, limit int) ([]Attempt, error) {
	query := `SELECT id, outcome, digits, source, created_at FROM attempts ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Outcome, &a.Digits, &a.Source, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Summary counts attempts per outcome. Both queries read one snapshot.
func (r *AttemptRepo) Summary(ctx context.Context) (Summary, error) {
	s := Summary{ByKind: map[string]int{}}
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM attempts GROUP BY outcome`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var outcome string
			var n int
			if err := rows.Scan(&outcome, &n); err != nil {
				return err
			}
			s.ByKind[outcome] = n
			s.Total += n
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if s.Total == 0 {
			return nil
		}
		var last time.Time
		if err := tx.QueryRowContext(ctx, `SELECT created_at FROM attempts ORDER BY created_at DESC, rowid DESC LIMIT 1`).Scan(&last); err != nil {
			return err
		}
		s.Last = &last
		return nil
	})
	return s, err
}

// DeleteAll removes every attempt and reports how many were removed.
func (r *AttemptRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
