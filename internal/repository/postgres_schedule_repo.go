package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/myschedule/internal/model"
)

// PostgresScheduleRepo はPostgreSQLを使用した予定リポジトリ。
type PostgresScheduleRepo struct {
	db *sql.DB
}

// NewPostgresScheduleRepo はPostgresScheduleRepoを生成する。
func NewPostgresScheduleRepo(db *sql.DB) *PostgresScheduleRepo {
	return &PostgresScheduleRepo{db: db}
}

// Create は予定を作成する。
func (r *PostgresScheduleRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schedules (id, title, description, date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Title, entry.Description, entry.Date, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// FindByID は指定IDの予定を取得する。見つからない場合はnilを返す。
func (r *PostgresScheduleRepo) FindByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	entry := &model.ScheduleEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, date, created_at, updated_at
		 FROM schedules WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.Title, &entry.Description, &entry.Date, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule by ID: %w", err)
	}

	return entry, nil
}

// ListByDate は全予定を日時の昇順で取得する。
func (r *PostgresScheduleRepo) ListByDate(ctx context.Context) ([]*model.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, date, created_at, updated_at
		 FROM schedules ORDER BY date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	entries := []*model.ScheduleEntry{}
	for rows.Next() {
		entry := &model.ScheduleEntry{}
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Description, &entry.Date, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule rows: %w", err)
	}

	return entries, nil
}

// Update は予定を更新する。
func (r *PostgresScheduleRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE schedules
		 SET title = $2, description = $3, date = $4, updated_at = $5
		 WHERE id = $1`,
		entry.ID, entry.Title, entry.Description, entry.Date, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの予定を削除する。対象が存在しなかった場合はfalseを返す。
func (r *PostgresScheduleRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM schedules WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete schedule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// compile-time interface check
var _ ScheduleRepository = (*PostgresScheduleRepo)(nil)
