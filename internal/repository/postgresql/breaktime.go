package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kintai-app/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
)

type breaktimeRepository struct {
	db *database.DB
}

func NewBreaktimeRepository(db *database.DB) attendance.BreaktimeRepository {
	return &breaktimeRepository{db: db}
}

const breaktimeColumns = `id, attendance_id, user_id, start_time, end_time, created_at, updated_at`

func scanBreaktime(row pgx.Row) (attendance.Breaktime, error) {
	var bt attendance.Breaktime
	err := row.Scan(
		&bt.ID, &bt.AttendanceID, &bt.UserID, &bt.StartTime, &bt.EndTime,
		&bt.CreatedAt, &bt.UpdatedAt,
	)
	return bt, err
}

// Create implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) Create(ctx context.Context, bt attendance.Breaktime) (attendance.Breaktime, error) {
	q := GetQuerier(ctx, b.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Breaktime{}, fmt.Errorf("failed to generate breaktime id: %w", err)
	}

	query := `
		INSERT INTO breaktimes (id, attendance_id, user_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	bt.ID = id.String()
	err = q.QueryRow(ctx, query,
		bt.ID, bt.AttendanceID, bt.UserID, bt.StartTime, bt.EndTime,
	).Scan(&bt.CreatedAt, &bt.UpdatedAt)

	if err != nil {
		return attendance.Breaktime{}, fmt.Errorf("failed to create breaktime: %w", err)
	}

	return bt, nil
}

// Update implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) Update(ctx context.Context, bt attendance.Breaktime) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE breaktimes
		SET start_time = $1, end_time = $2, updated_at = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, bt.StartTime, bt.EndTime, time.Now(), bt.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrNoOpenBreak
		}
		return fmt.Errorf("failed to update breaktime: %w", err)
	}

	return nil
}

// GetOpen implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) GetOpen(ctx context.Context, attendanceID string) (*attendance.Breaktime, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT ` + breaktimeColumns + `
		FROM breaktimes
		WHERE attendance_id = $1 AND end_time IS NULL
		LIMIT 1
	`

	bt, err := scanBreaktime(q.QueryRow(ctx, query, attendanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open breaktime: %w", err)
	}

	return &bt, nil
}

// ListByAttendance implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Breaktime, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT ` + breaktimeColumns + `
		FROM breaktimes
		WHERE attendance_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaktimes: %w", err)
	}
	defer rows.Close()

	return collectBreaktimes(rows)
}

// ListByAttendanceIDs implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]attendance.Breaktime, error) {
	result := make(map[string][]attendance.Breaktime)
	if len(attendanceIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, b.db)

	query := `
		SELECT ` + breaktimeColumns + `
		FROM breaktimes
		WHERE attendance_id = ANY($1)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, attendanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaktimes by attendance ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		bt, err := scanBreaktime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan breaktime: %w", err)
		}
		result[bt.AttendanceID] = append(result[bt.AttendanceID], bt)
	}

	return result, rows.Err()
}

// DeleteByAttendance implements attendance.BreaktimeRepository.
func (b *breaktimeRepository) DeleteByAttendance(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, b.db)

	_, err := q.Exec(ctx, `DELETE FROM breaktimes WHERE attendance_id = $1`, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to delete breaktimes: %w", err)
	}

	return nil
}

func collectBreaktimes(rows pgx.Rows) ([]attendance.Breaktime, error) {
	var breaks []attendance.Breaktime
	for rows.Next() {
		bt, err := scanBreaktime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan breaktime: %w", err)
		}
		breaks = append(breaks, bt)
	}
	return breaks, rows.Err()
}
