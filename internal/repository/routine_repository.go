package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type RoutineRepository struct {
	pool *pgxpool.Pool
}

func NewRoutineRepository(pool *pgxpool.Pool) *RoutineRepository {
	return &RoutineRepository{pool: pool}
}

// Load returns the full ledger.
func (r *RoutineRepository) Load(ctx context.Context) ([]model.RoutineEntry, error) {
	query := `
		SELECT id, day, room_id, start_time, end_time, slot_type, course_load_id, program_id, booking_end_date
		FROM routine_entries
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load routine entries: %w", err)
	}
	defer rows.Close()

	var entries []model.RoutineEntry
	for rows.Next() {
		var e model.RoutineEntry
		var bookingEnd *time.Time
		err := rows.Scan(
			&e.ID,
			&e.Day,
			&e.RoomID,
			&e.StartTime,
			&e.EndTime,
			&e.SlotType,
			&e.CourseLoadID,
			&e.ProgramID,
			&bookingEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("scan routine entry: %w", err)
		}
		if bookingEnd != nil {
			e.BookingEndDate = *bookingEnd
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ReplaceAll swaps the stored ledger for the given one in a single
// transaction.
func (r *RoutineRepository) ReplaceAll(ctx context.Context, entries []model.RoutineEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM routine_entries`); err != nil {
		return fmt.Errorf("clear routine entries: %w", err)
	}

	query := `
		INSERT INTO routine_entries (id, day, room_id, start_time, end_time, slot_type, course_load_id, program_id, booking_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, e := range entries {
		_, err := tx.Exec(ctx, query,
			e.ID,
			e.Day,
			e.RoomID,
			e.StartTime,
			e.EndTime,
			e.SlotType,
			e.CourseLoadID,
			e.ProgramID,
			nullableTime(e.BookingEndDate),
		)
		if err != nil {
			return fmt.Errorf("insert routine entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
