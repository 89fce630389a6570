// Package repository persists the routine collections and serves the
// entity catalog from Postgres. The catalog is read-only to the engine;
// ledger, queue, and notifications are written by whole-collection
// replacement, mirroring how the in-memory state is committed.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type ProgramRepository struct {
	pool *pgxpool.Pool
}

func NewProgramRepository(pool *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{pool: pool}
}

// List returns all programs with their time slot grids.
func (r *ProgramRepository) List(ctx context.Context) ([]model.Program, error) {
	query := `
		SELECT id, pid, faculty, program_code, program_name, program_type, semester_type, time_slots
		FROM programs
		ORDER BY program_code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		var p model.Program
		err := rows.Scan(
			&p.ID,
			&p.PID,
			&p.Faculty,
			&p.ProgramCode,
			&p.ProgramName,
			&p.ProgramType,
			&p.SemesterType,
			&p.TimeSlots,
		)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		programs = append(programs, p)
	}

	return programs, rows.Err()
}
