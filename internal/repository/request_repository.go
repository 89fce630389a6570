package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Load returns the full request queue.
func (r *RequestRepository) Load(ctx context.Context) ([]model.AssignmentRequest, error) {
	query := `
		SELECT id, requesting_program_id, room_owner_program_code,
		       day, room_id, start_time, end_time, slot_type,
		       requested_course_load_id, booking_end_date, status,
		       request_date, resolution_date, rejection_reason
		FROM assignment_requests
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load assignment requests: %w", err)
	}
	defer rows.Close()

	var requests []model.AssignmentRequest
	for rows.Next() {
		var req model.AssignmentRequest
		var resolution *time.Time
		var reason *string
		err := rows.Scan(
			&req.ID,
			&req.RequestingProgramID,
			&req.RoomOwnerProgramCode,
			&req.SlotDetails.Day,
			&req.SlotDetails.RoomID,
			&req.SlotDetails.StartTime,
			&req.SlotDetails.EndTime,
			&req.SlotDetails.SlotType,
			&req.RequestedCourseLoadID,
			&req.BookingEndDate,
			&req.Status,
			&req.RequestDate,
			&resolution,
			&reason,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment request: %w", err)
		}
		if resolution != nil {
			req.ResolutionDate = *resolution
		}
		if reason != nil {
			req.RejectionReason = *reason
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// ReplaceAll swaps the stored queue for the given one in a single
// transaction.
func (r *RequestRepository) ReplaceAll(ctx context.Context, requests []model.AssignmentRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM assignment_requests`); err != nil {
		return fmt.Errorf("clear assignment requests: %w", err)
	}

	query := `
		INSERT INTO assignment_requests (
			id, requesting_program_id, room_owner_program_code,
			day, room_id, start_time, end_time, slot_type,
			requested_course_load_id, booking_end_date, status,
			request_date, resolution_date, rejection_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, req := range requests {
		var reason *string
		if req.RejectionReason != "" {
			reason = &req.RejectionReason
		}
		_, err := tx.Exec(ctx, query,
			req.ID,
			req.RequestingProgramID,
			req.RoomOwnerProgramCode,
			req.SlotDetails.Day,
			req.SlotDetails.RoomID,
			req.SlotDetails.StartTime,
			req.SlotDetails.EndTime,
			req.SlotDetails.SlotType,
			req.RequestedCourseLoadID,
			req.BookingEndDate,
			req.Status,
			req.RequestDate,
			nullableTime(req.ResolutionDate),
			reason,
		)
		if err != nil {
			return fmt.Errorf("insert assignment request: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
