package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type ClassRoomRepository struct {
	pool *pgxpool.Pool
}

func NewClassRoomRepository(pool *pgxpool.Pool) *ClassRoomRepository {
	return &ClassRoomRepository{pool: pool}
}

// List returns all classrooms with ownership and share lists.
func (r *ClassRoomRepository) List(ctx context.Context) ([]model.ClassRoom, error) {
	query := `
		SELECT id, room_id, building, floor, room, room_type, capacity, room_owner, shared_with, time_slots
		FROM class_rooms
		ORDER BY room_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	defer rows.Close()

	var classRooms []model.ClassRoom
	for rows.Next() {
		var c model.ClassRoom
		err := rows.Scan(
			&c.ID,
			&c.RoomID,
			&c.Building,
			&c.Floor,
			&c.Room,
			&c.RoomType,
			&c.Capacity,
			&c.RoomOwner,
			&c.SharedWith,
			&c.TimeSlots,
		)
		if err != nil {
			return nil, fmt.Errorf("scan classroom: %w", err)
		}
		classRooms = append(classRooms, c)
	}

	return classRooms, rows.Err()
}
