package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type CourseLoadRepository struct {
	pool *pgxpool.Pool
}

func NewCourseLoadRepository(pool *pgxpool.Pool) *CourseLoadRepository {
	return &CourseLoadRepository{pool: pool}
}

// List returns all course sections.
func (r *CourseLoadRepository) List(ctx context.Context) ([]model.CourseLoad, error) {
	query := `
		SELECT id, pid, section_id, course_code, course_title, section, credit,
		       student_count, weekly_class, teacher_id, teacher_name, designation
		FROM course_loads
		ORDER BY course_code, section
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list course loads: %w", err)
	}
	defer rows.Close()

	var loads []model.CourseLoad
	for rows.Next() {
		var cl model.CourseLoad
		err := rows.Scan(
			&cl.ID,
			&cl.PID,
			&cl.SectionID,
			&cl.CourseCode,
			&cl.CourseTitle,
			&cl.Section,
			&cl.Credit,
			&cl.StudentCount,
			&cl.WeeklyClass,
			&cl.TeacherID,
			&cl.TeacherName,
			&cl.Designation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course load: %w", err)
		}
		loads = append(loads, cl)
	}

	return loads, rows.Err()
}
