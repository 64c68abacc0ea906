package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	// GetAll returns every assignment, newest first.
	GetAll(ctx context.Context) ([]models.Assignment, error)
	GetByFileName(ctx context.Context, fileName string) (*models.Assignment, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db DBTX, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const assignmentColumns = `id, subject, filename, original_name, teacher_name, checksum, file_size, created_at`

func scanAssignment(row rowScanner) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(
		&a.ID,
		&a.Subject,
		&a.FileName,
		&a.OriginalName,
		&a.TeacherName,
		&a.Checksum,
		&a.FileSize,
		&a.CreatedAt,
	)
	return a, err
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (subject, filename, original_name, teacher_name, checksum, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		assignment.Subject,
		assignment.FileName,
		assignment.OriginalName,
		assignment.TeacherName,
		assignment.Checksum,
		assignment.FileSize,
		assignment.CreatedAt,
	).Scan(&assignment.ID)

	return mapWriteError(err)
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) GetByFileName(ctx context.Context, fileName string) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE filename = $1`

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, fileName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
