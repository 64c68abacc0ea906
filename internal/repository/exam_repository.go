package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// SetActive reports false when no exam has the given id.
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	ListActive(ctx context.Context) ([]models.Exam, error)
}

type examRepository struct {
	*PostgresRepository
}

func NewExamRepository(db DBTX, logger zerolog.Logger) ExamRepository {
	return &examRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const examColumns = `id, title, subject, duration_minutes, teacher_id, is_active, created_at`

func scanExam(row rowScanner) (*models.Exam, error) {
	exam := &models.Exam{}
	err := row.Scan(
		&exam.ID,
		&exam.Title,
		&exam.Subject,
		&exam.DurationMinutes,
		&exam.TeacherID,
		&exam.IsActive,
		&exam.CreatedAt,
	)
	return exam, err
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	query := `
		INSERT INTO exams (title, subject, duration_minutes, teacher_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		exam.Title,
		exam.Subject,
		exam.DurationMinutes,
		exam.TeacherID,
		exam.IsActive,
		exam.CreatedAt,
	).Scan(&exam.ID)
}

func (r *examRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = $1`

	exam, err := scanExam(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func (r *examRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *examRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE exams SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *examRepository) ListActive(ctx context.Context) ([]models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE is_active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := make([]models.Exam, 0)
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *exam)
	}

	return exams, rows.Err()
}
