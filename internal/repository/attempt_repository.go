package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.ExamAttempt) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.ExamAttempt, error)
}

type attemptRepository struct {
	*PostgresRepository
}

func NewAttemptRepository(db DBTX, logger zerolog.Logger) AttemptRepository {
	return &attemptRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.ExamAttempt) error {
	query := `
		INSERT INTO exam_attempts (exam_id, student_id, score, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		attempt.ExamID,
		attempt.StudentID,
		attempt.Score,
		attempt.SubmittedAt,
	).Scan(&attempt.ID)
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamAttempt, error) {
	query := `
		SELECT id, exam_id, student_id, score, submitted_at
		FROM exam_attempts
		WHERE student_id = $1
		ORDER BY submitted_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]models.ExamAttempt, 0)
	for rows.Next() {
		var a models.ExamAttempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.StudentID, &a.Score, &a.SubmittedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
