package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	ListByExam(ctx context.Context, examID int64) ([]models.Question, error)
	// GetInExam returns nil when the question does not exist or belongs to
	// another exam.
	GetInExam(ctx context.Context, examID, id int64) (*models.Question, error)
}

type questionRepository struct {
	*PostgresRepository
}

func NewQuestionRepository(db DBTX, logger zerolog.Logger) QuestionRepository {
	return &questionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const questionColumns = `id, exam_id, question_text, option_a, option_b, option_c, option_d, correct_option`

func scanQuestion(row rowScanner) (*models.Question, error) {
	q := &models.Question{}
	err := row.Scan(
		&q.ID,
		&q.ExamID,
		&q.QuestionText,
		&q.OptionA,
		&q.OptionB,
		&q.OptionC,
		&q.OptionD,
		&q.CorrectOption,
	)
	return q, err
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (exam_id, question_text, option_a, option_b, option_c, option_d, correct_option)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		question.ExamID,
		question.QuestionText,
		question.OptionA,
		question.OptionB,
		question.OptionC,
		question.OptionD,
		question.CorrectOption,
	).Scan(&question.ID)
}

func (r *questionRepository) ListByExam(ctx context.Context, examID int64) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE exam_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return questions, rows.Err()
}

func (r *questionRepository) GetInExam(ctx context.Context, examID, id int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1 AND exam_id = $2`

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id, examID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}
