package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type teacherRepository struct {
	*PostgresRepository
}

func NewTeacherRepository(db DBTX, logger zerolog.Logger) TeacherRepository {
	return &teacherRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const teacherColumns = `id, name, email, schoolname, password_hash, created_at`

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (name, email, schoolname, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		teacher.Name,
		teacher.Email,
		teacher.SchoolName,
		teacher.PasswordHash,
		teacher.CreatedAt,
	).Scan(&teacher.ID)

	return mapWriteError(err)
}

func (r *teacherRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Email,
		&teacher.SchoolName,
		&teacher.PasswordHash,
		&teacher.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getOne(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
}

func (r *teacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return r.getOne(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE email = $1`, email)
}

func (r *teacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
