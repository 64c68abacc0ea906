package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByName(ctx context.Context, name string) (*models.Student, error)
	// LockByID and LockByName take a row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id int64) (*models.Student, error)
	LockByName(ctx context.Context, name string) (*models.Student, error)
	ListBySchool(ctx context.Context, schoolName string) ([]models.Student, error)
	ListByScore(ctx context.Context) ([]models.Student, error)
	UpdateProfile(ctx context.Context, student *models.Student) error
	AddScore(ctx context.Context, id int64, score, xp int) error
	AddScoreByName(ctx context.Context, name string, delta int) (*models.Student, error)
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db DBTX, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const studentColumns = `id, name, age, schoolname, classofstudy, password_hash, score, xp, created_at`

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.SchoolName,
		&student.ClassOfStudy,
		&student.PasswordHash,
		&student.Score,
		&student.XP,
		&student.CreatedAt,
	)
	return student, err
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, age, schoolname, classofstudy, password_hash, score, xp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		student.Name,
		student.Age,
		student.SchoolName,
		student.ClassOfStudy,
		student.PasswordHash,
		student.Score,
		student.XP,
		student.CreatedAt,
	).Scan(&student.ID)

	return mapWriteError(err)
}

func (r *studentRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

func (r *studentRepository) GetByName(ctx context.Context, name string) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE name = $1`, name)
}

func (r *studentRepository) LockByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1 FOR UPDATE`, id)
}

func (r *studentRepository) LockByName(ctx context.Context, name string) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE name = $1 FOR UPDATE`, name)
}

func (r *studentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Student, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}

	return students, rows.Err()
}

func (r *studentRepository) ListBySchool(ctx context.Context, schoolName string) ([]models.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students WHERE schoolname = $1 ORDER BY id`, schoolName)
}

func (r *studentRepository) ListByScore(ctx context.Context) ([]models.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students ORDER BY score DESC, id ASC`)
}

func (r *studentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET age = $1, schoolname = $2, classofstudy = $3, password_hash = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		student.Age,
		student.SchoolName,
		student.ClassOfStudy,
		student.PasswordHash,
		student.ID,
	)

	return mapWriteError(err)
}

func (r *studentRepository) AddScore(ctx context.Context, id int64, score, xp int) error {
	query := `UPDATE students SET score = score + $1, xp = xp + $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, score, xp, id)
	return err
}

func (r *studentRepository) AddScoreByName(ctx context.Context, name string, delta int) (*models.Student, error) {
	query := `
		UPDATE students
		SET score = score + $1
		WHERE name = $2
		RETURNING ` + studentColumns

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, delta, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}
