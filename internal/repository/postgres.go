package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type PostgresRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewPostgresRepository(db DBTX, logger zerolog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// isUniqueViolation reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

type PostgresStore struct {
	db     *sql.DB
	q      DBTX
	logger zerolog.Logger
}

func NewPostgresStore(db *sql.DB, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		q:      db,
		logger: logger,
	}
}

func (s *PostgresStore) Students() StudentRepository {
	return NewStudentRepository(s.q, s.logger)
}

func (s *PostgresStore) Teachers() TeacherRepository {
	return NewTeacherRepository(s.q, s.logger)
}

func (s *PostgresStore) Exams() ExamRepository {
	return NewExamRepository(s.q, s.logger)
}

func (s *PostgresStore) Questions() QuestionRepository {
	return NewQuestionRepository(s.q, s.logger)
}

func (s *PostgresStore) Attempts() AttemptRepository {
	return NewAttemptRepository(s.q, s.logger)
}

func (s *PostgresStore) Assignments() AssignmentRepository {
	return NewAssignmentRepository(s.q, s.logger)
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	// Already inside a transaction: join it.
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &PostgresStore{db: s.db, q: tx, logger: s.logger}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
