package repository

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when an insert or update violates a unique key.
var ErrDuplicate = errors.New("duplicate key")

// Store groups the repositories that share one database handle. Repositories
// obtained from the Store passed to WithTx's callback run inside that
// transaction.
type Store interface {
	Students() StudentRepository
	Teachers() TeacherRepository
	Exams() ExamRepository
	Questions() QuestionRepository
	Attempts() AttemptRepository
	Assignments() AssignmentRepository

	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close() error
}
