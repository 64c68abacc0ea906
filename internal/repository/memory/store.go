// Package memory implements repository.Store in process memory. It backs the
// service and handler tests and the `database.driver: memory` mode used for
// local demos; data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
)

type state struct {
	students    map[int64]models.Student
	teachers    map[int64]models.Teacher
	exams       map[int64]models.Exam
	questions   map[int64]models.Question
	attempts    map[int64]models.ExamAttempt
	assignments map[int64]models.Assignment
	lastID      int64
}

func newState() *state {
	return &state{
		students:    make(map[int64]models.Student),
		teachers:    make(map[int64]models.Teacher),
		exams:       make(map[int64]models.Exam),
		questions:   make(map[int64]models.Question),
		attempts:    make(map[int64]models.ExamAttempt),
		assignments: make(map[int64]models.Assignment),
	}
}

func (st *state) clone() *state {
	c := &state{
		students:    make(map[int64]models.Student, len(st.students)),
		teachers:    make(map[int64]models.Teacher, len(st.teachers)),
		exams:       make(map[int64]models.Exam, len(st.exams)),
		questions:   make(map[int64]models.Question, len(st.questions)),
		attempts:    make(map[int64]models.ExamAttempt, len(st.attempts)),
		assignments: make(map[int64]models.Assignment, len(st.assignments)),
		lastID:      st.lastID,
	}
	for k, v := range st.students {
		c.students[k] = v
	}
	for k, v := range st.teachers {
		c.teachers[k] = v
	}
	for k, v := range st.exams {
		c.exams[k] = v
	}
	for k, v := range st.questions {
		c.questions[k] = v
	}
	for k, v := range st.attempts {
		c.attempts[k] = v
	}
	for k, v := range st.assignments {
		c.assignments[k] = v
	}
	return c
}

// nextID hands out ids from one sequence shared by all tables.
func (st *state) nextID() int64 {
	st.lastID++
	return st.lastID
}

// Store serializes writers: transactions and standalone writes hold txMu, so
// committing a transaction never overwrites a concurrent write.
type Store struct {
	txMu *sync.Mutex
	mu   sync.RWMutex
	st   *state
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		txMu: &sync.Mutex{},
		st:   newState(),
	}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	if !s.inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := &Store{txMu: s.txMu, st: s.st.clone(), inTx: true}
	s.mu.RUnlock()

	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = tx.st
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Students() repository.StudentRepository {
	return &studentRepository{s: s}
}

func (s *Store) Teachers() repository.TeacherRepository {
	return &teacherRepository{s: s}
}

func (s *Store) Exams() repository.ExamRepository {
	return &examRepository{s: s}
}

func (s *Store) Questions() repository.QuestionRepository {
	return &questionRepository{s: s}
}

func (s *Store) Attempts() repository.AttemptRepository {
	return &attemptRepository{s: s}
}

func (s *Store) Assignments() repository.AssignmentRepository {
	return &assignmentRepository{s: s}
}

func duplicate(table, column, value string) error {
	return fmt.Errorf("%w: %s.%s = %q", repository.ErrDuplicate, table, column, value)
}

func missingReference(table, column string, id int64) error {
	return fmt.Errorf("insert into %s violates foreign key %s = %d", table, column, id)
}
