package memory

import (
	"context"
	"sort"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type examRepository struct {
	s *Store
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.teachers[exam.TeacherID]; !ok {
			return missingReference("exams", "teacher_id", exam.TeacherID)
		}
		exam.ID = st.nextID()
		st.exams[exam.ID] = *exam
		return nil
	})
}

func (r *examRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	var found *models.Exam
	r.s.read(func(st *state) {
		if e, ok := st.exams[id]; ok {
			found = &e
		}
	})
	return found, nil
}

func (r *examRepository) Exists(ctx context.Context, id int64) (bool, error) {
	e, err := r.GetByID(ctx, id)
	return e != nil, err
}

func (r *examRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	var found bool
	err := r.s.write(func(st *state) error {
		e, ok := st.exams[id]
		if !ok {
			return nil
		}
		e.IsActive = active
		st.exams[id] = e
		found = true
		return nil
	})
	return found, err
}

func (r *examRepository) ListActive(ctx context.Context) ([]models.Exam, error) {
	exams := make([]models.Exam, 0)
	r.s.read(func(st *state) {
		for _, e := range st.exams {
			if e.IsActive {
				exams = append(exams, e)
			}
		}
	})
	sort.Slice(exams, func(i, j int) bool { return exams[i].ID < exams[j].ID })
	return exams, nil
}

type questionRepository struct {
	s *Store
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.exams[question.ExamID]; !ok {
			return missingReference("questions", "exam_id", question.ExamID)
		}
		question.ID = st.nextID()
		st.questions[question.ID] = *question
		return nil
	})
}

func (r *questionRepository) ListByExam(ctx context.Context, examID int64) ([]models.Question, error) {
	questions := make([]models.Question, 0)
	r.s.read(func(st *state) {
		for _, q := range st.questions {
			if q.ExamID == examID {
				questions = append(questions, q)
			}
		}
	})
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (r *questionRepository) GetInExam(ctx context.Context, examID, id int64) (*models.Question, error) {
	var found *models.Question
	r.s.read(func(st *state) {
		if q, ok := st.questions[id]; ok && q.ExamID == examID {
			found = &q
		}
	})
	return found, nil
}

type attemptRepository struct {
	s *Store
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.ExamAttempt) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.exams[attempt.ExamID]; !ok {
			return missingReference("exam_attempts", "exam_id", attempt.ExamID)
		}
		if _, ok := st.students[attempt.StudentID]; !ok {
			return missingReference("exam_attempts", "student_id", attempt.StudentID)
		}
		attempt.ID = st.nextID()
		st.attempts[attempt.ID] = *attempt
		return nil
	})
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ExamAttempt, error) {
	attempts := make([]models.ExamAttempt, 0)
	r.s.read(func(st *state) {
		for _, a := range st.attempts {
			if a.StudentID == studentID {
				attempts = append(attempts, a)
			}
		}
	})
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].ID > attempts[j].ID })
	return attempts, nil
}
