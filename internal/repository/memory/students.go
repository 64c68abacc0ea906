package memory

import (
	"context"
	"sort"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type studentRepository struct {
	s *Store
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.s.write(func(st *state) error {
		for _, existing := range st.students {
			if existing.Name == student.Name {
				return duplicate("students", "name", student.Name)
			}
		}
		student.ID = st.nextID()
		st.students[student.ID] = *student
		return nil
	})
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var found *models.Student
	r.s.read(func(st *state) {
		if s, ok := st.students[id]; ok {
			found = &s
		}
	})
	return found, nil
}

func (r *studentRepository) GetByName(ctx context.Context, name string) (*models.Student, error) {
	var found *models.Student
	r.s.read(func(st *state) {
		for _, s := range st.students {
			if s.Name == name {
				s := s
				found = &s
				return
			}
		}
	})
	return found, nil
}

// Transactions are serialized, so a plain read is already exclusive.
func (r *studentRepository) LockByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.GetByID(ctx, id)
}

func (r *studentRepository) LockByName(ctx context.Context, name string) (*models.Student, error) {
	return r.GetByName(ctx, name)
}

func (r *studentRepository) ListBySchool(ctx context.Context, schoolName string) ([]models.Student, error) {
	students := make([]models.Student, 0)
	r.s.read(func(st *state) {
		for _, s := range st.students {
			if s.SchoolName == schoolName {
				students = append(students, s)
			}
		}
	})
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (r *studentRepository) ListByScore(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0)
	r.s.read(func(st *state) {
		for _, s := range st.students {
			students = append(students, s)
		}
	})
	sort.Slice(students, func(i, j int) bool {
		if students[i].Score != students[j].Score {
			return students[i].Score > students[j].Score
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (r *studentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	return r.s.write(func(st *state) error {
		current, ok := st.students[student.ID]
		if !ok {
			return nil
		}
		current.Age = student.Age
		current.SchoolName = student.SchoolName
		current.ClassOfStudy = student.ClassOfStudy
		current.PasswordHash = student.PasswordHash
		st.students[student.ID] = current
		return nil
	})
}

func (r *studentRepository) AddScore(ctx context.Context, id int64, score, xp int) error {
	return r.s.write(func(st *state) error {
		current, ok := st.students[id]
		if !ok {
			return nil
		}
		current.Score += score
		current.XP += xp
		st.students[id] = current
		return nil
	})
}

func (r *studentRepository) AddScoreByName(ctx context.Context, name string, delta int) (*models.Student, error) {
	var updated *models.Student
	err := r.s.write(func(st *state) error {
		for id, s := range st.students {
			if s.Name == name {
				s.Score += delta
				st.students[id] = s
				updated = &s
				return nil
			}
		}
		return nil
	})
	return updated, err
}
