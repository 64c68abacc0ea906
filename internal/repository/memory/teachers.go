package memory

import (
	"context"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type teacherRepository struct {
	s *Store
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.s.write(func(st *state) error {
		for _, existing := range st.teachers {
			if existing.Email == teacher.Email {
				return duplicate("teachers", "email", teacher.Email)
			}
		}
		teacher.ID = st.nextID()
		st.teachers[teacher.ID] = *teacher
		return nil
	})
}

func (r *teacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var found *models.Teacher
	r.s.read(func(st *state) {
		if t, ok := st.teachers[id]; ok {
			found = &t
		}
	})
	return found, nil
}

func (r *teacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	var found *models.Teacher
	r.s.read(func(st *state) {
		for _, t := range st.teachers {
			if t.Email == email {
				t := t
				found = &t
				return
			}
		}
	})
	return found, nil
}

func (r *teacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	t, err := r.GetByID(ctx, id)
	return t != nil, err
}
