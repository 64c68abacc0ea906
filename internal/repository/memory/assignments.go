package memory

import (
	"context"
	"sort"

	"github.com/RubachokBoss/school-backend/internal/models"
)

type assignmentRepository struct {
	s *Store
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.s.write(func(st *state) error {
		for _, existing := range st.assignments {
			if existing.FileName == assignment.FileName {
				return duplicate("assignments", "filename", assignment.FileName)
			}
		}
		assignment.ID = st.nextID()
		st.assignments[assignment.ID] = *assignment
		return nil
	})
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]models.Assignment, error) {
	assignments := make([]models.Assignment, 0)
	r.s.read(func(st *state) {
		for _, a := range st.assignments {
			assignments = append(assignments, a)
		}
	})
	sort.Slice(assignments, func(i, j int) bool {
		if !assignments[i].CreatedAt.Equal(assignments[j].CreatedAt) {
			return assignments[i].CreatedAt.After(assignments[j].CreatedAt)
		}
		return assignments[i].ID > assignments[j].ID
	})
	return assignments, nil
}

func (r *assignmentRepository) GetByFileName(ctx context.Context, fileName string) (*models.Assignment, error) {
	var found *models.Assignment
	r.s.read(func(st *state) {
		for _, a := range st.assignments {
			if a.FileName == fileName {
				a := a
				found = &a
				return
			}
		}
	})
	return found, nil
}
