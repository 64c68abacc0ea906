package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/rs/zerolog"
)

type DashboardService interface {
	GetTeacherDashboard(ctx context.Context, email string) (*models.Dashboard, error)
}

type dashboardService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewDashboardService(store repository.Store, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		store:  store,
		logger: logger,
	}
}

func (s *dashboardService) GetTeacherDashboard(ctx context.Context, email string) (*models.Dashboard, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, models.NewValidationError("Teacher email required")
	}

	teacher, err := s.store.Teachers().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, models.NewNotFoundError("Teacher not found")
	}

	students, err := s.store.Students().ListBySchool(ctx, teacher.SchoolName)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	stats, progress, classes := BuildDashboardStats(students)

	return &models.Dashboard{
		Teacher:       teacher.Public(),
		Stats:         stats,
		ProgressChart: progress,
		ClassChart:    classes,
		Students:      models.PublicStudents(students),
	}, nil
}

// BuildDashboardStats buckets students by score tier and counts them per
// class in a single pass.
func BuildDashboardStats(students []models.Student) (models.DashboardStats, models.ProgressChart, map[string]int) {
	var (
		stats    models.DashboardStats
		progress models.ProgressChart
	)
	classes := make(map[string]int)

	for i := range students {
		st := &students[i]
		stats.TotalStudents++
		if st.Score > 0 {
			stats.ActiveStudents++
		}

		switch {
		case st.Score >= models.ExcellentMinScore:
			progress.Excellent++
		case st.Score >= models.AverageMinScore:
			progress.Average++
		default:
			progress.NeedsHelp++
		}

		classes[st.ClassOfStudy]++
	}

	return stats, progress, classes
}
