package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/rs/zerolog"
)

type StudentService interface {
	UpdateScore(ctx context.Context, req *models.ScoreUpdateRequest) (*models.Student, error)
	UpdateProfile(ctx context.Context, req *models.ProfileUpdateRequest) (*models.Student, error)
	Leaderboard(ctx context.Context) ([]models.Student, error)
}

type studentService struct {
	store  repository.Store
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewStudentService(store repository.Store, hasher *PasswordHasher, logger zerolog.Logger) StudentService {
	return &studentService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

func (s *studentService) UpdateScore(ctx context.Context, req *models.ScoreUpdateRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	student, err := s.store.Students().AddScoreByName(ctx, req.Name, req.Score.Int())
	if err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	if student == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Int("delta", req.Score.Int()).
		Int("score", student.Score).
		Msg("Student score updated")

	return student, nil
}

// UpdateProfile overwrites only the fields present in req.
func (s *studentService) UpdateProfile(ctx context.Context, req *models.ProfileUpdateRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var passwordHash string
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hashed
	}

	var updated *models.Student
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		student, err := tx.Students().LockByName(ctx, req.Name)
		if err != nil {
			return fmt.Errorf("failed to get student: %w", err)
		}
		if student == nil {
			return models.NewNotFoundError("User not found")
		}

		if req.Age != nil {
			student.Age = req.Age.Int()
		}
		if req.SchoolName != nil {
			student.SchoolName = *req.SchoolName
		}
		if req.ClassOfStudy != nil {
			student.ClassOfStudy = *req.ClassOfStudy
		}
		if passwordHash != "" {
			student.PasswordHash = passwordHash
		}

		if err := tx.Students().UpdateProfile(ctx, student); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("student_id", updated.ID).
		Msg("Student profile updated")

	return updated, nil
}

// Leaderboard returns every student, highest score first.
func (s *studentService) Leaderboard(ctx context.Context) ([]models.Student, error) {
	students, err := s.store.Students().ListByScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return students, nil
}
