package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/rs/zerolog"
)

const invalidCredentials = "Invalid credentials"

type AuthService interface {
	SignupStudent(ctx context.Context, req *models.StudentSignupRequest) (*models.Student, error)
	SignupTeacher(ctx context.Context, req *models.TeacherSignupRequest) (*models.Teacher, error)
	LoginStudent(ctx context.Context, req *models.StudentLoginRequest) (*models.Student, error)
	LoginTeacher(ctx context.Context, req *models.TeacherLoginRequest) (*models.Teacher, error)
}

type authService struct {
	store  repository.Store
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(store repository.Store, hasher *PasswordHasher, logger zerolog.Logger) AuthService {
	return &authService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

func (s *authService) SignupStudent(ctx context.Context, req *models.StudentSignupRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.store.Students().GetByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:         req.Name,
		Age:          req.Age.Int(),
		SchoolName:   req.SchoolName,
		ClassOfStudy: req.ClassOfStudy,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Students().Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("Username already exists")
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("name", student.Name).
		Str("school", student.SchoolName).
		Msg("Student signed up")

	return student, nil
}

func (s *authService) SignupTeacher(ctx context.Context, req *models.TeacherSignupRequest) (*models.Teacher, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.store.Teachers().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing teacher: %w", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		SchoolName:   req.SchoolName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Teachers().Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("Email already exists")
		}
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	s.logger.Info().
		Int64("teacher_id", teacher.ID).
		Str("email", teacher.Email).
		Msg("Teacher signed up")

	return teacher, nil
}

func (s *authService) LoginStudent(ctx context.Context, req *models.StudentLoginRequest) (*models.Student, error) {
	student, err := s.store.Students().GetByName(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	hashed := ""
	if student != nil {
		hashed = student.PasswordHash
	}

	ok, err := s.hasher.Verify(hashed, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug().Str("identifier", req.Identifier).Msg("Student login rejected")
		return nil, models.NewAuthError(invalidCredentials)
	}

	return student, nil
}

func (s *authService) LoginTeacher(ctx context.Context, req *models.TeacherLoginRequest) (*models.Teacher, error) {
	teacher, err := s.store.Teachers().GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	hashed := ""
	if teacher != nil {
		hashed = teacher.PasswordHash
	}

	ok, err := s.hasher.Verify(hashed, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug().Str("email", req.Email).Msg("Teacher login rejected")
		return nil, models.NewAuthError(invalidCredentials)
	}

	return teacher, nil
}
