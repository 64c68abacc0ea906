package service

import (
	"context"
	"sync"
	"testing"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository/memory"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	testHasherOnce sync.Once
	testHasher     *PasswordHasher
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	testHasherOnce.Do(func() {
		h, err := NewPasswordHasher(bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		testHasher = h
	})
	return testHasher
}

type recordingPublisher struct {
	mu          sync.Mutex
	submitted   []models.ExamSubmittedEvent
	uploaded    []models.AssignmentUploadedEvent
	publishFail error
}

func (p *recordingPublisher) PublishExamSubmitted(_ context.Context, e *models.ExamSubmittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitted = append(p.submitted, *e)
	return p.publishFail
}

func (p *recordingPublisher) PublishAssignmentUploaded(_ context.Context, e *models.AssignmentUploadedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploaded = append(p.uploaded, *e)
	return p.publishFail
}

func (p *recordingPublisher) Close() error { return nil }

func signupStudent(t *testing.T, auth AuthService, name, school, class string) *models.Student {
	t.Helper()
	st, err := auth.SignupStudent(context.Background(), &models.StudentSignupRequest{
		Name:         name,
		Age:          14,
		SchoolName:   school,
		ClassOfStudy: class,
		Password:     "pw-" + name,
	})
	if err != nil {
		t.Fatalf("SignupStudent(%q) error = %v", name, err)
	}
	return st
}

func signupTeacher(t *testing.T, auth AuthService, email, school string) *models.Teacher {
	t.Helper()
	teacher, err := auth.SignupTeacher(context.Background(), &models.TeacherSignupRequest{
		Name:       "Ms " + email,
		Email:      email,
		SchoolName: school,
		Password:   "secret",
	})
	if err != nil {
		t.Fatalf("SignupTeacher(%q) error = %v", email, err)
	}
	return teacher
}

func newTestAuth(t *testing.T) (*memory.Store, AuthService) {
	t.Helper()
	store := memory.NewStore()
	return store, NewAuthService(store, newTestHasher(t), zerolog.Nop())
}
