package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/RubachokBoss/school-backend/internal/service/integration"
	"github.com/rs/zerolog"
)

// XPPerCorrectAnswer is added to a student's xp for each correct answer.
const XPPerCorrectAnswer = 10

type ExamService interface {
	CreateExam(ctx context.Context, req *models.CreateExamRequest) (*models.Exam, error)
	AddQuestion(ctx context.Context, examID int64, req *models.AddQuestionRequest) (*models.Question, error)
	StartExam(ctx context.Context, examID int64) error
	StopExam(ctx context.Context, examID int64) error
	ListActiveExams(ctx context.Context) ([]models.ExamSummary, error)
	GetQuestions(ctx context.Context, examID int64) ([]models.PublicQuestion, error)
	GetExamInfo(ctx context.Context, examID int64) (*models.ExamInfo, error)
	SubmitExam(ctx context.Context, examID int64, req *models.SubmitExamRequest) (int, error)
	ListAttempts(ctx context.Context, studentID int64) ([]models.ExamAttempt, error)
}

type examService struct {
	store     repository.Store
	publisher integration.EventPublisher
	logger    zerolog.Logger
}

func NewExamService(store repository.Store, publisher integration.EventPublisher, logger zerolog.Logger) ExamService {
	return &examService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *examService) CreateExam(ctx context.Context, req *models.CreateExamRequest) (*models.Exam, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.store.Teachers().Exists(ctx, req.TeacherID.Int64())
	if err != nil {
		return nil, fmt.Errorf("failed to check teacher: %w", err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Teacher not found")
	}

	exam := &models.Exam{
		Title:           req.Title,
		Subject:         req.Subject,
		DurationMinutes: req.Duration.Int(),
		TeacherID:       req.TeacherID.Int64(),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.store.Exams().Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	s.logger.Info().
		Int64("exam_id", exam.ID).
		Int64("teacher_id", exam.TeacherID).
		Str("subject", exam.Subject).
		Msg("Exam created")

	return exam, nil
}

func (s *examService) AddQuestion(ctx context.Context, examID int64, req *models.AddQuestionRequest) (*models.Question, error) {
	req.Correct = models.NormalizeOption(req.Correct)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.store.Exams().Exists(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to check exam: %w", err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Exam not found")
	}

	question := &models.Question{
		ExamID:        examID,
		QuestionText:  req.Question,
		OptionA:       req.A,
		OptionB:       req.B,
		OptionC:       req.C,
		OptionD:       req.D,
		CorrectOption: req.Correct,
	}

	if err := s.store.Questions().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to add question: %w", err)
	}

	s.logger.Debug().
		Int64("exam_id", examID).
		Int64("question_id", question.ID).
		Msg("Question added")

	return question, nil
}

func (s *examService) StartExam(ctx context.Context, examID int64) error {
	return s.setActive(ctx, examID, true)
}

func (s *examService) StopExam(ctx context.Context, examID int64) error {
	return s.setActive(ctx, examID, false)
}

func (s *examService) setActive(ctx context.Context, examID int64, active bool) error {
	found, err := s.store.Exams().SetActive(ctx, examID, active)
	if err != nil {
		return fmt.Errorf("failed to update exam state: %w", err)
	}
	if !found {
		return models.NewNotFoundError("Exam not found")
	}

	s.logger.Info().
		Int64("exam_id", examID).
		Bool("active", active).
		Msg("Exam state changed")

	return nil
}

func (s *examService) ListActiveExams(ctx context.Context) ([]models.ExamSummary, error) {
	exams, err := s.store.Exams().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active exams: %w", err)
	}

	summaries := make([]models.ExamSummary, 0, len(exams))
	for i := range exams {
		summaries = append(summaries, exams[i].Summary())
	}
	return summaries, nil
}

func (s *examService) GetQuestions(ctx context.Context, examID int64) ([]models.PublicQuestion, error) {
	questions, err := s.store.Questions().ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	public := make([]models.PublicQuestion, 0, len(questions))
	for i := range questions {
		public = append(public, questions[i].Public())
	}
	return public, nil
}

func (s *examService) GetExamInfo(ctx context.Context, examID int64) (*models.ExamInfo, error) {
	exam, err := s.store.Exams().GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	if exam == nil {
		return nil, models.NewNotFoundError("Exam not found")
	}

	info := exam.Info()
	return &info, nil
}

// SubmitExam scores the answers against the exam's own questions and
// records the attempt. Letters are case-folded. Answers that are not an
// option letter, or that name an unknown or foreign question, are ignored.
func (s *examService) SubmitExam(ctx context.Context, examID int64, req *models.SubmitExamRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	exists, err := s.store.Exams().Exists(ctx, examID)
	if err != nil {
		return 0, fmt.Errorf("failed to check exam: %w", err)
	}
	if !exists {
		return 0, models.NewNotFoundError("Exam not found")
	}

	studentID := req.StudentID.Int64()
	score := 0

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		score = 0
		for rawID, answer := range req.Answers {
			letter := models.NormalizeOption(answer)
			if !models.IsValidOption(letter) {
				continue
			}
			questionID, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
			if err != nil {
				continue
			}

			question, err := tx.Questions().GetInExam(ctx, examID, questionID)
			if err != nil {
				return fmt.Errorf("failed to get question: %w", err)
			}
			if question == nil {
				continue
			}

			if question.CorrectOption == letter {
				score++
			}
		}

		student, err := tx.Students().LockByID(ctx, studentID)
		if err != nil {
			return fmt.Errorf("failed to get student: %w", err)
		}
		if student == nil {
			return models.NewValidationError("Invalid student ID")
		}

		attempt := &models.ExamAttempt{
			ExamID:      examID,
			StudentID:   studentID,
			Score:       score,
			SubmittedAt: time.Now().UTC(),
		}
		if err := tx.Attempts().Create(ctx, attempt); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		if err := tx.Students().AddScore(ctx, studentID, score, score*XPPerCorrectAnswer); err != nil {
			return fmt.Errorf("failed to update student score: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("exam_id", examID).
		Int64("student_id", studentID).
		Int("score", score).
		Msg("Exam submitted")

	event := &models.ExamSubmittedEvent{
		ExamID:    examID,
		StudentID: studentID,
		Score:     score,
		Timestamp: time.Now().Unix(),
	}
	if err := s.publisher.PublishExamSubmitted(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Int64("exam_id", examID).
			Msg("Failed to publish exam submitted event")
	}

	return score, nil
}

// ListAttempts returns a student's exam attempts, newest first.
func (s *examService) ListAttempts(ctx context.Context, studentID int64) ([]models.ExamAttempt, error) {
	student, err := s.store.Students().GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	attempts, err := s.store.Attempts().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}
