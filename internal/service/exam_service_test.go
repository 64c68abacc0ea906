package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository/memory"
	"github.com/rs/zerolog"
)

type examFixture struct {
	store     *memory.Store
	auth      AuthService
	exams     ExamService
	publisher *recordingPublisher
	teacher   *models.Teacher
}

func newExamFixture(t *testing.T) *examFixture {
	t.Helper()
	store, auth := newTestAuth(t)
	publisher := &recordingPublisher{}
	return &examFixture{
		store:     store,
		auth:      auth,
		exams:     NewExamService(store, publisher, zerolog.Nop()),
		publisher: publisher,
		teacher:   signupTeacher(t, auth, "t@school.org", "Hill"),
	}
}

func (f *examFixture) createExam(t *testing.T) *models.Exam {
	t.Helper()
	exam, err := f.exams.CreateExam(context.Background(), &models.CreateExamRequest{
		Title:     "Fractions",
		Subject:   "Math",
		Duration:  30,
		TeacherID: models.FlexInt(f.teacher.ID),
	})
	if err != nil {
		t.Fatalf("CreateExam() error = %v", err)
	}
	return exam
}

func (f *examFixture) addQuestion(t *testing.T, examID int64, correct string) int64 {
	t.Helper()
	q, err := f.exams.AddQuestion(context.Background(), examID, &models.AddQuestionRequest{
		Question: "Pick " + correct,
		A:        "a", B: "b", C: "c", D: "d",
		Correct: correct,
	})
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	return q.ID
}

func TestCreateExamUnknownTeacher(t *testing.T) {
	f := newExamFixture(t)

	_, err := f.exams.CreateExam(context.Background(), &models.CreateExamRequest{
		Title: "x", Subject: "y", Duration: 10, TeacherID: 9999,
	})
	if !errors.Is(err, models.ErrNotFound) || models.Message(err, "") != "Teacher not found" {
		t.Fatalf("error = %v, want Teacher not found", err)
	}
}

func TestCreateExamMissingFields(t *testing.T) {
	f := newExamFixture(t)

	_, err := f.exams.CreateExam(context.Background(), &models.CreateExamRequest{Title: "x"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestAddQuestion(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	ctx := context.Background()

	t.Run("lower case answer is normalized", func(t *testing.T) {
		q, err := f.exams.AddQuestion(ctx, exam.ID, &models.AddQuestionRequest{
			Question: "2+2", A: "3", B: "4", C: "5", D: "6", Correct: "b",
		})
		if err != nil {
			t.Fatalf("AddQuestion() error = %v", err)
		}
		if q.CorrectOption != "B" {
			t.Errorf("CorrectOption = %q, want B", q.CorrectOption)
		}
	})

	t.Run("invalid letter", func(t *testing.T) {
		_, err := f.exams.AddQuestion(ctx, exam.ID, &models.AddQuestionRequest{
			Question: "2+2", A: "3", B: "4", C: "5", D: "6", Correct: "E",
		})
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("error = %v, want validation error", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		_, err := f.exams.AddQuestion(ctx, exam.ID+1000, &models.AddQuestionRequest{
			Question: "2+2", A: "3", B: "4", C: "5", D: "6", Correct: "A",
		})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("error = %v, want not found", err)
		}
	})
}

func TestExamLifecycle(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	ctx := context.Background()

	active, _ := f.exams.ListActiveExams(ctx)
	if len(active) != 0 {
		t.Fatalf("new exam is active: %+v", active)
	}

	if err := f.exams.StartExam(ctx, exam.ID); err != nil {
		t.Fatalf("StartExam() error = %v", err)
	}
	if err := f.exams.StartExam(ctx, exam.ID); err != nil {
		t.Fatalf("second StartExam() error = %v", err)
	}

	active, _ = f.exams.ListActiveExams(ctx)
	if len(active) != 1 || active[0].ID != exam.ID || active[0].Duration != 30 {
		t.Fatalf("active exams = %+v", active)
	}

	if err := f.exams.StopExam(ctx, exam.ID); err != nil {
		t.Fatalf("StopExam() error = %v", err)
	}
	active, _ = f.exams.ListActiveExams(ctx)
	if len(active) != 0 {
		t.Fatalf("stopped exam still active: %+v", active)
	}

	if err := f.exams.StartExam(ctx, 424242); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("StartExam(unknown) error = %v, want not found", err)
	}
	if err := f.exams.StopExam(ctx, 424242); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("StopExam(unknown) error = %v, want not found", err)
	}
}

func TestGetExamInfo(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)

	info, err := f.exams.GetExamInfo(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("GetExamInfo() error = %v", err)
	}
	if info.Title != "Fractions" || info.Subject != "Math" || info.Duration != 30 {
		t.Errorf("info = %+v", info)
	}

	if _, err := f.exams.GetExamInfo(context.Background(), exam.ID+99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown exam error = %v, want not found", err)
	}
}

func TestGetQuestionsHidesCorrectOption(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	f.addQuestion(t, exam.ID, "A")
	f.addQuestion(t, exam.ID, "D")

	questions, err := f.exams.GetQuestions(context.Background(), exam.ID)
	if err != nil {
		t.Fatalf("GetQuestions() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	body, _ := json.Marshal(questions)
	if strings.Contains(strings.ToLower(string(body)), "correct") {
		t.Errorf("questions payload leaks the answer: %s", body)
	}

	empty, err := f.exams.GetQuestions(context.Background(), exam.ID+500)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("unknown exam questions = %v, %v; want empty list", empty, err)
	}
}

func TestSubmitExamScoring(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	q1 := f.addQuestion(t, exam.ID, "A")
	q2 := f.addQuestion(t, exam.ID, "B")
	q3 := f.addQuestion(t, exam.ID, "C")
	student := signupStudent(t, f.auth, "dave", "Hill", "7A")
	ctx := context.Background()

	other := f.createExam(t)
	foreign := f.addQuestion(t, other.ID, "A")

	score, err := f.exams.SubmitExam(ctx, exam.ID, &models.SubmitExamRequest{
		StudentID: models.FlexInt(student.ID),
		Answers: map[string]string{
			strconv.FormatInt(q1, 10): "A",
			// Letters are case-folded before comparison.
			strconv.FormatInt(q2, 10): "b",
			strconv.FormatInt(q3, 10): "D",
			// Correct, but belongs to another exam.
			strconv.FormatInt(foreign, 10): "A",
			"not-a-number":                 "A",
			"999999":                       "A",
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam() error = %v", err)
	}
	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}

	updated, _ := f.store.Students().GetByID(ctx, student.ID)
	if updated.Score != 2 || updated.XP != 20 {
		t.Errorf("student score/xp = %d/%d, want 2/20", updated.Score, updated.XP)
	}

	attempts, err := f.exams.ListAttempts(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListAttempts() error = %v", err)
	}
	if len(attempts) != 1 || attempts[0].Score != 2 || attempts[0].ExamID != exam.ID {
		t.Errorf("attempts = %+v", attempts)
	}

	if len(f.publisher.submitted) != 1 || f.publisher.submitted[0].Score != 2 {
		t.Errorf("published events = %+v", f.publisher.submitted)
	}
}

func TestListAttemptsUnknownStudent(t *testing.T) {
	f := newExamFixture(t)
	_, err := f.exams.ListAttempts(context.Background(), 424242)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ListAttempts() error = %v, want not found", err)
	}
}

func TestSubmitExamAnswerMatching(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	own := f.addQuestion(t, exam.ID, "B")
	other := f.createExam(t)
	foreign := f.addQuestion(t, other.ID, "A")
	student := signupStudent(t, f.auth, "erin", "Hill", "7A")

	tests := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"exact letter", map[string]string{strconv.FormatInt(own, 10): "B"}, 1},
		{"lower case", map[string]string{strconv.FormatInt(own, 10): "b"}, 1},
		{"padded", map[string]string{strconv.FormatInt(own, 10): " B "}, 1},
		{"wrong letter", map[string]string{strconv.FormatInt(own, 10): "C"}, 0},
		{"not an option", map[string]string{strconv.FormatInt(own, 10): "E"}, 0},
		{"empty", map[string]string{strconv.FormatInt(own, 10): ""}, 0},
		{"other exam's question", map[string]string{strconv.FormatInt(foreign, 10): "A"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := f.exams.SubmitExam(context.Background(), exam.ID, &models.SubmitExamRequest{
				StudentID: models.FlexInt(student.ID),
				Answers:   tt.answers,
			})
			if err != nil {
				t.Fatalf("SubmitExam() error = %v", err)
			}
			if score != tt.want {
				t.Errorf("score = %d, want %d", score, tt.want)
			}
		})
	}
}

func TestSubmitExamInvalidStudentLeavesNoTrace(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	q1 := f.addQuestion(t, exam.ID, "A")
	student := signupStudent(t, f.auth, "erin", "Hill", "7A")
	ctx := context.Background()

	_, err := f.exams.SubmitExam(ctx, exam.ID, &models.SubmitExamRequest{
		StudentID: models.FlexInt(student.ID + 1000),
		Answers:   map[string]string{strconv.FormatInt(q1, 10): "A"},
	})
	if !errors.Is(err, models.ErrValidation) || models.Message(err, "") != "Invalid student ID" {
		t.Fatalf("error = %v, want Invalid student ID", err)
	}

	unchanged, _ := f.store.Students().GetByID(ctx, student.ID)
	if unchanged.Score != 0 || unchanged.XP != 0 {
		t.Errorf("score/xp changed to %d/%d", unchanged.Score, unchanged.XP)
	}
	attempts, _ := f.store.Attempts().ListByStudent(ctx, student.ID+1000)
	if len(attempts) != 0 {
		t.Errorf("attempt recorded for unknown student: %+v", attempts)
	}
	if len(f.publisher.submitted) != 0 {
		t.Errorf("event published for a rejected submission")
	}
}

func TestSubmitExamUnknownExam(t *testing.T) {
	f := newExamFixture(t)
	student := signupStudent(t, f.auth, "fay", "Hill", "7A")

	_, err := f.exams.SubmitExam(context.Background(), 31337, &models.SubmitExamRequest{
		StudentID: models.FlexInt(student.ID),
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestSubmitExamRepeatedAttemptsAccumulate(t *testing.T) {
	f := newExamFixture(t)
	exam := f.createExam(t)
	q1 := f.addQuestion(t, exam.ID, "C")
	student := signupStudent(t, f.auth, "gus", "Hill", "7A")
	f.publisher.publishFail = errors.New("broker down")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		score, err := f.exams.SubmitExam(ctx, exam.ID, &models.SubmitExamRequest{
			StudentID: models.FlexInt(student.ID),
			Answers:   map[string]string{strconv.FormatInt(q1, 10): "C"},
		})
		if err != nil || score != 1 {
			t.Fatalf("attempt %d: score=%d err=%v", i, score, err)
		}
	}

	updated, _ := f.store.Students().GetByID(ctx, student.ID)
	if updated.Score != 3 || updated.XP != 30 {
		t.Errorf("score/xp = %d/%d, want 3/30", updated.Score, updated.XP)
	}
}
