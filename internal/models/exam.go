package models

import (
	"strings"
	"time"
)

type Exam struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Subject         string    `json:"subject" db:"subject"`
	DurationMinutes int       `json:"duration" db:"duration_minutes"`
	TeacherID       int64     `json:"teacher_id" db:"teacher_id"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ExamSummary is the shape returned by the active exam listing.
type ExamSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Duration int    `json:"duration"`
}

type ExamInfo struct {
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Duration int    `json:"duration"`
}

func (e *Exam) Summary() ExamSummary {
	return ExamSummary{ID: e.ID, Title: e.Title, Subject: e.Subject, Duration: e.DurationMinutes}
}

func (e *Exam) Info() ExamInfo {
	return ExamInfo{Title: e.Title, Subject: e.Subject, Duration: e.DurationMinutes}
}

const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// NormalizeOption upper-cases and trims an answer letter.
func NormalizeOption(letter string) string {
	return strings.ToUpper(strings.TrimSpace(letter))
}

func IsValidOption(letter string) bool {
	switch letter {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	default:
		return false
	}
}

type Question struct {
	ID            int64  `db:"id"`
	ExamID        int64  `db:"exam_id"`
	QuestionText  string `db:"question_text"`
	OptionA       string `db:"option_a"`
	OptionB       string `db:"option_b"`
	OptionC       string `db:"option_c"`
	OptionD       string `db:"option_d"`
	CorrectOption string `db:"correct_option"`
}

// PublicQuestion never carries the correct option.
type PublicQuestion struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	A        string `json:"A"`
	B        string `json:"B"`
	C        string `json:"C"`
	D        string `json:"D"`
}

func (q *Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:       q.ID,
		Question: q.QuestionText,
		A:        q.OptionA,
		B:        q.OptionB,
		C:        q.OptionC,
		D:        q.OptionD,
	}
}

type ExamAttempt struct {
	ID          int64     `json:"id" db:"id"`
	ExamID      int64     `json:"exam_id" db:"exam_id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	Score       int       `json:"score" db:"score"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}
