package models

import (
	"testing"
	"time"
)

func TestAssignmentResponse(t *testing.T) {
	a := Assignment{
		ID:          7,
		Subject:     "Maths",
		FileName:    "1a2b3c4d_homework.pdf",
		TeacherName: "Mr Smith",
		CreatedAt:   time.Date(2024, 3, 9, 14, 5, 59, 0, time.UTC),
	}

	got := a.Response("http://localhost:5000/")

	if got.Date != "2024-03-09 14:05" {
		t.Errorf("Date = %q, want 2024-03-09 14:05", got.Date)
	}
	if got.URL != "http://localhost:5000/uploads/1a2b3c4d_homework.pdf" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.ID != 7 || got.Subject != "Maths" || got.TeacherName != "Mr Smith" {
		t.Errorf("unexpected response %+v", got)
	}
}
