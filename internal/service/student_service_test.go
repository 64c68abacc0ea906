package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/rs/zerolog"
)

func TestLeaderboardOrder(t *testing.T) {
	store, auth := newTestAuth(t)
	students := NewStudentService(store, newTestHasher(t), zerolog.Nop())
	ctx := context.Background()

	for name, score := range map[string]int{"low": 10, "mid": 50, "top": 90} {
		signupStudent(t, auth, name, "Hill", "7A")
		if _, err := students.UpdateScore(ctx, &models.ScoreUpdateRequest{Name: name, Score: models.FlexInt(score)}); err != nil {
			t.Fatalf("UpdateScore(%q) error = %v", name, err)
		}
	}

	board, err := students.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}

	want := []int{90, 50, 10}
	if len(board) != len(want) {
		t.Fatalf("leaderboard has %d entries, want %d", len(board), len(want))
	}
	for i, score := range want {
		if board[i].Score != score {
			t.Errorf("board[%d].Score = %d, want %d", i, board[i].Score, score)
		}
	}
}

func TestUpdateScore(t *testing.T) {
	store, auth := newTestAuth(t)
	students := NewStudentService(store, newTestHasher(t), zerolog.Nop())
	ctx := context.Background()
	signupStudent(t, auth, "hal", "Hill", "7A")

	st, err := students.UpdateScore(ctx, &models.ScoreUpdateRequest{Name: "hal", Score: 7})
	if err != nil {
		t.Fatalf("UpdateScore() error = %v", err)
	}
	st, _ = students.UpdateScore(ctx, &models.ScoreUpdateRequest{Name: "hal", Score: -2})
	if st.Score != 5 {
		t.Errorf("Score = %d, want 5", st.Score)
	}

	_, err = students.UpdateScore(ctx, &models.ScoreUpdateRequest{Name: "ghost", Score: 1})
	if !errors.Is(err, models.ErrNotFound) || models.Message(err, "") != "User not found" {
		t.Errorf("unknown user error = %v, want User not found", err)
	}
}

func TestUpdateProfileOnlyPresentFields(t *testing.T) {
	store, auth := newTestAuth(t)
	students := NewStudentService(store, newTestHasher(t), zerolog.Nop())
	ctx := context.Background()
	signupStudent(t, auth, "ivy", "Hill", "7A")

	class := "8C"
	updated, err := students.UpdateProfile(ctx, &models.ProfileUpdateRequest{Name: "ivy", ClassOfStudy: &class})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.ClassOfStudy != "8C" || updated.SchoolName != "Hill" || updated.Age != 14 {
		t.Errorf("profile = %+v", updated)
	}

	password := "new-secret"
	age := models.FlexInt(15)
	if _, err := students.UpdateProfile(ctx, &models.ProfileUpdateRequest{Name: "ivy", Age: &age, Password: &password}); err != nil {
		t.Fatalf("UpdateProfile(password) error = %v", err)
	}

	if _, err := auth.LoginStudent(ctx, &models.StudentLoginRequest{Identifier: "ivy", Password: "new-secret"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := auth.LoginStudent(ctx, &models.StudentLoginRequest{Identifier: "ivy", Password: "pw-ivy"}); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("old password still accepted: %v", err)
	}

	stored, _ := store.Students().GetByName(ctx, "ivy")
	if stored.Age != 15 || stored.ClassOfStudy != "8C" {
		t.Errorf("stored profile = %+v", stored)
	}

	if _, err := students.UpdateProfile(ctx, &models.ProfileUpdateRequest{Name: "nobody"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown user error = %v, want not found", err)
	}
}
