package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-backend/internal/models"
)

func (h *Handler) SignupStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentSignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.authService.SignupStudent(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to sign up student")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Signup successful",
		"student": student.Public(),
	})
}

func (h *Handler) LoginStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.authService.LoginStudent(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to log in student")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"student": student.Public(),
	})
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.studentService.UpdateScore(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to update score")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Score updated",
		"student": student.Public(),
	})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.studentService.UpdateProfile(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"student": student.Public(),
	})
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.Leaderboard(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to get leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, models.PublicStudents(students))
}
