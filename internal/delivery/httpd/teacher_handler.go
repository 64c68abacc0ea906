package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-backend/internal/models"
)

func (h *Handler) SignupTeacher(w http.ResponseWriter, r *http.Request) {
	var req models.TeacherSignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teacher, err := h.authService.SignupTeacher(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to sign up teacher")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Signup successful",
		"teacher": teacher.Public(),
	})
}

func (h *Handler) LoginTeacher(w http.ResponseWriter, r *http.Request) {
	var req models.TeacherLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teacher, err := h.authService.LoginTeacher(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to log in teacher")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"teacher": teacher.Public(),
	})
}

func (h *Handler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetTeacherDashboard(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.handleError(w, r, err, "Failed to build teacher dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
