package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/RubachokBoss/school-backend/internal/middleware"
	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// PublicURL is the externally reachable origin used to build file URLs.
	PublicURL     string
	MaxUploadSize int64
}

type Handler struct {
	authService       service.AuthService
	examService       service.ExamService
	dashboardService  service.DashboardService
	studentService    service.StudentService
	assignmentService service.AssignmentService
	db                Pinger
	options           Options
	logger            zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	examService service.ExamService,
	dashboardService service.DashboardService,
	studentService service.StudentService,
	assignmentService service.AssignmentService,
	db Pinger,
	options Options,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		examService:       examService,
		dashboardService:  dashboardService,
		studentService:    studentService,
		assignmentService: assignmentService,
		db:                db,
		options:           options,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Post("/Signup", h.SignupStudent)
	router.Post("/Login", h.LoginStudent)
	router.Post("/TeacherSignup", h.SignupTeacher)
	router.Post("/TeacherLogin", h.LoginTeacher)
	router.Get("/teacher/dashboard", h.TeacherDashboard)

	router.Post("/scoreupdate", h.UpdateScore)
	router.Post("/profilesupdate", h.UpdateProfile)
	router.Get("/leaderboard", h.Leaderboard)
	router.Get("/students/{id}/attempts", h.ListAttempts)

	router.Post("/assign_work", h.UploadAssignment)
	router.Get("/assignments", h.ListAssignments)
	router.Get("/uploads/{filename}", h.ServeUpload)

	router.Get("/exams/active", h.ListActiveExams)
	router.Route("/exam", func(r chi.Router) {
		r.Post("/create", h.CreateExam)
		r.Get("/{id}", h.GetExamInfo)
		r.Post("/{id}/add-question", h.AddQuestion)
		r.Post("/{id}/start", h.StartExam)
		r.Post("/{id}/stop", h.StopExam)
		r.Get("/{id}/questions", h.GetQuestions)
		r.Post("/{id}/submit", h.SubmitExam)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "school-backend",
		"timestamp": time.Now().UTC(),
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Database health check failed")
		response["status"] = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// decodeJSON reports false after writing a 400 response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	if errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "No JSON received")
	} else {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
	}
	return false
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleError maps domain error kinds onto status codes. Anything else is
// logged and reported as a 500.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
		writeError(w, http.StatusBadRequest, models.Message(err, "Bad request"))
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, models.Message(err, "Unauthorized"))
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, models.Message(err, "Not found"))
	default:
		log := middleware.LoggerFromContext(r.Context(), h.logger)
		log.Error().Err(err).Msg(action)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
