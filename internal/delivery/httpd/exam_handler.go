package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-backend/internal/models"
)

const examNotFound = "Exam not found"

func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exam, err := h.examService.CreateExam(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to create exam")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"exam_id": exam.ID,
	})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	var req models.AddQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.examService.AddQuestion(r.Context(), examID, &req); err != nil {
		h.handleError(w, r, err, "Failed to add question")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Question added",
	})
}

func (h *Handler) StartExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	if err := h.examService.StartExam(r.Context(), examID); err != nil {
		h.handleError(w, r, err, "Failed to start exam")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exam started",
	})
}

func (h *Handler) StopExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	if err := h.examService.StopExam(r.Context(), examID); err != nil {
		h.handleError(w, r, err, "Failed to stop exam")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exam stopped",
	})
}

func (h *Handler) ListActiveExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.examService.ListActiveExams(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to list active exams")
		return
	}

	writeJSON(w, http.StatusOK, exams)
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	questions, err := h.examService.GetQuestions(r.Context(), examID)
	if err != nil {
		h.handleError(w, r, err, "Failed to get questions")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) GetExamInfo(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	info, err := h.examService.GetExamInfo(r.Context(), examID)
	if err != nil {
		h.handleError(w, r, err, "Failed to get exam")
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) SubmitExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, examNotFound)
		return
	}

	var req models.SubmitExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	score, err := h.examService.SubmitExam(r.Context(), examID, &req)
	if err != nil {
		h.handleError(w, r, err, "Failed to submit exam")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exam submitted",
		"score":   score,
	})
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	studentID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	attempts, err := h.examService.ListAttempts(r.Context(), studentID)
	if err != nil {
		h.handleError(w, r, err, "Failed to list attempts")
		return
	}

	writeJSON(w, http.StatusOK, attempts)
}
