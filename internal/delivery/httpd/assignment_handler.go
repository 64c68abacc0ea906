package httpd

import (
	"errors"
	"net/http"

	"github.com/RubachokBoss/school-backend/internal/middleware"
	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	assignmentFileField = "assignment_file"
	multipartMemory     = 8 << 20
	multipartOverhead   = 1 << 20
)

func (h *Handler) UploadAssignment(w http.ResponseWriter, r *http.Request) {
	if h.options.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadSize+multipartOverhead)
	}

	var tooLarge *http.MaxBytesError
	err := r.ParseMultipartForm(multipartMemory)
	switch {
	case err == nil:
		defer r.MultipartForm.RemoveAll()
	case errors.Is(err, http.ErrNotMultipart):
		// Plain forms carry no file; the service reports what is missing.
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusBadRequest, "File too large")
		return
	default:
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var upload *models.UploadedFile
	file, header, err := r.FormFile(assignmentFileField)
	switch {
	case err == nil:
		defer file.Close()
		upload = &models.UploadedFile{
			Name:    header.Filename,
			Size:    header.Size,
			Content: file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	assignment, err := h.assignmentService.Upload(r.Context(), r.FormValue("subject"), r.FormValue("teacher_name"), upload)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			writeError(w, http.StatusBadRequest, models.Message(err, "Bad request"))
			return
		}
		log := middleware.LoggerFromContext(r.Context(), h.logger)
		log.Error().Err(err).Msg("Failed to upload assignment")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Assignment uploaded successfully",
		"assignment": assignment.Response(h.options.PublicURL),
	})
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to list assignments")
		return
	}

	response := make([]models.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		response = append(response, assignments[i].Response(h.options.PublicURL))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	file, err := h.assignmentService.Open(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		h.handleError(w, r, err, "Failed to open uploaded file")
		return
	}
	defer file.Content.Close()

	w.Header().Set("Content-Type", file.ContentType)
	if file.Checksum != "" {
		w.Header().Set("ETag", `"`+file.Checksum+`"`)
	}

	http.ServeContent(w, r, file.Name, file.ModTime, file.Content)
}
