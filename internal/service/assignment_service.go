package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/RubachokBoss/school-backend/internal/service/integration"
	"github.com/RubachokBoss/school-backend/internal/service/storage"
	"github.com/RubachokBoss/school-backend/pkg/hash"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultTeacherName = "Unknown Teacher"

// MaxSanitizedNameLength bounds SanitizeFileName so generated names fit
// filesystem limits and the 255-character filename column.
const MaxSanitizedNameLength = 200

type AssignmentService interface {
	Upload(ctx context.Context, subject, teacherName string, file *models.UploadedFile) (*models.Assignment, error)
	List(ctx context.Context) ([]models.Assignment, error)
	Open(ctx context.Context, fileName string) (*StoredFile, error)
}

type AssignmentConfig struct {
	MaxUploadSize     int64
	AllowedExtensions []string
}

// StoredFile is an uploaded file ready to be streamed back. Checksum is
// empty when the file has no assignment row.
type StoredFile struct {
	Name     string
	Checksum string
	*storage.Object
}

type assignmentService struct {
	store     repository.Store
	storage   storage.Storage
	hasher    *hash.FileHasher
	publisher integration.EventPublisher
	config    AssignmentConfig
	allowed   map[string]bool
	logger    zerolog.Logger
}

func NewAssignmentService(
	store repository.Store,
	fileStorage storage.Storage,
	hasher *hash.FileHasher,
	publisher integration.EventPublisher,
	config AssignmentConfig,
	logger zerolog.Logger,
) AssignmentService {
	allowed := make(map[string]bool, len(config.AllowedExtensions))
	for _, ext := range config.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	return &assignmentService{
		store:     store,
		storage:   fileStorage,
		hasher:    hasher,
		publisher: publisher,
		config:    config,
		allowed:   allowed,
		logger:    logger,
	}
}

func (s *assignmentService) Upload(ctx context.Context, subject, teacherName string, file *models.UploadedFile) (*models.Assignment, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, models.NewValidationError("Subject missing")
	}
	if file == nil {
		return nil, models.NewValidationError("No file provided")
	}
	if strings.TrimSpace(file.Name) == "" || file.Size == 0 {
		return nil, models.NewValidationError("Empty file")
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if !s.allowed[ext] {
		return nil, models.NewValidationError("Invalid file type")
	}
	if s.config.MaxUploadSize > 0 && file.Size > s.config.MaxUploadSize {
		return nil, models.NewValidationError("File too large")
	}

	teacherName = strings.TrimSpace(teacherName)
	if teacherName == "" {
		teacherName = DefaultTeacherName
	}

	fileName := GenerateFileName(file.Name)
	digest := s.hasher.NewDigest()
	content := io.TeeReader(file.Content, digest)

	if err := s.storage.Save(ctx, fileName, content, file.Size, storage.DetectContentType(fileName)); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	assignment := &models.Assignment{
		Subject:      subject,
		FileName:     fileName,
		OriginalName: file.Name,
		TeacherName:  teacherName,
		Checksum:     digest.Sum(),
		FileSize:     digest.Size(),
		CreatedAt:    time.Now().UTC(),
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Assignments().Create(ctx, assignment)
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, fileName); delErr != nil {
			s.logger.Error().Err(delErr).Str("file", fileName).Msg("Failed to remove orphaned upload")
		}
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", assignment.ID).
		Str("subject", assignment.Subject).
		Str("file", assignment.FileName).
		Str("checksum", assignment.Checksum).
		Str("algorithm", string(s.hasher.Algorithm())).
		Int64("size", assignment.FileSize).
		Msg("Assignment uploaded")

	event := &models.AssignmentUploadedEvent{
		AssignmentID: assignment.ID,
		Subject:      assignment.Subject,
		TeacherName:  assignment.TeacherName,
		FileName:     assignment.FileName,
		Checksum:     assignment.Checksum,
		Timestamp:    assignment.CreatedAt.Unix(),
	}
	if err := s.publisher.PublishAssignmentUploaded(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Int64("assignment_id", assignment.ID).
			Msg("Failed to publish assignment uploaded event")
	}

	return assignment, nil
}

func (s *assignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.store.Assignments().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) Open(ctx context.Context, fileName string) (*StoredFile, error) {
	if !storage.ValidName(fileName) {
		return nil, models.NewNotFoundError("File not found")
	}

	object, err := s.storage.Open(ctx, fileName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, models.NewNotFoundError("File not found")
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	file := &StoredFile{Name: fileName, Object: object}

	assignment, err := s.store.Assignments().GetByFileName(ctx, fileName)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", fileName).Msg("Failed to load assignment metadata")
	} else if assignment != nil {
		file.Checksum = assignment.Checksum
	}

	return file, nil
}

// GenerateFileName prefixes a sanitized copy of the client's file name with
// eight hex characters of a random UUID.
func GenerateFileName(original string) string {
	return uuid.New().String()[:8] + "_" + SanitizeFileName(original)
}

// SanitizeFileName keeps the base name only and drops every character
// outside [A-Za-z0-9._-]. Spaces become underscores. Long names lose the end
// of their stem but keep the extension.
func SanitizeFileName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" || strings.HasPrefix(cleaned, ".") {
		return "file"
	}

	if len(cleaned) > MaxSanitizedNameLength {
		ext := filepath.Ext(cleaned)
		if len(ext) > 16 {
			ext = ""
		}
		stem := strings.TrimRight(cleaned[:MaxSanitizedNameLength-len(ext)], "._")
		if stem == "" {
			stem = "file"
		}
		cleaned = stem + ext
	}
	return cleaned
}
