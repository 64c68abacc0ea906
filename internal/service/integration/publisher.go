package integration

import (
	"context"

	"github.com/RubachokBoss/school-backend/internal/models"
)

// EventPublisher announces domain events to other systems. Publishing is
// best effort; callers log failures and carry on.
type EventPublisher interface {
	PublishExamSubmitted(ctx context.Context, event *models.ExamSubmittedEvent) error
	PublishAssignmentUploaded(ctx context.Context, event *models.AssignmentUploadedEvent) error
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishExamSubmitted(context.Context, *models.ExamSubmittedEvent) error {
	return nil
}

func (noopPublisher) PublishAssignmentUploaded(context.Context, *models.AssignmentUploadedEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
