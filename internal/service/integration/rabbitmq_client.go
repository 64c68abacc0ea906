package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/RubachokBoss/school-backend/internal/models"
	"github.com/RubachokBoss/school-backend/pkg/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type rabbitMQPublisher struct {
	conn                  *amqp.Connection
	channel               *amqp.Channel
	exchange              string
	examSubmittedKey      string
	assignmentUploadedKey string
	logger                zerolog.Logger

	mu sync.Mutex
}

func NewRabbitMQPublisher(url, exchange, examSubmittedKey, assignmentUploadedKey string, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := rabbitmq.NewConnection(url)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := rabbitmq.DeclareDirectExchange(channel, exchange); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	logger.Info().
		Str("exchange", exchange).
		Str("exam_submitted_key", examSubmittedKey).
		Str("assignment_uploaded_key", assignmentUploadedKey).
		Msg("Connected to RabbitMQ")

	return &rabbitMQPublisher{
		conn:                  conn,
		channel:               channel,
		exchange:              exchange,
		examSubmittedKey:      examSubmittedKey,
		assignmentUploadedKey: assignmentUploadedKey,
		logger:                logger,
	}, nil
}

func (p *rabbitMQPublisher) PublishExamSubmitted(ctx context.Context, event *models.ExamSubmittedEvent) error {
	if err := p.publish(ctx, p.examSubmittedKey, event); err != nil {
		return err
	}

	p.logger.Info().
		Int64("exam_id", event.ExamID).
		Int64("student_id", event.StudentID).
		Int("score", event.Score).
		Msg("Exam submitted event published")

	return nil
}

func (p *rabbitMQPublisher) PublishAssignmentUploaded(ctx context.Context, event *models.AssignmentUploadedEvent) error {
	if err := p.publish(ctx, p.assignmentUploadedKey, event); err != nil {
		return err
	}

	p.logger.Info().
		Int64("assignment_id", event.AssignmentID).
		Str("filename", event.FileName).
		Msg("Assignment uploaded event published")

	return nil
}

func (p *rabbitMQPublisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		publishCtx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
