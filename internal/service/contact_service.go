package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const previewLength = 120

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactService stores and manages contact messages.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{contacts: contacts, dispatcher: dispatcher, logger: logger}
}

// Submit stores a message from the public form and announces it.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || strings.TrimSpace(in.Message) == "" {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}

	msg := &domain.ContactMessage{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		event := events.New(events.EventContactReceived, "", events.ContactReceivedPayload{
			MessageID:      msg.ID,
			SenderName:     msg.Name,
			SenderEmail:    msg.Email,
			MessagePreview: preview(msg.Message),
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish contact received", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}
	return msg, nil
}

// List returns messages newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.contacts.List(ctx)
}

// Get returns one message.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	msg, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Contact message")
	}
	return msg, nil
}

// MarkRead sets the read flag.
func (s *ContactService) MarkRead(ctx context.Context, id string, read *bool) (*domain.ContactMessage, error) {
	if read == nil {
		return nil, apperrors.NewValidationError("read is required", nil)
	}
	msg, err := s.contacts.SetRead(ctx, id, *read)
	if err != nil {
		return nil, notFoundOr(err, "Contact message")
	}
	return msg, nil
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Contact message")
	}
	return nil
}

func preview(body string) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= previewLength {
		return string(runes)
	}
	return string(runes[:previewLength]) + "..."
}
