package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// ContactRequest payload from the public form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r ContactRequest) Input() service.ContactInput {
	return service.ContactInput{Name: r.Name, Email: r.Email, Message: r.Message}
}

// MarkReadRequest payload.
type MarkReadRequest struct {
	Read *bool `json:"read"`
}

// ContactMessageResponse payload.
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromContactMessage(m *domain.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func FromContactMessages(items []domain.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(items))
	for i := range items {
		out = append(out, FromContactMessage(&items[i]))
	}
	return out
}
