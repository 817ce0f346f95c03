package domain

import "time"

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
