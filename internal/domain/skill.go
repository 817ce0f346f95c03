package domain

import "time"

// Skill bounds for proficiency percentages.
const (
	MinProficiency = 0
	MaxProficiency = 100
)

// Skill is a named proficiency shown in the skills section.
type Skill struct {
	ID          string
	Name        string
	Proficiency int
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
