package domain

import "time"

// Project is a portfolio showcase entry.
type Project struct {
	ID           string
	Title        string
	Description  string
	Image        string
	Technologies []string
	GithubURL    string
	LiveURL      *string
	Featured     bool
	Order        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
