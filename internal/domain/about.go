package domain

import "time"

// About is the single profile record rendered in the about section.
type About struct {
	ID           string
	Bio          string
	ProfileImage string
	Email        string
	Location     string
	ResumeURL    string
	SocialLinks  map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultAbout is stored the first time the about record is requested.
func DefaultAbout() *About {
	return &About{
		Bio:          "Welcome to my portfolio! I am a passionate developer with expertise in web technologies.",
		ProfileImage: "/profile-placeholder.svg",
		Email:        "your.email@example.com",
		Location:     "Your Location",
		SocialLinks:  map[string]string{},
	}
}
