package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// ProjectRequest is the body of project create and update. Absent fields stay nil.
type ProjectRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Technologies []string `json:"technologies"`
	GithubURL    *string  `json:"githubUrl"`
	LiveURL      *string  `json:"liveUrl"`
	Featured     *bool    `json:"featured"`
	Order        *int     `json:"order"`
}

func (r ProjectRequest) Input() service.ProjectInput {
	return service.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Technologies: r.Technologies,
		GithubURL:    r.GithubURL,
		LiveURL:      r.LiveURL,
		Featured:     r.Featured,
		Order:        r.Order,
	}
}

// ProjectResponse payload.
type ProjectResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	GithubURL    string    `json:"githubUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromProject(p *domain.Project) ProjectResponse {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Technologies: tech,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		Featured:     p.Featured,
		Order:        p.Order,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromProjects(items []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for i := range items {
		out = append(out, FromProject(&items[i]))
	}
	return out
}

// SkillRequest is the body of skill writes. ID is only read by the collection-level PUT.
type SkillRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Proficiency *int    `json:"proficiency"`
	Icon        *string `json:"icon"`
}

func (r SkillRequest) Input() service.SkillInput {
	return service.SkillInput{Name: r.Name, Proficiency: r.Proficiency, Icon: r.Icon}
}

// SkillResponse payload.
type SkillResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Proficiency int       `json:"proficiency"`
	Icon        *string   `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromSkill(s *domain.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Proficiency: s.Proficiency,
		Icon:        s.Icon,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromSkills(items []domain.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for i := range items {
		out = append(out, FromSkill(&items[i]))
	}
	return out
}

// AboutRequest is the body of the about upsert.
type AboutRequest struct {
	Bio          *string           `json:"bio"`
	ProfileImage *string           `json:"profileImage"`
	Email        *string           `json:"email"`
	Location     *string           `json:"location"`
	ResumeURL    *string           `json:"resumeUrl"`
	SocialLinks  map[string]string `json:"socialLinks"`
}

func (r AboutRequest) Input() service.AboutInput {
	return service.AboutInput{
		Bio:          r.Bio,
		ProfileImage: r.ProfileImage,
		Email:        r.Email,
		Location:     r.Location,
		ResumeURL:    r.ResumeURL,
		SocialLinks:  r.SocialLinks,
	}
}

// AboutResponse payload.
type AboutResponse struct {
	ID           string            `json:"id"`
	Bio          string            `json:"bio"`
	ProfileImage string            `json:"profileImage"`
	Email        string            `json:"email"`
	Location     string            `json:"location"`
	ResumeURL    string            `json:"resumeUrl"`
	SocialLinks  map[string]string `json:"socialLinks"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func FromAbout(a *domain.About) AboutResponse {
	links := a.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	return AboutResponse{
		ID:           a.ID,
		Bio:          a.Bio,
		ProfileImage: a.ProfileImage,
		Email:        a.Email,
		Location:     a.Location,
		ResumeURL:    a.ResumeURL,
		SocialLinks:  links,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
