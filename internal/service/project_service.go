package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// ProjectInput carries project fields. Nil fields are absent from the request.
type ProjectInput struct {
	Title        *string
	Description  *string
	Image        *string
	Technologies []string
	GithubURL    *string
	LiveURL      *string
	Featured     *bool
	Order        *int
}

// ProjectService manages the project showcase.
type ProjectService struct {
	projects   repository.ProjectRepository
	listings   *cache.Listings
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, listings *cache.Listings, dispatcher events.Dispatcher, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{projects: projects, listings: listings, dispatcher: dispatcher, logger: logger}
}

// List returns every project ordered by display order.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return cache.GetOrLoad(ctx, s.listings, cache.ListingKey(events.KindProjects), s.projects.List)
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Project")
	}
	return project, nil
}

// Create stores a new project.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	if missing := missingFields(
		field{"title", hasText(in.Title)},
		field{"description", hasText(in.Description)},
		field{"image", hasText(in.Image)},
		field{"technologies", in.Technologies != nil},
		field{"githubUrl", hasText(in.GithubURL)},
	); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields", map[string]any{"missing": missing})
	}

	project := &domain.Project{
		Title:        *in.Title,
		Description:  *in.Description,
		Image:        *in.Image,
		Technologies: in.Technologies,
		GithubURL:    *in.GithubURL,
		LiveURL:      in.LiveURL,
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Order != nil {
		project.Order = *in.Order
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindProjects, project.ID, events.ActionCreated)
	return project, nil
}

// Update applies the provided fields to an existing project.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Project")
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Image != nil {
		project.Image = *in.Image
	}
	if in.Technologies != nil {
		project.Technologies = in.Technologies
	}
	if in.GithubURL != nil {
		project.GithubURL = *in.GithubURL
	}
	if in.LiveURL != nil {
		project.LiveURL = in.LiveURL
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Order != nil {
		project.Order = *in.Order
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, notFoundOr(err, "Project")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindProjects, project.ID, events.ActionUpdated)
	return project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Project")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindProjects, id, events.ActionDeleted)
	return nil
}
