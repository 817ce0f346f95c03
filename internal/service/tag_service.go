package service

import (
	"context"
	"strings"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// TagService manages blog tags.
type TagService struct {
	tags repository.TagRepository
}

// NewTagService builds the service.
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// List returns tags sorted by name.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// Create stores a new tag. Duplicate names yield a conflict carrying the existing tag.
func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Tag name is required", nil)
	}

	existing, err := s.tags.GetByName(ctx, name)
	if err == nil {
		return nil, tagConflict(existing)
	}
	if !apperrors.IsNoRows(err) {
		return nil, err
	}

	tag := &domain.Tag{Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		if repository.IsUniqueViolation(err) {
			if existing, getErr := s.tags.GetByName(ctx, name); getErr == nil {
				return nil, tagConflict(existing)
			}
			return nil, apperrors.NewConflict("Tag already exists", nil)
		}
		return nil, err
	}
	return tag, nil
}

func tagConflict(tag *domain.Tag) error {
	return apperrors.NewConflict("Tag already exists", map[string]any{
		"tag": map[string]any{"id": tag.ID, "name": tag.Name, "createdAt": tag.CreatedAt},
	})
}
