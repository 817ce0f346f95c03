package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const (
	msgSkillFieldsRequired   = "Missing or invalid required fields (name and proficiency are required)"
	msgSkillIDFieldsRequired = "Missing or invalid required fields (id, name, and proficiency are required)"
	msgProficiencyRange      = "Proficiency must be between 0 and 100"
)

// SkillInput carries skill fields. Nil fields are absent from the request.
type SkillInput struct {
	Name        *string
	Proficiency *int
	Icon        *string
}

// SkillService manages skills.
type SkillService struct {
	skills     repository.SkillRepository
	listings   *cache.Listings
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSkillService builds the service.
func NewSkillService(skills repository.SkillRepository, listings *cache.Listings, dispatcher events.Dispatcher, logger *zap.Logger) *SkillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillService{skills: skills, listings: listings, dispatcher: dispatcher, logger: logger}
}

func validProficiency(p int) bool {
	return p >= domain.MinProficiency && p <= domain.MaxProficiency
}

// List returns all skills.
func (s *SkillService) List(ctx context.Context) ([]domain.Skill, error) {
	return cache.GetOrLoad(ctx, s.listings, cache.ListingKey(events.KindSkills), s.skills.List)
}

// Get returns a single skill.
func (s *SkillService) Get(ctx context.Context, id string) (*domain.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Skill")
	}
	return skill, nil
}

// Create stores a new skill.
func (s *SkillService) Create(ctx context.Context, in SkillInput) (*domain.Skill, error) {
	if !hasText(in.Name) || in.Proficiency == nil {
		return nil, apperrors.NewValidationError(msgSkillFieldsRequired, nil)
	}
	if !validProficiency(*in.Proficiency) {
		return nil, apperrors.NewValidationError(msgProficiencyRange, nil)
	}

	skill := &domain.Skill{Name: *in.Name, Proficiency: *in.Proficiency, Icon: in.Icon}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindSkills, skill.ID, events.ActionCreated)
	return skill, nil
}

// Replace overwrites name and proficiency of the skill identified by id. All fields are required.
func (s *SkillService) Replace(ctx context.Context, id string, in SkillInput) (*domain.Skill, error) {
	if strings.TrimSpace(id) == "" || !hasText(in.Name) || in.Proficiency == nil {
		return nil, apperrors.NewValidationError(msgSkillIDFieldsRequired, nil)
	}
	if !validProficiency(*in.Proficiency) {
		return nil, apperrors.NewValidationError(msgProficiencyRange, nil)
	}

	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Skill")
	}
	skill.Name = *in.Name
	skill.Proficiency = *in.Proficiency
	if in.Icon != nil {
		skill.Icon = in.Icon
	}
	return s.save(ctx, skill)
}

// Patch applies only the provided fields.
func (s *SkillService) Patch(ctx context.Context, id string, in SkillInput) (*domain.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Skill")
	}
	if in.Name != nil && !hasText(in.Name) {
		return nil, apperrors.NewValidationError("Name cannot be empty", nil)
	}
	if in.Proficiency != nil && !validProficiency(*in.Proficiency) {
		return nil, apperrors.NewValidationError(msgProficiencyRange, nil)
	}

	if in.Name != nil {
		skill.Name = *in.Name
	}
	if in.Proficiency != nil {
		skill.Proficiency = *in.Proficiency
	}
	if in.Icon != nil {
		skill.Icon = in.Icon
	}
	return s.save(ctx, skill)
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("Missing skill ID", nil)
	}
	if err := s.skills.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Skill")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindSkills, id, events.ActionDeleted)
	return nil
}

func (s *SkillService) save(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, notFoundOr(err, "Skill")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindSkills, skill.ID, events.ActionUpdated)
	return skill, nil
}
