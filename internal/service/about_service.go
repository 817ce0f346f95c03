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

// AboutInput carries the about fields. Bio, ProfileImage and Email are required.
type AboutInput struct {
	Bio          *string
	ProfileImage *string
	Email        *string
	Location     *string
	ResumeURL    *string
	SocialLinks  map[string]string
}

// AboutService manages the single about record.
type AboutService struct {
	about      repository.AboutRepository
	listings   *cache.Listings
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAboutService builds the service.
func NewAboutService(about repository.AboutRepository, listings *cache.Listings, dispatcher events.Dispatcher, logger *zap.Logger) *AboutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AboutService{about: about, listings: listings, dispatcher: dispatcher, logger: logger}
}

// Get returns the about record, creating the default one on first access.
func (s *AboutService) Get(ctx context.Context) (*domain.About, error) {
	return cache.GetOrLoad(ctx, s.listings, cache.ListingKey(events.KindAbout), s.load)
}

func (s *AboutService) load(ctx context.Context) (*domain.About, error) {
	about, err := s.about.GetFirst(ctx)
	if err == nil {
		return about, nil
	}
	if !apperrors.IsNoRows(err) {
		return nil, err
	}

	about = domain.DefaultAbout()
	if err := s.about.Create(ctx, about); err != nil {
		return nil, err
	}
	s.logger.Info("created default about record", zap.String("about_id", about.ID))
	return about, nil
}

// Upsert updates the existing record or creates it. created reports which happened.
func (s *AboutService) Upsert(ctx context.Context, in AboutInput) (about *domain.About, created bool, err error) {
	if missing := missingFields(
		field{"bio", hasText(in.Bio)},
		field{"profileImage", hasText(in.ProfileImage)},
		field{"email", hasText(in.Email)},
	); len(missing) > 0 {
		return nil, false, apperrors.NewValidationError("Missing required fields", map[string]any{"missing": missing})
	}

	existing, err := s.about.GetFirst(ctx)
	switch {
	case err == nil:
		applyAbout(existing, in)
		if err := s.about.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		publishContentChanged(ctx, s.dispatcher, s.logger, events.KindAbout, existing.ID, events.ActionUpdated)
		return existing, false, nil
	case apperrors.IsNoRows(err):
		fresh := &domain.About{SocialLinks: map[string]string{}}
		applyAbout(fresh, in)
		if err := s.about.Create(ctx, fresh); err != nil {
			return nil, false, err
		}
		publishContentChanged(ctx, s.dispatcher, s.logger, events.KindAbout, fresh.ID, events.ActionCreated)
		return fresh, true, nil
	default:
		return nil, false, err
	}
}

func applyAbout(about *domain.About, in AboutInput) {
	about.Bio = *in.Bio
	about.ProfileImage = *in.ProfileImage
	about.Email = *in.Email
	if in.Location != nil {
		about.Location = *in.Location
	}
	if in.ResumeURL != nil {
		about.ResumeURL = *in.ResumeURL
	}
	if in.SocialLinks != nil {
		about.SocialLinks = in.SocialLinks
	}
}
