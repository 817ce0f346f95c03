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

const msgBlogFieldsRequired = "Title and description are required"

// BlogInput carries blog post fields. A nil Tags leaves links unchanged.
type BlogInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Published   *bool
	Tags        []string
}

// BlogQuery selects which posts are listed.
type BlogQuery struct {
	// Public restricts to published posts and is served from the listing cache.
	Public        bool
	PublishedOnly bool
}

// BlogService manages blog posts and their tags.
type BlogService struct {
	posts      repository.BlogRepository
	listings   *cache.Listings
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBlogService builds the service.
func NewBlogService(posts repository.BlogRepository, listings *cache.Listings, dispatcher events.Dispatcher, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{posts: posts, listings: listings, dispatcher: dispatcher, logger: logger}
}

// NormalizeTagNames trims names, drops empty entries and collapses duplicates, keeping first-seen order.
// A nil input stays nil.
func NormalizeTagNames(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// List returns posts newest first.
func (s *BlogService) List(ctx context.Context, q BlogQuery) ([]domain.BlogPost, error) {
	if q.Public {
		return cache.GetOrLoad(ctx, s.listings, cache.ListingKey(events.KindBlog), func(ctx context.Context) ([]domain.BlogPost, error) {
			return s.posts.List(ctx, true)
		})
	}
	return s.posts.List(ctx, q.PublishedOnly)
}

// Get returns a post. Unpublished posts are hidden from public reads.
func (s *BlogService) Get(ctx context.Context, id string, public bool) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Blog post")
	}
	if public && !post.Published {
		return nil, apperrors.NewNotFound("Blog post")
	}
	return post, nil
}

// Create stores a new post and links its tags.
func (s *BlogService) Create(ctx context.Context, in BlogInput) (*domain.BlogPost, error) {
	if !hasText(in.Title) || !hasText(in.Description) {
		return nil, apperrors.NewValidationError(msgBlogFieldsRequired, nil)
	}

	post := &domain.BlogPost{
		Title:       *in.Title,
		Description: *in.Description,
		ImageURL:    in.ImageURL,
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	tags := NormalizeTagNames(in.Tags)
	if tags == nil {
		tags = []string{}
	}
	if err := s.posts.Create(ctx, post, tags); err != nil {
		return nil, err
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindBlog, post.ID, events.ActionCreated)
	return post, nil
}

// Update replaces title and description and applies the optional fields.
func (s *BlogService) Update(ctx context.Context, id string, in BlogInput) (*domain.BlogPost, error) {
	if !hasText(in.Title) || !hasText(in.Description) {
		return nil, apperrors.NewValidationError(msgBlogFieldsRequired, nil)
	}
	return s.apply(ctx, id, in)
}

// Patch applies only the provided fields. Provided title or description must not be blank.
func (s *BlogService) Patch(ctx context.Context, id string, in BlogInput) (*domain.BlogPost, error) {
	if (in.Title != nil && !hasText(in.Title)) || (in.Description != nil && !hasText(in.Description)) {
		return nil, apperrors.NewValidationError("Title and description cannot be empty", nil)
	}
	return s.apply(ctx, id, in)
}

// Delete removes a post with its tag links.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Blog post")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindBlog, id, events.ActionDeleted)
	return nil
}

func (s *BlogService) apply(ctx context.Context, id string, in BlogInput) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Blog post")
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Description != nil {
		post.Description = *in.Description
	}
	if in.ImageURL != nil {
		post.ImageURL = in.ImageURL
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.posts.Update(ctx, post, NormalizeTagNames(in.Tags)); err != nil {
		return nil, notFoundOr(err, "Blog post")
	}
	publishContentChanged(ctx, s.dispatcher, s.logger, events.KindBlog, post.ID, events.ActionUpdated)
	return post, nil
}
