package dto

import (
	"time"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// BlogRequest is the body of blog writes. A nil Tags leaves existing links alone.
type BlogRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Published   *bool    `json:"published"`
	Tags        []string `json:"tags"`
}

func (r BlogRequest) Input() service.BlogInput {
	return service.BlogInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Published:   r.Published,
		Tags:        r.Tags,
	}
}

// TagRequest payload.
type TagRequest struct {
	Name string `json:"name"`
}

// TagResponse payload.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogPostResponse payload.
type BlogPostResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    *string       `json:"imageUrl"`
	Published   bool          `json:"published"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func FromTag(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func FromTags(items []domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(items))
	for i := range items {
		out = append(out, FromTag(&items[i]))
	}
	return out
}

func FromBlogPost(p *domain.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Published:   p.Published,
		Tags:        FromTags(p.Tags),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromBlogPosts(items []domain.BlogPost) []BlogPostResponse {
	out := make([]BlogPostResponse, 0, len(items))
	for i := range items {
		out = append(out, FromBlogPost(&items[i]))
	}
	return out
}
