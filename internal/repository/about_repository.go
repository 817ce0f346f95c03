package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// AboutRepository manages the single about record.
type AboutRepository interface {
	// GetFirst returns pgx.ErrNoRows when no record exists yet.
	GetFirst(ctx context.Context) (*domain.About, error)
	Create(ctx context.Context, about *domain.About) error
	Update(ctx context.Context, about *domain.About) error
}

type aboutRepository struct {
	pool *pgxpool.Pool
}

// NewAboutRepository builds the repository.
func NewAboutRepository(pool *pgxpool.Pool) AboutRepository {
	return &aboutRepository{pool: pool}
}

func (r *aboutRepository) GetFirst(ctx context.Context) (*domain.About, error) {
	const query = `
        SELECT id, bio, profile_image, email, location, resume_url, social_links, created_at, updated_at
        FROM about ORDER BY created_at ASC LIMIT 1`
	var about domain.About
	if err := r.pool.QueryRow(ctx, query).Scan(
		&about.ID,
		&about.Bio,
		&about.ProfileImage,
		&about.Email,
		&about.Location,
		&about.ResumeURL,
		&about.SocialLinks,
		&about.CreatedAt,
		&about.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if about.SocialLinks == nil {
		about.SocialLinks = map[string]string{}
	}
	return &about, nil
}

func (r *aboutRepository) Create(ctx context.Context, about *domain.About) error {
	const query = `
        INSERT INTO about (bio, profile_image, email, location, resume_url, social_links)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	if about.SocialLinks == nil {
		about.SocialLinks = map[string]string{}
	}
	return r.pool.QueryRow(ctx, query,
		about.Bio,
		about.ProfileImage,
		about.Email,
		about.Location,
		about.ResumeURL,
		about.SocialLinks,
	).Scan(&about.ID, &about.CreatedAt, &about.UpdatedAt)
}

func (r *aboutRepository) Update(ctx context.Context, about *domain.About) error {
	const query = `
        UPDATE about SET bio=$1, profile_image=$2, email=$3, location=$4, resume_url=$5,
            social_links=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING created_at, updated_at`
	if about.SocialLinks == nil {
		about.SocialLinks = map[string]string{}
	}
	err := r.pool.QueryRow(ctx, query,
		about.Bio,
		about.ProfileImage,
		about.Email,
		about.Location,
		about.ResumeURL,
		about.SocialLinks,
		about.ID,
	).Scan(&about.CreatedAt, &about.UpdatedAt)
	return err
}
