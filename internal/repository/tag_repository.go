package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

const uniqueViolation = "23505"

// TagRepository manages blog tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
}

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository builds the repository.
func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &tagRepository{pool: pool}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	const query = `INSERT INTO tags (name) VALUES ($1) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, tag.Name).Scan(&tag.ID, &tag.CreatedAt)
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags WHERE name=$1`
	var tag domain.Tag
	if err := r.pool.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, rows.Err()
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
