package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// BlogRepository persists blog posts together with their tag links.
// A nil tagNames slice leaves existing links untouched; an empty one clears them.
type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost, tagNames []string) error
	Update(ctx context.Context, post *domain.BlogPost, tagNames []string) error
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type blogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository builds the repository.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{pool: pool}
}

func (r *blogRepository) Create(ctx context.Context, post *domain.BlogPost, tagNames []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO blog_posts (title, description, image_url, published)
            VALUES ($1,$2,$3,$4)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			post.Title,
			post.Description,
			post.ImageURL,
			post.Published,
		).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return err
		}

		tags, err := replaceTags(ctx, tx, post.ID, tagNames)
		if err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
}

func (r *blogRepository) Update(ctx context.Context, post *domain.BlogPost, tagNames []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            UPDATE blog_posts SET title=$1, description=$2, image_url=$3, published=$4, updated_at=NOW()
            WHERE id=$5
            RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			post.Title,
			post.Description,
			post.ImageURL,
			post.Published,
			post.ID,
		).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
			return err
		}

		if tagNames == nil {
			tagsByPost, err := loadTags(ctx, tx, []string{post.ID})
			if err != nil {
				return err
			}
			post.Tags = tagsByPost[post.ID]
			return nil
		}

		tags, err := replaceTags(ctx, tx, post.ID, tagNames)
		if err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	const query = `
        SELECT id, title, description, image_url, published, created_at, updated_at
        FROM blog_posts WHERE id=$1`
	post, err := scanBlogPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	tagsByPost, err := loadTags(ctx, r.pool, []string{post.ID})
	if err != nil {
		return nil, err
	}
	post.Tags = tagsByPost[post.ID]
	return post, nil
}

func (r *blogRepository) List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	const query = `
        SELECT id, title, description, image_url, published, created_at, updated_at
        FROM blog_posts
        WHERE ($1 = FALSE OR published = TRUE)
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	ids := []string{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return posts, nil
	}

	tagsByPost, err := loadTags(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Tags = tagsByPost[posts[i].ID]
	}
	return posts, nil
}

// Delete removes the post; its tag links go with it through ON DELETE CASCADE.
func (r *blogRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func replaceTags(ctx context.Context, tx pgx.Tx, postID string, tagNames []string) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	if tagNames == nil {
		return tags, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM blog_post_tags WHERE blog_post_id=$1`, postID); err != nil {
		return nil, err
	}

	for _, name := range tagNames {
		tag, err := upsertTag(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		const link = `
            INSERT INTO blog_post_tags (blog_post_id, tag_id)
            VALUES ($1,$2)
            ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, link, postID, tag.ID); err != nil {
			return nil, err
		}
	}

	// Read back through loadTags so writes and reads agree on tag order.
	linked, err := loadTags(ctx, tx, []string{postID})
	if err != nil {
		return nil, err
	}
	if got := linked[postID]; got != nil {
		tags = got
	}
	return tags, nil
}

func upsertTag(ctx context.Context, tx pgx.Tx, name string) (*domain.Tag, error) {
	const query = `
        INSERT INTO tags (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
        RETURNING id, name, created_at`
	var tag domain.Tag
	if err := tx.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}

func loadTags(ctx context.Context, q querier, postIDs []string) (map[string][]domain.Tag, error) {
	const query = `
        SELECT bpt.blog_post_id, t.id, t.name, t.created_at
        FROM blog_post_tags bpt
        JOIN tags t ON t.id = bpt.tag_id
        WHERE bpt.blog_post_id = ANY($1::uuid[])
        ORDER BY t.name ASC`
	rows, err := q.Query(ctx, query, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.Tag, len(postIDs))
	for _, id := range postIDs {
		result[id] = []domain.Tag{}
	}
	for rows.Next() {
		var (
			postID string
			tag    domain.Tag
		)
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		result[postID] = append(result[postID], tag)
	}
	return result, rows.Err()
}

func scanBlogPost(row pgx.Row) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.ImageURL,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}
