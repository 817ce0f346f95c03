package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ProjectRepository manages portfolio projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository builds the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, title, description, image, technologies, github_url, live_url, featured, sort_order, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description, image, technologies, github_url, live_url, featured, sort_order)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Image,
		project.Technologies,
		project.GithubURL,
		project.LiveURL,
		project.Featured,
		project.Order,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET title=$1, description=$2, image=$3, technologies=$4, github_url=$5,
            live_url=$6, featured=$7, sort_order=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Image,
		project.Technologies,
		project.GithubURL,
		project.LiveURL,
		project.Featured,
		project.Order,
		project.ID,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY sort_order ASC, created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Image,
		&project.Technologies,
		&project.GithubURL,
		&project.LiveURL,
		&project.Featured,
		&project.Order,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}
