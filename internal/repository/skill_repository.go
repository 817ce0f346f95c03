package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// SkillRepository manages skills.
type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	Update(ctx context.Context, skill *domain.Skill) error
	GetByID(ctx context.Context, id string) (*domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
	Delete(ctx context.Context, id string) error
}

type skillRepository struct {
	pool *pgxpool.Pool
}

// NewSkillRepository builds the repository.
func NewSkillRepository(pool *pgxpool.Pool) SkillRepository {
	return &skillRepository{pool: pool}
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	const query = `
        INSERT INTO skills (name, proficiency, icon)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		skill.Name,
		skill.Proficiency,
		skill.Icon,
	).Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
}

func (r *skillRepository) Update(ctx context.Context, skill *domain.Skill) error {
	const query = `
        UPDATE skills SET name=$1, proficiency=$2, icon=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		skill.Name,
		skill.Proficiency,
		skill.Icon,
		skill.ID,
	).Scan(&skill.CreatedAt, &skill.UpdatedAt)
}

func (r *skillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	const query = `
        SELECT id, name, proficiency, icon, created_at, updated_at
        FROM skills WHERE id=$1`
	var skill domain.Skill
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Proficiency,
		&skill.Icon,
		&skill.CreatedAt,
		&skill.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) List(ctx context.Context) ([]domain.Skill, error) {
	const query = `
        SELECT id, name, proficiency, icon, created_at, updated_at
        FROM skills ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Skill{}
	for rows.Next() {
		var skill domain.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Proficiency, &skill.Icon, &skill.CreatedAt, &skill.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, skill)
	}
	return result, rows.Err()
}

func (r *skillRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
