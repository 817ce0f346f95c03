package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	SetRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository builds the repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (name, email, message)
        VALUES ($1,$2,$3)
        RETURNING id, read, created_at`
	return r.pool.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message).
		Scan(&msg.ID, &msg.Read, &msg.CreatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	const query = `
        SELECT id, name, email, message, read, created_at
        FROM contact_messages WHERE id=$1`
	return scanContact(r.pool.QueryRow(ctx, query, id))
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const query = `
        SELECT id, name, email, message, read, created_at
        FROM contact_messages ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ContactMessage{}
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func (r *contactRepository) SetRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error) {
	const query = `
        UPDATE contact_messages SET read=$1
        WHERE id=$2
        RETURNING id, name, email, message, read, created_at`
	return scanContact(r.pool.QueryRow(ctx, query, read, id))
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanContact(row pgx.Row) (*domain.ContactMessage, error) {
	var msg domain.ContactMessage
	if err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.Read, &msg.CreatedAt); err != nil {
		return nil, err
	}
	return &msg, nil
}
