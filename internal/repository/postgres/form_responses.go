package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/repository"
)

// FormResponseRepository is the Postgres-backed implementation of
// repository.FormResponseRepository.
type FormResponseRepository struct {
	pool *pgxpool.Pool
}

// NewFormResponseRepository instantiates the repository.
func NewFormResponseRepository(pool *pgxpool.Pool) *FormResponseRepository {
	return &FormResponseRepository{pool: pool}
}

func (r *FormResponseRepository) Create(ctx context.Context, response *domain.FormResponse) error {
	const query = `
        INSERT INTO form_responses (form_id, data, status, created_by_id, assigned_user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		response.FormID,
		response.Data,
		response.Status,
		response.CreatedByID,
		response.AssignedUserID,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)
}

func (r *FormResponseRepository) GetByID(ctx context.Context, id int64) (*domain.FormResponse, error) {
	const query = `
        SELECT id, form_id, data, status, created_by_id, assigned_user_id, created_at, updated_at
        FROM form_responses WHERE id=$1`

	var response domain.FormResponse
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&response.ID,
		&response.FormID,
		&response.Data,
		&response.Status,
		&response.CreatedByID,
		&response.AssignedUserID,
		&response.CreatedAt,
		&response.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

func (r *FormResponseRepository) Update(ctx context.Context, response *domain.FormResponse) error {
	const query = `
        UPDATE form_responses
        SET data=$1, status=$2, assigned_user_id=$3, updated_at=GREATEST(NOW(), updated_at)
        WHERE id=$4
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		response.Data,
		response.Status,
		response.AssignedUserID,
		response.ID,
	).Scan(&response.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}
