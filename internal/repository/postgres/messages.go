package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// MessageRepository is the Postgres-backed implementation of
// repository.MessageRepository.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates the repository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (form_response_id, author_id, body, parent_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.FormResponseID,
		message.AuthorID,
		message.Body,
		message.ParentID,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *MessageRepository) ListByResponse(ctx context.Context, responseID int64) ([]domain.Message, error) {
	const query = `
        SELECT id, form_response_id, author_id, body, parent_id, created_at
        FROM messages WHERE form_response_id=$1
        ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	result := make([]domain.Message, 0)
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.FormResponseID,
			&message.AuthorID,
			&message.Body,
			&message.ParentID,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}
