package repository

import (
	"context"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type CoachMessageRepository struct {
	db DBTX
}

func NewCoachMessageRepository(db DBTX) *CoachMessageRepository {
	return &CoachMessageRepository{db: db}
}

func (r *CoachMessageRepository) Create(ctx context.Context, phone, role, content string) (*models.CoachMessage, error) {
	query := `
		INSERT INTO coach_messages (user_phone, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, role, content, created_at
	`
	var message models.CoachMessage
	err := r.db.QueryRow(ctx, query, phone, role, content).Scan(
		&message.ID,
		&message.Role,
		&message.Content,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListRecent returns up to limit of the latest messages in chronological order.
func (r *CoachMessageRepository) ListRecent(ctx context.Context, phone string, limit int) ([]models.CoachMessage, error) {
	query := `
		SELECT id, role, content, created_at
		FROM (
			SELECT id, role, content, created_at
			FROM coach_messages
			WHERE user_phone = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at, id
	`
	return r.list(ctx, query, phone, limit)
}

func (r *CoachMessageRepository) ListPage(
	ctx context.Context,
	phone string,
	limit int,
	offset int,
) ([]models.CoachMessage, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coach_messages WHERE user_phone = $1`, phone).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, role, content, created_at
		FROM coach_messages
		WHERE user_phone = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	messages, err := r.list(ctx, query, phone, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *CoachMessageRepository) DeleteAll(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM coach_messages WHERE user_phone = $1`, phone)
	return err
}

func (r *CoachMessageRepository) list(ctx context.Context, query string, args ...any) ([]models.CoachMessage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.CoachMessage, 0)
	for rows.Next() {
		var message models.CoachMessage
		if err := rows.Scan(&message.ID, &message.Role, &message.Content, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
