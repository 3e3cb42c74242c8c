package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
)

var _ repository.ChatMessageRepository = (*ChatMessageRepo)(nil)

// ChatMessageRepo implementación del puerto ChatMessageRepository sobre
// PostgreSQL.
type ChatMessageRepo struct {
	q Querier
}

// NewChatMessageRepository construye el adaptador para el historial del chat.
func NewChatMessageRepository(q Querier) *ChatMessageRepo {
	return &ChatMessageRepo{q: q}
}

// Create persiste un registro del historial.
func (r *ChatMessageRepo) Create(message *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, user_message, ai_response, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		message.ID, message.UserID, message.UserMessage, message.AIResponse, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// ListByUser lista los mensajes de un usuario, más recientes primero.
func (r *ChatMessageRepo) ListByUser(userID string, limit, offset int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, user_id, user_message, ai_response, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *ChatMessageRepo) scanMany(rows pgx.Rows) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserMessage, &m.AIResponse, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}
