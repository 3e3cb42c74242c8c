package repository

import "github.com/tu-usuario/marketplace-pro/internal/domain/entity"

// ChatMessageRepository puerto de persistencia para el historial del
// chatbot. Append-only: no hay update ni delete.
type ChatMessageRepository interface {
	Create(message *entity.ChatMessage) error
	// ListByUser lista los mensajes de un usuario, más recientes primero.
	ListByUser(userID string, limit, offset int) ([]*entity.ChatMessage, error)
}
