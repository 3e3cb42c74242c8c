package dto

import "time"

// ChatQueryRequest entrada del chatbot.
type ChatQueryRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ChatQueryResponse salida del chatbot. MessageID queda vacío y Warning
// true si la respuesta se generó pero el historial no pudo persistirse:
// la entrega del chat nunca se bloquea por el log de auditoría.
type ChatQueryResponse struct {
	MessageID string `json:"id,omitempty"`
	Message   string `json:"message"`
	Response  string `json:"response"`
	Intent    string `json:"intent"`
	Warning   bool   `json:"warning,omitempty"`
}

// ChatMessageResponse un registro del historial.
type ChatMessageResponse struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatHistoryResponse historial paginado, más recientes primero.
type ChatHistoryResponse struct {
	Items []ChatMessageResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
