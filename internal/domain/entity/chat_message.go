package entity

import "time"

// ChatMessage es el registro de auditoría de una interacción con el chatbot:
// el mensaje del usuario y la respuesta generada (remota o local) juntos.
// Append-only: nunca se muta ni se borra desde el core; se consulta por
// usuario en orden cronológico inverso.
type ChatMessage struct {
	ID          string
	UserID      string
	UserMessage string
	AIResponse  string
	CreatedAt   time.Time
}
