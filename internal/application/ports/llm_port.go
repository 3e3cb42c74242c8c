package ports

import "context"

// LLMService define el puerto de salida hacia el backend LLM remoto del
// chatbot. Cualquier adaptador (OpenAI, Anthropic, Ollama, mock) debe
// implementar esta interfaz; la aplicación solo conoce este contrato.
//
// El orquestador solo delega aquí la intención general: las respuestas
// deterministas de producto siempre se generan localmente.
type LLMService interface {
	// GenerateReply envía el prompt de sistema (que embebe el catálogo
	// formateado) y el mensaje del usuario, y devuelve el texto de la
	// respuesta. El contexto debe llevar timeout; cualquier fallo debe
	// retornar error en lugar de colgarse.
	GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
