package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/application/ports"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/authz"
	"github.com/tu-usuario/marketplace-pro/internal/domain/chat"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
	"github.com/tu-usuario/marketplace-pro/pkg/logger"
)

const (
	// llmTimeout tope duro por llamada al LLM remoto.
	llmTimeout = 10 * time.Second
	// catalogLimit productos máximos en el contexto del chatbot.
	catalogLimit = 100
	// promptDescChars recorte de descripción dentro del prompt de sistema.
	promptDescChars = 100
)

// ChatUseCase orquesta el chatbot de búsqueda de productos. El flujo es
// determinista primero: clasifica la intención con la tabla de reglas y
// responde localmente sobre el catálogo aprobado visible para el actor.
// Solo la intención general se delega al LLM remoto, y cualquier fallo del
// remoto degrada a la respuesta local sin propagar error al usuario.
type ChatUseCase struct {
	productRepo repository.ProductRepository
	chatRepo    repository.ChatMessageRepository
	llm         ports.LLMService
	log         *logger.Logger
}

// NewChatUseCase construye el orquestador. llm puede ser nil: el chatbot
// opera en modo puramente local.
func NewChatUseCase(productRepo repository.ProductRepository, chatRepo repository.ChatMessageRepository, llm ports.LLMService, log *logger.Logger) *ChatUseCase {
	return &ChatUseCase{productRepo: productRepo, chatRepo: chatRepo, llm: llm, log: log}
}

// Query procesa un mensaje del usuario y devuelve la respuesta del chatbot.
// El historial se persiste con tolerancia a fallos: si el insert falla la
// respuesta se entrega igual con Warning=true y sin MessageID.
func (uc *ChatUseCase) Query(ctx context.Context, actor authz.Actor, in dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}

	catalog, err := uc.loadCatalog(actor)
	if err != nil {
		return nil, err
	}

	intent := chat.Classify(message)
	response := uc.respond(ctx, intent, message, catalog)

	out := &dto.ChatQueryResponse{
		Message:  message,
		Response: response,
		Intent:   string(intent),
	}

	record := &entity.ChatMessage{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		UserMessage: message,
		AIResponse:  response,
		CreatedAt:   time.Now(),
	}
	if err := uc.chatRepo.Create(record); err != nil {
		// La entrega del chat nunca se bloquea por el log de auditoría.
		uc.log.Warn().Err(err).Str("user_id", actor.ID).Msg("no se pudo persistir el mensaje de chat")
		out.Warning = true
		return out, nil
	}
	out.MessageID = record.ID

	return out, nil
}

// History devuelve el historial del actor, más recientes primero.
func (uc *ChatUseCase) History(actor authz.Actor, page dto.PageRequest) (*dto.ChatHistoryResponse, error) {
	page.DefaultPage()
	list, err := uc.chatRepo.ListByUser(actor.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatMessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ChatMessageResponse{
			ID:          m.ID,
			UserMessage: m.UserMessage,
			AIResponse:  m.AIResponse,
			CreatedAt:   m.CreatedAt,
		})
	}
	return &dto.ChatHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// respond enruta la intención hacia el generador local que corresponda. La
// intención general intenta primero el LLM remoto si está configurado.
func (uc *ChatUseCase) respond(ctx context.Context, intent chat.Intent, message string, catalog []chat.Product) string {
	switch intent {
	case chat.IntentPurchase:
		return chat.PurchaseResponse(message, catalog, true)

	case chat.IntentSpecificProduct, chat.IntentProductSearch:
		result := chat.Search(message, catalog)
		if len(result.Matches) > 0 {
			return chat.DetailResponse(result.Products())
		}
		term := "that term"
		if terms := chat.ExtractTerms(message); len(terms) > 0 {
			term = terms[0]
		}
		return chat.NoMatchResponse(term, catalog)

	case chat.IntentProductListing:
		return chat.ListingResponse(catalog)

	default:
		if uc.llm != nil {
			reply, err := uc.remoteReply(ctx, message, catalog)
			if err == nil {
				return reply
			}
			uc.log.Warn().Err(err).Msg("fallo el LLM remoto, degradando a respuesta local")
		}
		return chat.ListingResponse(catalog)
	}
}

// remoteReply delega en el backend LLM con timeout propio.
func (uc *ChatUseCase) remoteReply(ctx context.Context, message string, catalog []chat.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	reply, err := uc.llm.GenerateReply(ctx, systemPrompt(catalog), message)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("respuesta vacía del LLM")
	}
	return reply, nil
}

// loadCatalog arma la vista del catálogo para el chatbot: productos
// aprobados visibles para el actor (todos si es superusuario).
func (uc *ChatUseCase) loadCatalog(actor authz.Actor) ([]chat.Product, error) {
	var (
		list []*entity.Product
		err  error
	)
	if actor.IsSuperuser {
		list, err = uc.productRepo.ListApproved(catalogLimit, 0)
	} else {
		list, err = uc.productRepo.ListApprovedVisible(actor.ID, actor.BusinessID)
	}
	if err != nil {
		return nil, err
	}

	catalog := make([]chat.Product, 0, len(list))
	for _, p := range list {
		catalog = append(catalog, chat.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Business:    p.BusinessNameSnapshot,
		})
	}
	return catalog, nil
}

// systemPrompt construye el prompt de sistema con el catálogo embebido.
func systemPrompt(catalog []chat.Product) string {
	var b strings.Builder
	b.WriteString(`You are a helpful AI assistant for a product marketplace called "Product Marketplace".
You help users find products, answer questions about them, and guide them through the purchasing process.

`)
	fmt.Fprintf(&b, "Current catalog status: %d products available\n\n", len(catalog))
	b.WriteString("Product Catalog:\n")
	b.WriteString(formatCatalogForPrompt(catalog))
	b.WriteString(`
Guidelines:
- Be friendly and helpful
- Focus on the products available in the catalog
- If asked about products not in the catalog, politely explain they're not available
- For purchase questions, guide users to the product pages
- Use emojis to make responses more engaging
- Keep responses concise but informative`)
	return b.String()
}

func formatCatalogForPrompt(catalog []chat.Product) string {
	if len(catalog) == 0 {
		return "No products are currently available in the marketplace.\n"
	}
	var b strings.Builder
	for i, p := range catalog {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   Price: $%s\n", p.Price.StringFixed(2))
		desc := p.Description
		if len(desc) > promptDescChars {
			// El corte respeta el límite de runa para no emitir UTF-8 inválido.
			cut := promptDescChars
			for cut > 0 && !utf8.RuneStart(desc[cut]) {
				cut--
			}
			desc = desc[:cut] + "..."
		}
		fmt.Fprintf(&b, "   Description: %s\n", desc)
		fmt.Fprintf(&b, "   Sold by: %s\n\n", p.Business)
	}
	return b.String()
}
