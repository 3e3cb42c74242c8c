package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/application/usecase"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
)

// ChatHandler maneja el chatbot de búsqueda de productos.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Query godoc
// @Summary      Enviar mensaje al chatbot
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatQueryRequest  true  "mensaje"
// @Success      200   {object}  dto.ChatQueryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat/query [post]
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var in dto.ChatQueryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Query(c.Context(), GetActor(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "message es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de conversación del usuario
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "límite (default 20)"
// @Param        offset  query     int  false  "offset (default 0)"
// @Success      200     {object}  dto.ChatHistoryResponse
// @Router       /api/chat/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.History(GetActor(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
