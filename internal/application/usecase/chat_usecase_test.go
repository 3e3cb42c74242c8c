package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/marketplace-pro/internal/application/dto"
	"github.com/tu-usuario/marketplace-pro/internal/application/usecase"
	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/authz"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: catálogo aprobado de b1 más un producto en otro negocio
// ──────────────────────────────────────────────────────────────────────────────

type chatFixture struct {
	uc          *usecase.ChatUseCase
	productRepo *memProductRepo
	chatRepo    *memChatRepo
	llm         *fakeLLM

	viewer authz.Actor
}

func newChatFixture(t *testing.T, withLLM bool) *chatFixture {
	t.Helper()
	businessRepo := &memBusinessRepo{}
	require.NoError(t, businessRepo.Create(&entity.Business{ID: "b1", Name: "Acme Farms", OwnerID: "owner-1"}))
	require.NoError(t, businessRepo.Create(&entity.Business{ID: "b2", Name: "Rival Corp", OwnerID: "owner-2"}))

	productRepo := &memProductRepo{businesses: businessRepo}
	approved := func(id, businessID, businessName, name, desc string, price float64) {
		require.NoError(t, productRepo.Create(&entity.Product{
			ID: id, BusinessID: businessID, Name: name, Description: desc,
			Price: decimal.NewFromFloat(price), Status: entity.StatusApproved,
			BusinessNameSnapshot: businessName,
		}))
	}
	approved("p1", "b1", "Acme Farms", "Maize", "Fresh yellow maize from the highlands", 1.20)
	approved("p2", "b1", "Acme Farms", "Beans", "Red beans, high in protein", 2.50)
	approved("p3", "b2", "Rival Corp", "Secret Sauce", "Only for Rival eyes", 9.99)
	// Un draft nunca entra al catálogo del chatbot.
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: "p4", BusinessID: "b1", Name: "Unripe Maize", Status: entity.StatusDraft,
		Price: decimal.NewFromFloat(0.5), BusinessNameSnapshot: "Acme Farms",
	}))

	chatRepo := &memChatRepo{}
	var llm *fakeLLM
	f := &chatFixture{
		productRepo: productRepo,
		chatRepo:    chatRepo,
		viewer:      authz.Actor{ID: "viewer-1", BusinessID: "b1", Role: entity.RoleViewer},
	}
	if withLLM {
		llm = &fakeLLM{reply: "Hello! Welcome to the marketplace."}
		f.llm = llm
		f.uc = usecase.NewChatUseCase(productRepo, chatRepo, llm, testLogger())
	} else {
		f.uc = usecase.NewChatUseCase(productRepo, chatRepo, nil, testLogger())
	}
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Query: flujo local
// ──────────────────────────────────────────────────────────────────────────────

func TestChatQuery_ProductoEspecifico(t *testing.T) {
	f := newChatFixture(t, false)

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "show me beans"})
	require.NoError(t, err)

	assert.Equal(t, "specific_product", out.Intent)
	assert.Contains(t, out.Response, "Beans")
	assert.Contains(t, out.Response, "2.50")
	assert.Contains(t, out.Response, "Acme Farms")
	assert.NotEmpty(t, out.MessageID)
	assert.False(t, out.Warning)

	// El intercambio quedó en el historial.
	hist, err := f.uc.History(f.viewer, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, "show me beans", hist.Items[0].UserMessage)
	assert.Equal(t, out.Response, hist.Items[0].AIResponse)
}

func TestChatQuery_SinCoincidencias(t *testing.T) {
	f := newChatFixture(t, false)

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "do you have spaceships"})
	require.NoError(t, err)
	assert.Contains(t, out.Response, "couldn't find", "sin coincidencias responde la disculpa con alternativas")
}

func TestChatQuery_MensajeVacio(t *testing.T) {
	f := newChatFixture(t, false)

	_, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un producto aprobado de un negocio ajeno no aparece en el catálogo del
// chatbot del actor.
func TestChatQuery_CatalogoScoped(t *testing.T) {
	f := newChatFixture(t, false)

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "what do you sell"})
	require.NoError(t, err)
	assert.Equal(t, "product_listing", out.Intent)
	assert.Contains(t, out.Response, "Maize")
	assert.NotContains(t, out.Response, "Secret Sauce")
	assert.NotContains(t, out.Response, "Unripe Maize", "los drafts no entran al catálogo")

	super := authz.Actor{ID: "root", IsSuperuser: true}
	out, err = f.uc.Query(context.Background(), super, dto.ChatQueryRequest{Message: "what do you sell"})
	require.NoError(t, err)
	assert.Contains(t, out.Response, "Secret Sauce", "el superusuario ve todo el catálogo aprobado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Query: delegación al LLM
// ──────────────────────────────────────────────────────────────────────────────

func TestChatQuery_IntencionGeneralUsaLLM(t *testing.T) {
	f := newChatFixture(t, true)

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err)

	assert.Equal(t, "general", out.Intent)
	assert.Equal(t, "Hello! Welcome to the marketplace.", out.Response)
	assert.Equal(t, 1, f.llm.calls)
	assert.Equal(t, "hello there", f.llm.gotUser)
	assert.True(t, f.llm.lastDeadline, "la llamada remota lleva timeout")

	// El prompt de sistema embebe el catálogo visible.
	assert.Contains(t, f.llm.gotSystem, "2 products available")
	assert.Contains(t, f.llm.gotSystem, "Maize")
	assert.Contains(t, f.llm.gotSystem, "Price: $2.50")
	assert.Contains(t, f.llm.gotSystem, "Sold by: Acme Farms")
	assert.NotContains(t, f.llm.gotSystem, "Secret Sauce")
}

// La descripción recortada dentro del prompt no parte runas multibyte.
func TestChatQuery_PromptTruncaEnLimiteDeRuna(t *testing.T) {
	f := newChatFixture(t, true)
	require.NoError(t, f.productRepo.Create(&entity.Product{
		ID: "p5", BusinessID: "b1", Name: "Café Premium",
		Description:          strings.Repeat("x", 99) + strings.Repeat("ñ", 20),
		Price:                decimal.NewFromFloat(4.5),
		Status:               entity.StatusApproved,
		BusinessNameSnapshot: "Acme Farms",
	}))

	_, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(f.llm.gotSystem), "el prompt debe ser UTF-8 válido")
	assert.Contains(t, f.llm.gotSystem, strings.Repeat("x", 99)+"...")
}

func TestChatQuery_FalloDelLLMDegradaALocal(t *testing.T) {
	f := newChatFixture(t, true)
	f.llm.err = errors.New("api: status 500")

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err, "el fallo remoto nunca llega al usuario")
	assert.Contains(t, out.Response, "Maize", "degrada al listado local")
	assert.NotEmpty(t, out.MessageID)
}

func TestChatQuery_RespuestaVaciaDelLLMDegrada(t *testing.T) {
	f := newChatFixture(t, true)
	f.llm.reply = "   "

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err)
	assert.Contains(t, out.Response, "Maize")
}

func TestChatQuery_SinLLMConfigurado(t *testing.T) {
	f := newChatFixture(t, false)

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, "general", out.Intent)
	assert.Contains(t, out.Response, "Maize")
}

// Una intención resoluble localmente nunca gasta una llamada remota.
func TestChatQuery_LocalNoTocaElLLM(t *testing.T) {
	f := newChatFixture(t, true)

	_, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "show me beans"})
	require.NoError(t, err)
	assert.Equal(t, 0, f.llm.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia tolerante e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestChatQuery_FalloDePersistenciaEntregaConWarning(t *testing.T) {
	f := newChatFixture(t, false)
	f.chatRepo.failCreate = true

	out, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: "show me beans"})
	require.NoError(t, err)
	assert.True(t, out.Warning)
	assert.Empty(t, out.MessageID)
	assert.Contains(t, out.Response, "Beans", "la respuesta se entrega igual")
}

func TestChatHistory_PaginadoPorUsuario(t *testing.T) {
	f := newChatFixture(t, false)
	for _, msg := range []string{"show me beans", "show me maize", "what do you sell"} {
		_, err := f.uc.Query(context.Background(), f.viewer, dto.ChatQueryRequest{Message: msg})
		require.NoError(t, err)
	}
	otro := authz.Actor{ID: "viewer-2", BusinessID: "b1", Role: entity.RoleViewer}
	_, err := f.uc.Query(context.Background(), otro, dto.ChatQueryRequest{Message: "hello there"})
	require.NoError(t, err)

	// Más recientes primero y solo los del actor.
	hist, err := f.uc.History(f.viewer, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)
	assert.Equal(t, "what do you sell", hist.Items[0].UserMessage)
	assert.Equal(t, "show me maize", hist.Items[1].UserMessage)

	rest, err := f.uc.History(f.viewer, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, "show me beans", rest.Items[0].UserMessage)

	for _, it := range append(hist.Items, rest.Items...) {
		assert.False(t, strings.Contains(it.UserMessage, "hello"), "el historial no mezcla usuarios")
	}
}
