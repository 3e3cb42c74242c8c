package chat_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/marketplace-pro/internal/domain/chat"
)

// ──────────────────────────────────────────────────────────────────────────────
// DetailResponse
// ──────────────────────────────────────────────────────────────────────────────

func TestDetailResponse_FichaDeUnProducto(t *testing.T) {
	p := chat.Product{
		Name: "Beans", Description: "Red beans, high in protein",
		Price: decimal.NewFromFloat(2.5), Business: "Acme Farms",
	}

	out := chat.DetailResponse([]chat.Product{p})

	assert.Contains(t, out, "Beans")
	assert.Contains(t, out, "$2.50", "el precio siempre lleva dos decimales")
	assert.Contains(t, out, "Acme Farms")
	assert.Contains(t, out, "Red beans, high in protein")
	assert.Contains(t, out, "Would you like to know more", "la ficha cierra con un call to action")
}

func TestDetailResponse_ResumenMultiple(t *testing.T) {
	var products []chat.Product
	for i := 0; i < 7; i++ {
		products = append(products, chat.Product{
			Name:  fmt.Sprintf("Item %d", i),
			Price: decimal.NewFromInt(int64(i + 1)),
		})
	}

	out := chat.DetailResponse(products)

	assert.Contains(t, out, "I found 7 products")
	assert.Contains(t, out, "Item 4", "se muestran los primeros 5")
	assert.NotContains(t, out, "Item 5", "del sexto en adelante solo se cuenta")
	assert.Contains(t, out, "...and 2 more matches")
	assert.Contains(t, out, "Which one would you like to know more about?")
}

func TestDetailResponse_VacioRetornaVacio(t *testing.T) {
	assert.Empty(t, chat.DetailResponse(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// ListingResponse y NoMatchResponse
// ──────────────────────────────────────────────────────────────────────────────

func TestListingResponse_CatalogoVacio(t *testing.T) {
	out := chat.ListingResponse(nil)
	assert.Contains(t, out, "no products available")
	assert.Contains(t, out, "check back later")
}

func TestListingResponse_NumeraYTrunca(t *testing.T) {
	var products []chat.Product
	for i := 0; i < 12; i++ {
		products = append(products, chat.Product{
			Name:        fmt.Sprintf("Item %d", i),
			Description: strings.Repeat("x", 200),
			Price:       decimal.NewFromFloat(9.9),
			Business:    "Acme Farms",
		})
	}

	out := chat.ListingResponse(products)

	assert.Contains(t, out, "**1. Item 0**")
	assert.Contains(t, out, "**10. Item 9**")
	assert.NotContains(t, out, "Item 10", "el listado se corta en 10")
	assert.Contains(t, out, "$9.90")
	assert.Contains(t, out, strings.Repeat("x", 150)+"...", "la descripción larga se trunca")
	assert.Contains(t, out, "'Tell me about maize' or 'Show me beans'")
}

// El truncado nunca parte una runa multibyte en el límite: la salida
// sigue siendo UTF-8 válido.
func TestListingResponse_TruncaEnLimiteDeRuna(t *testing.T) {
	products := []chat.Product{{
		Name:        "Café Premium",
		Description: strings.Repeat("x", 149) + strings.Repeat("ñ", 30),
		Price:       decimal.NewFromFloat(4.5),
		Business:    "Acme Farms",
	}}

	out := chat.ListingResponse(products)

	assert.True(t, utf8.ValidString(out), "la respuesta debe ser UTF-8 válido")
	assert.Contains(t, out, strings.Repeat("x", 149)+"...", "el corte retrocede al inicio de la runa")
	assert.NotContains(t, out, "�")
}

func TestNoMatchResponse_NombraElTermino(t *testing.T) {
	products := []chat.Product{{Name: "Maize", Price: decimal.NewFromInt(1)}}

	out := chat.NoMatchResponse("dragonfruit", products)

	assert.Contains(t, out, "I couldn't find any products matching 'dragonfruit'")
	assert.Contains(t, out, "Maize", "después de la disculpa viene el listado")
}

func TestNoMatchResponse_TerminoVacio(t *testing.T) {
	out := chat.NoMatchResponse("", nil)
	assert.Contains(t, out, "matching 'that'")
}

// ──────────────────────────────────────────────────────────────────────────────
// PurchaseResponse
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseResponse_ProductoMencionado(t *testing.T) {
	products := testCatalog()

	out := chat.PurchaseResponse("I want to buy beans please", products, true)

	assert.Contains(t, out, "Ready to buy Beans?")
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "Add to Cart")
	assert.NotContains(t, out, "need to log in", "usuario autenticado no recibe el recordatorio de login")
}

func TestPurchaseResponse_SinAutenticarAgregaNotaDeLogin(t *testing.T) {
	out := chat.PurchaseResponse("buy maize", testCatalog(), false)
	assert.Contains(t, out, "You'll need to log in to complete your purchase")
}

func TestPurchaseResponse_GuiaGeneralConMuestras(t *testing.T) {
	out := chat.PurchaseResponse("how do I buy things here", testCatalog(), true)

	assert.Contains(t, out, "Ready to Make a Purchase?")
	assert.Contains(t, out, "4 products")
	assert.Contains(t, out, "• Maize", "muestra hasta 3 productos")
	assert.Contains(t, out, "• Fresh Milk")
	assert.NotContains(t, out, "• Tomatoes", "el cuarto producto queda fuera de la muestra")
}
