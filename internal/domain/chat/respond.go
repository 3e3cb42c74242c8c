package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Límites de formato de las respuestas locales.
const (
	maxSummaryItems  = 5   // resumen multi-match antes de "...and N more"
	maxListingItems  = 10  // listado de catálogo
	maxSampleItems   = 3   // muestras en la respuesta general de compra
	descSummaryChars = 100 // descripción truncada en el resumen
	descListingChars = 150 // descripción truncada en el listado
)

// formatPrice formatea el precio como el string decimal con símbolo de
// moneda, sin localización (los precios persisten con 2 decimales).
func formatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

// truncate recorta la descripción a max bytes sin partir una runa: el
// corte retrocede hasta el inicio de la runa anterior para que la salida
// siga siendo UTF-8 válido.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// DetailResponse formatea el resultado de una búsqueda con matches: ficha
// detallada si hay uno solo, resumen numerado si hay varios. Puro formato,
// sin efectos secundarios.
func DetailResponse(products []Product) string {
	if len(products) == 0 {
		return ""
	}

	if len(products) == 1 {
		p := products[0]
		var b strings.Builder
		fmt.Fprintf(&b, "**✨ %s**\n\n", p.Name)
		fmt.Fprintf(&b, "**💰 Price:** %s\n", formatPrice(p.Price))
		fmt.Fprintf(&b, "**🏪 Sold by:** %s\n", p.Business)
		fmt.Fprintf(&b, "**📝 Description:**\n%s\n\n", p.Description)
		b.WriteString("💡 **Would you like to know more about this product or perhaps buy it?**")
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 **I found %d products matching your search:**\n\n", len(products))
	for i, p := range products {
		if i == maxSummaryItems {
			break
		}
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "   💰 %s | 🏪 %s\n", formatPrice(p.Price), p.Business)
		fmt.Fprintf(&b, "   📝 %s\n\n", truncate(p.Description, descSummaryChars))
	}
	if rest := len(products) - maxSummaryItems; rest > 0 {
		fmt.Fprintf(&b, "*...and %d more matches.*\n\n", rest)
	}
	b.WriteString("**Which one would you like to know more about?**")
	return b.String()
}

// NoMatchResponse es la disculpa cuando la búsqueda no encontró nada:
// nombra el término buscado y cae al listado completo.
func NoMatchResponse(term string, products []Product) string {
	if term == "" {
		term = "that"
	}
	return fmt.Sprintf("🔍 I couldn't find any products matching '%s'.\n\n%s",
		term, ListingResponse(products))
}

// ListingResponse es el listado de catálogo: hasta 10 productos numerados
// con descripción truncada y una pista de cierre.
func ListingResponse(products []Product) string {
	if len(products) == 0 {
		return "I'm sorry, but there are currently no products available in the marketplace. Please check back later!"
	}

	var b strings.Builder
	b.WriteString("🛒 **Here are the products available in our marketplace:**\n\n")
	for i, p := range products {
		if i == maxListingItems {
			break
		}
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "   💰 Price: %s\n", formatPrice(p.Price))
		fmt.Fprintf(&b, "   📝 Description: %s\n", truncate(p.Description, descListingChars))
		fmt.Fprintf(&b, "   🏪 Sold by: %s\n\n", p.Business)
	}
	b.WriteString("✨ **To see details about a specific product, just ask!** (e.g., 'Tell me about maize' or 'Show me beans')")
	return b.String()
}

// PurchaseResponse maneja la intención de compra. Si el mensaje menciona un
// producto del catálogo, devuelve la ficha de compra de ese producto; si no,
// la guía general. authenticated agrega o no el recordatorio de login.
func PurchaseResponse(message string, products []Product, authenticated bool) string {
	msg := normalize(message)
	for _, p := range products {
		name := normalize(p.Name)
		if name != "" && strings.Contains(msg, name) {
			return purchaseProductResponse(p, authenticated)
		}
	}
	return purchaseGeneralResponse(products)
}

func purchaseProductResponse(p Product, authenticated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**🛍️ Ready to buy %s?**\n\n", p.Name)
	b.WriteString("**Product Details:**\n")
	fmt.Fprintf(&b, "💰 Price: %s\n", formatPrice(p.Price))
	fmt.Fprintf(&b, "🏪 Sold by: %s\n\n", p.Business)
	b.WriteString("**To purchase this product:**\n")
	b.WriteString("1. Go to the product page\n")
	b.WriteString("2. Click 'Add to Cart' or 'Buy Now'\n")
	b.WriteString("3. Follow the checkout process\n")
	if !authenticated {
		b.WriteString("\n🔑 **Note:** You'll need to log in to complete your purchase.\n")
	}
	return b.String()
}

func purchaseGeneralResponse(products []Product) string {
	var b strings.Builder
	b.WriteString("**🛍️ Ready to Make a Purchase?**\n\n")
	if len(products) > 0 {
		fmt.Fprintf(&b, "We have **%d products** available!\n\n", len(products))
		b.WriteString("**Popular items:**\n")
		for i, p := range products {
			if i == maxSampleItems {
				break
			}
			fmt.Fprintf(&b, "• %s - %s\n", p.Name, formatPrice(p.Price))
		}
		b.WriteString("\n")
	}
	b.WriteString("**To buy a product:**\n")
	b.WriteString("• Browse our catalog\n")
	b.WriteString("• Ask me about specific products\n")
	b.WriteString("• Click 'Add to Cart' on any product\n")
	return b.String()
}
