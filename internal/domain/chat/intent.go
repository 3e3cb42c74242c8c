package chat

import (
	"regexp"
	"strings"
)

// Intent es la categoría detectada de un mensaje del usuario.
type Intent string

const (
	IntentPurchase        Intent = "purchase"
	IntentSpecificProduct Intent = "specific_product"
	IntentProductSearch   Intent = "product_search"
	IntentProductListing  Intent = "product_listing"
	IntentGeneral         Intent = "general"
)

// purchaseKeywords dispara la intención de compra por contención simple.
var purchaseKeywords = []string{
	"buy", "purchase", "order", "checkout", "payment",
	"shipping", "delivery", "cart",
}

// specificProductPatterns detecta preguntas sobre un producto concreto.
// Son patrones de frase, no palabras clave: "do you have tomatoes" es
// specific_product aunque ninguna keyword de catálogo aparezca.
var specificProductPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:tell me about|what about|how about|info(?:rmation)? on|details? on|about)\s*(.+)$`),
	regexp.MustCompile(`^(?:do you have|is there)\s*(?:a |an )?\s*(.+?)(?:\?|$)`),
	regexp.MustCompile(`^(?:i want|i need|i'm looking for)\s*(?:the |a |an )?\s*(.+)$`),
	regexp.MustCompile(`^(.+?)\s+(?:info|information|details)$`),
	regexp.MustCompile(`^(?:show|display|get)\s+(?:me\s+)?(?:info|information|details)?\s*(?:on |about )?\s*(.+)$`),
}

// productSearchPatterns detecta búsquedas explícitas. "show me X" no va
// aquí: ya lo captura el último patrón de specific_product, que se evalúa
// antes.
var productSearchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:looking|searching)\s+for\s+(.+)`),
	regexp.MustCompile(`(?:^|\s)(?:search|find)(?:\s+for)?\s+(.+)`),
}

// listingKeywords dispara el listado genérico de catálogo.
var listingKeywords = []string{
	"product", "products", "have", "available", "stock", "items",
	"catalog", "listing", "what do you", "show me", "list",
	"all products", "what products",
}

// Rule es un par (predicado, intención). El orden en Rules define la
// precedencia de clasificación.
type Rule struct {
	Intent  Intent
	Matches func(message string) bool
}

// Rules es la tabla de clasificación, evaluada en orden con corto circuito.
// La precedencia es de carga: specific_product va antes que product_listing
// para que "do you have apples for sale" no se degrade a listado genérico.
var Rules = []Rule{
	{IntentPurchase, containsAny(purchaseKeywords)},
	{IntentSpecificProduct, matchesAny(specificProductPatterns)},
	{IntentProductSearch, matchesAny(productSearchPatterns)},
	{IntentProductListing, containsAny(listingKeywords)},
}

// Classify categoriza un mensaje según la primera regla que coincida.
// Si ninguna coincide, la intención es general (camino LLM si está
// configurado, listado local si no).
func Classify(message string) Intent {
	msg := strings.TrimSpace(normalize(message))
	if msg == "" {
		return IntentGeneral
	}
	for _, rule := range Rules {
		if rule.Matches(msg) {
			return rule.Intent
		}
	}
	return IntentGeneral
}

func containsAny(keywords []string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

func matchesAny(patterns []*regexp.Regexp) func(string) bool {
	return func(msg string) bool {
		for _, re := range patterns {
			if re.MatchString(msg) {
				return true
			}
		}
		return false
	}
}
