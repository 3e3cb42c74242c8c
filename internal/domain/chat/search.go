package chat

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Product es la vista del catálogo que consume el chatbot: lo mínimo para
// buscar y formatear respuestas. Business es el nombre snapshot del negocio.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Business    string
}

// Puntajes del buscador. Una mención directa del nombre del producto vale
// más que cualquier acumulado difuso; dentro del camino difuso el nombre
// pesa más que la descripción y un término no puntúa en ambos.
const (
	scoreDirect      = 100
	scoreNameHit     = 10
	scoreDescription = 3

	maxFuzzyResults = 10
)

// Match es un producto con su puntaje de relevancia.
type Match struct {
	Product Product
	Score   int
}

// SearchResult es el resultado ordenado de una búsqueda. Direct indica que
// los matches vienen del bucket de mención directa (sustring entre consulta
// y nombre); ese bucket no se trunca a 10.
type SearchResult struct {
	Direct  bool
	Matches []Match
}

// Products devuelve solo los productos, en el orden del resultado.
func (r SearchResult) Products() []Product {
	out := make([]Product, 0, len(r.Matches))
	for _, m := range r.Matches {
		out = append(out, m.Product)
	}
	return out
}

// prefixPhrases son las frases de pregunta que se recortan del inicio de la
// consulta antes de extraer términos. Gana la primera que coincida, en el
// orden de la lista.
var prefixPhrases = []string{
	"do you have", "is there", "looking for", "searching for",
	"tell me about", "information about", "details about", "show me",
	"what about", "how about", "tell me more about", "i want",
	"i need", "i'm looking for", "can you show", "can you tell",
	"find", "search", "info on", "details on", "about",
}

// stopWords son términos demasiado genéricos para puntuar.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "is": true, "are": true,
}

// ExtractTerms deriva los términos de búsqueda de una consulta en lenguaje
// natural: recorta la primera frase-prefijo que coincida, quita puntuación,
// separa por espacios y descarta stop words. Si no queda nada, devuelve la
// cadena limpia completa como único término.
func ExtractTerms(query string) []string {
	cleaned := normalize(query)
	for _, phrase := range prefixPhrases {
		if strings.HasPrefix(cleaned, phrase) {
			cleaned = cleaned[len(phrase):]
			break
		}
	}
	cleaned = stripPunctuation(cleaned)

	var terms []string
	for _, t := range strings.Fields(cleaned) {
		if !stopWords[t] {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 && cleaned != "" {
		return []string{cleaned}
	}
	return terms
}

// Search busca productos que coincidan con la consulta.
//
// Primero el bucket de mención directa: si el nombre del producto aparece
// dentro de la consulta, o la consulta dentro del nombre, el producto recibe
// el puntaje fijo de mención directa y el bucket completo se devuelve en
// lugar de cualquier resultado difuso. Si el bucket está vacío, se puntúa
// término a término contra nombre y descripción y se devuelven hasta 10
// productos con puntaje > 0, en orden descendente.
//
// El orden es reproducible: empates se resuelven por el orden original de la
// lista (sort estable), nunca por orden de mapa.
func Search(query string, products []Product) SearchResult {
	queryNorm := strings.TrimSpace(normalize(query))
	if queryNorm == "" || len(products) == 0 {
		return SearchResult{}
	}

	var direct []Match
	for _, p := range products {
		name := normalize(p.Name)
		if name == "" {
			continue
		}
		if strings.Contains(queryNorm, name) || strings.Contains(name, queryNorm) {
			direct = append(direct, Match{Product: p, Score: scoreDirect})
		}
	}
	if len(direct) > 0 {
		return SearchResult{Direct: true, Matches: direct}
	}

	terms := ExtractTerms(query)

	var fuzzy []Match
	for _, p := range products {
		name := normalize(p.Name)
		desc := normalize(p.Description)
		score := 0
		for _, term := range terms {
			if len(term) <= 1 {
				continue
			}
			// El nombre tiene prioridad: un término no puntúa dos veces.
			if strings.Contains(name, term) {
				score += scoreNameHit
			} else if strings.Contains(desc, term) {
				score += scoreDescription
			}
		}
		if score > 0 {
			fuzzy = append(fuzzy, Match{Product: p, Score: score})
		}
	}

	sort.SliceStable(fuzzy, func(i, j int) bool {
		return fuzzy[i].Score > fuzzy[j].Score
	})
	if len(fuzzy) > maxFuzzyResults {
		fuzzy = fuzzy[:maxFuzzyResults]
	}
	return SearchResult{Matches: fuzzy}
}
