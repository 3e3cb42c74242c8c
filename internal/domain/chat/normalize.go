// Package chat contiene el núcleo del chatbot de productos: clasificación de
// intención por reglas ordenadas, búsqueda difusa con puntajes y generación
// local de respuestas. Todo es lógica pura y determinista; la orquestación
// (LLM remoto, persistencia) vive en la capa de aplicación.
package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone, elimina marcas diacríticas y recompone.
// "café" → "cafe". Entradas ASCII pasan intactas.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize baja a minúsculas y pliega diacríticos. Es la única
// normalización que aplican el clasificador y el buscador, para que ambos
// vean exactamente el mismo texto.
func normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// stripPunctuation reemplaza todo lo que no sea letra, dígito o espacio por
// un espacio y colapsa espacios consecutivos.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
