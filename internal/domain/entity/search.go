package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch quita acentos y pasa a minúsculas ("José " -> "jose").
// Los repositorios comparan contra campos normalizados de la misma forma; el de Postgres
// sólo cubre los acentos del portugués y del español.
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Term término de búsqueda ya normalizado.
func (f CustomerFilter) Term() string { return NormalizeSearch(f.Search) }
