package postgres

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Customers-api/internal/domain/entity"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
	assert.Equal(t, "joao", escapeLike("joao"))
}

// translate() empareja por posición: cada letra de foldFrom debe plegarse igual que en NormalizeSearch.
func TestFoldSQL_MatchesNormalizeSearch(t *testing.T) {
	from := []rune(foldFrom)
	to := []rune(foldTo)
	require.Len(t, to, len(from))

	for i, r := range from {
		lower := string(r)
		assert.Equal(t, string(to[i]), entity.NormalizeSearch(lower), "minúscula %q", lower)
		// lower() de Postgres corre antes que translate()
		upper := strings.ToUpper(lower)
		assert.Equal(t, string(to[i]), entity.NormalizeSearch(upper), "mayúscula %q", upper)
	}
}

func TestFoldSQL_Expression(t *testing.T) {
	expr := fmt.Sprintf(foldSQL, "name")
	assert.True(t, strings.HasPrefix(expr, "translate(lower(name), '"))
	assert.Equal(t, utf8.RuneCountInString(foldFrom), utf8.RuneCountInString(foldTo))
}
