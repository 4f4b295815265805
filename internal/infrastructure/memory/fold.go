package memory

import (
	"strings"

	"github.com/jhoicas/Customers-api/internal/domain/entity"
)

// matches informa si term (ya normalizado) aparece en alguno de los campos.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(entity.NormalizeSearch(f), term) {
			return true
		}
	}
	return false
}
