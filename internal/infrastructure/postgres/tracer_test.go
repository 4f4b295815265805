package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("\n\t\tselect id from customers"))
	assert.Equal(t, "UPDATE", operation("UPDATE customers SET"))
	assert.Equal(t, "UNKNOWN", operation("   "))
}
