package entity

import "strings"

// Máscaras de entrada del formulario de clientes (9 = dígito).
const (
	DocumentMask = "999.999.999-99"
	PhoneMask    = "(99)99999-9999"
)

// ApplyMask formatea los dígitos de value sobre mask. Igual que el input con maskChar nulo:
// si faltan dígitos la salida se corta en el último dígito escrito.
func ApplyMask(mask, value string) string {
	digits := OnlyDigits(value)
	if digits == "" {
		return ""
	}
	var b strings.Builder
	i := 0
	for _, m := range mask {
		if i >= len(digits) {
			break
		}
		if m == '9' {
			b.WriteByte(digits[i])
			i++
			continue
		}
		b.WriteRune(m)
	}
	return b.String()
}

// FormatDocument aplica DocumentMask.
func FormatDocument(v string) string { return ApplyMask(DocumentMask, v) }

// FormatPhone aplica PhoneMask.
func FormatPhone(v string) string { return ApplyMask(PhoneMask, v) }

// OnlyDigits descarta todo lo que no sea 0-9.
func OnlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsMasked informa si s solo contiene dígitos y la puntuación de las máscaras.
func IsMasked(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune(".-() ", r):
		default:
			return false
		}
	}
	return true
}
