package domain

import (
	"net/mail"
	"strings"
)

// ValidEmail acepta solo una dirección simple (sin nombre) con dominio de al menos dos etiquetas.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
