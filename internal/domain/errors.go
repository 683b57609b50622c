package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSignInRequired    = errors.New("please sign in to continue")
	ErrInvalidToken      = errors.New("invalid session token")
	ErrEmailNotVerified  = errors.New("email address is not verified")
	ErrOutOfStock        = errors.New("this product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock for the requested quantity")
	ErrNoPendingEmail    = errors.New("no email is waiting for verification")
)

// GenericMessage texto mostrado cuando ni el servidor ni el error aportan uno legible.
const GenericMessage = "Something went wrong. Please try again."

// CodeEmailNotVerified código estructurado esperado del backend para cuentas sin verificar.
const CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"

// unverifiedHints fragmentos que el backend actual usa en el mensaje cuando no envía código.
var unverifiedHints = []string{"not verified", "unverified", "verify your email"}

// APIError respuesta no exitosa del backend con el mensaje provisto por el servidor.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// Is permite errors.Is(err, ErrEmailNotVerified) y errors.Is(err, ErrUnauthorized|ErrNotFound).
// Se prefiere el código estructurado; el mensaje solo se inspecciona si el backend no envía código.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrEmailNotVerified:
		if e.Code != "" {
			return strings.EqualFold(e.Code, CodeEmailNotVerified)
		}
		msg := strings.ToLower(e.Message)
		for _, hint := range unverifiedHints {
			if strings.Contains(msg, hint) {
				return true
			}
		}
		return false
	case ErrUnauthorized:
		return e.Status == 401
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// TransportError fallo de red o de transporte antes de obtener una respuesta.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage convierte cualquier error en un texto apto para una notificación.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if strings.TrimSpace(apiErr.Message) != "" {
			return apiErr.Message
		}
		return GenericMessage
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return "Unable to reach the store. Check your connection and try again."
	}
	for _, known := range []error{
		ErrSignInRequired, ErrInvalidToken, ErrOutOfStock, ErrInsufficientStock,
		ErrNoPendingEmail, ErrInvalidInput, ErrNotFound,
	} {
		if errors.Is(err, known) {
			return capitalize(known.Error())
		}
	}
	return GenericMessage
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
