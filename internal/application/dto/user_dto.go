package dto

import "github.com/savinduamalka/agni-storefront/internal/domain/entity"

// LoginRequest entrada para login con credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest token de acceso OAuth obtenido por el UI.
type GoogleLoginRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// RegisterRequest alta de cuenta en POST /users.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone,omitempty"`
}

// VerifyEmailRequest OTP para POST /users/verify-email. Email vacío = el pendiente guardado.
type VerifyEmailRequest struct {
	Email string `json:"email,omitempty"`
	OTP   string `json:"otp" validate:"required"`
}

// EmailRequest cuerpo de un solo campo email.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse respuesta del backend a login/verificación: {message, token, ...}.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// MessageResponse envoltorio {message}.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignInResponse salida del gateway tras un intento de login. Next indica la vista
// a la que el UI debe navegar.
type SignInResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
	Next          string       `json:"next"`
	Message       string       `json:"message,omitempty"`
}

// SessionResponse estado actual de la sesión.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
}

// TokenLoginRequest login directo con un token ya emitido (p. ej. tras OAuth en otra vista).
type TokenLoginRequest struct {
	Token string `json:"token" validate:"required"`
}
