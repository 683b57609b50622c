package backend

import (
	"context"
	"net/http"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
)

var _ ports.AuthAPI = (*AuthAPI)(nil)

// AuthAPI adaptador de /users.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI construye el adaptador.
func NewAuthAPI(c *Client) *AuthAPI { return &AuthAPI{c: c} }

func (a *AuthAPI) post(ctx context.Context, route string, body interface{}, out interface{}) error {
	raw, err := a.c.do(ctx, call{method: http.MethodPost, route: route, path: route, body: body})
	if err != nil {
		return err
	}
	return decode("POST "+route, raw, out)
}

// Login POST /users/login.
func (a *AuthAPI) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := a.post(ctx, "/users/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginWithGoogle POST /users/login/google con el access token de OAuth.
func (a *AuthAPI) LoginWithGoogle(ctx context.Context, accessToken string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := a.post(ctx, "/users/login/google", dto.GoogleLoginRequest{AccessToken: accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /users.
func (a *AuthAPI) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := a.post(ctx, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail POST /users/verify-email. El token puede venir vacío si el backend no inicia sesión.
func (a *AuthAPI) VerifyEmail(ctx context.Context, email, otp string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := a.post(ctx, "/users/verify-email", dto.VerifyEmailRequest{Email: email, OTP: otp}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestEmailVerification POST /users/request-email-verification.
func (a *AuthAPI) RequestEmailVerification(ctx context.Context, email string) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := a.post(ctx, "/users/request-email-verification", dto.EmailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
