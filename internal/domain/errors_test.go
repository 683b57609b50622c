package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savinduamalka/agni-storefront/internal/domain"
)

func TestAPIError_EmailNoVerificadoPorCodigo(t *testing.T) {
	err := fmt.Errorf("login: %w", &domain.APIError{Status: 403, Code: "EMAIL_NOT_VERIFIED", Message: "Forbidden"})
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)

	other := &domain.APIError{Status: 403, Code: "ACCOUNT_BLOCKED", Message: "Your email is not verified"}
	assert.NotErrorIs(t, other, domain.ErrEmailNotVerified, "con código presente no se inspecciona el mensaje")
}

func TestAPIError_EmailNoVerificadoPorMensaje(t *testing.T) {
	for _, msg := range []string{
		"Email not verified. Please verify your email.",
		"User is UNVERIFIED",
		"Please verify your email before logging in",
	} {
		assert.ErrorIs(t, &domain.APIError{Status: 403, Message: msg}, domain.ErrEmailNotVerified, msg)
	}
	assert.NotErrorIs(t, &domain.APIError{Status: 401, Message: "Invalid password"}, domain.ErrEmailNotVerified)
}

func TestAPIError_StatusMapeaSentinelas(t *testing.T) {
	assert.ErrorIs(t, &domain.APIError{Status: 401}, domain.ErrUnauthorized)
	assert.ErrorIs(t, &domain.APIError{Status: 404}, domain.ErrNotFound)
	assert.NotErrorIs(t, &domain.APIError{Status: 500}, domain.ErrNotFound)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", domain.UserMessage(nil))
	assert.Equal(t, "Product not found", domain.UserMessage(&domain.APIError{Status: 404, Message: "Product not found"}))
	assert.Equal(t, domain.GenericMessage, domain.UserMessage(&domain.APIError{Status: 500}))
	assert.Contains(t, domain.UserMessage(&domain.TransportError{Op: "GET /cart", Err: errors.New("dial tcp")}), "Unable to reach")
	assert.Equal(t, "Please sign in to continue", domain.UserMessage(fmt.Errorf("cart add: %w", domain.ErrSignInRequired)))
	assert.Equal(t, domain.GenericMessage, domain.UserMessage(errors.New("boom")))
}
