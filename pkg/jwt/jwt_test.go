package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/savinduamalka/agni-storefront/pkg/jwt"
	"github.com/savinduamalka/agni-storefront/pkg/jwt/jwttest"
)

func TestDecode_ExtraeClaimsSinVerificarFirma(t *testing.T) {
	tok := jwttest.Token(t, "nimal@agni.lk", "Nimal", "Perera", "customer", time.Hour)

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, "nimal@agni.lk", claims.Email)
	assert.Equal(t, "Nimal", claims.FirstName)
	assert.Equal(t, "Perera", claims.LastName)
	assert.Equal(t, "customer", claims.Role)
	assert.False(t, claims.Expired(time.Now()))
}

func TestDecode_TokenExpiradoSeDecodificaPeroSeMarca(t *testing.T) {
	tok := jwttest.Token(t, "a@agni.lk", "A", "B", "customer", -time.Minute)

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err, "Decode no valida exp")
	assert.True(t, claims.Expired(time.Now()))
}

func TestDecode_Malformado(t *testing.T) {
	for _, tok := range []string{"", "   ", "token.invalido.aqui", "abc", "a.b"} {
		_, err := pkgjwt.Decode(tok)
		assert.Error(t, err, "token %q debe fallar", tok)
	}
}
