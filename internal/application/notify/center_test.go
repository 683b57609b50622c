package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PushYList(t *testing.T) {
	c := NewCenter(0, 0, nil)

	c.Success("Added to cart")
	c.Error("Please sign in to add items to your cart")
	c.Info("")

	list := c.List()
	require.Len(t, list, 2, "los mensajes vacíos se ignoran")
	assert.Equal(t, LevelSuccess, list[0].Level)
	assert.Equal(t, LevelError, list[1].Level)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestCenter_Limite(t *testing.T) {
	c := NewCenter(2, time.Minute, nil)

	c.Info("uno")
	c.Info("dos")
	c.Info("tres")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "dos", list[0].Message)
	assert.Equal(t, "tres", list[1].Message)
}

func TestCenter_Vencimiento(t *testing.T) {
	c := NewCenter(5, time.Second, nil)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Info("temporal")
	require.Len(t, c.List(), 1)

	now = now.Add(2 * time.Second)
	assert.Empty(t, c.List())
}

func TestCenter_Dismiss(t *testing.T) {
	c := NewCenter(5, time.Minute, nil)
	c.Error("falló")
	id := c.List()[0].ID

	assert.True(t, c.Dismiss(id))
	assert.False(t, c.Dismiss(id), "descartar dos veces no es error pero devuelve false")
	assert.Empty(t, c.List())
}
