package storage

import (
	"context"
	"sync"

	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
)

var _ repository.Storage = (*Memory)(nil)

// Memory almacenamiento en proceso. Varias sesiones que compartan la misma instancia
// se comportan como pestañas del mismo navegador.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
	hub  *hub
}

// NewMemory construye el almacenamiento vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string), hub: newHub()}
}

// Get devuelve el valor de key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set guarda value y notifica a los observadores de key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	m.hub.publish(repository.Change{Key: key, Value: value})
	return nil
}

// Delete borra key; borrar una clave inexistente no es error ni notifica.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()
	if existed {
		m.hub.publish(repository.Change{Key: key, Deleted: true})
	}
	return nil
}

// Watch registra un observador de key.
func (m *Memory) Watch(ctx context.Context, key string) (<-chan repository.Change, func(), error) {
	ch, stop := m.hub.watch(ctx, key)
	return ch, stop, nil
}

// Close cierra todos los observadores.
func (m *Memory) Close() error {
	m.hub.close()
	return nil
}
