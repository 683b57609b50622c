package storage

import (
	"context"
	"sync"

	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
)

// hub reparte cambios a los observadores de cada clave dentro del proceso.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[int]chan repository.Change
	nextID   int
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[int]chan repository.Change)}
}

func (h *hub) watch(ctx context.Context, key string) (<-chan repository.Change, func()) {
	out := make(chan repository.Change, 8)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.watchers[key] == nil {
		h.watchers[key] = make(map[int]chan repository.Change)
	}
	h.watchers[key][id] = out
	h.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			h.mu.Lock()
			if w, ok := h.watchers[key][id]; ok {
				delete(h.watchers[key], id)
				close(w)
			}
			h.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return out, stop
}

// publish entrega el cambio sin bloquear. Con el buffer lleno se descarta el más
// antiguo: un observador lento pierde eventos intermedios, nunca el último.
func (h *hub) publish(ch repository.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.watchers[ch.Key] {
		select {
		case w <- ch:
		default:
			select {
			case <-w:
			default:
			}
			select {
			case w <- ch:
			default:
			}
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, ws := range h.watchers {
		for id, w := range ws {
			close(w)
			delete(ws, id)
		}
		delete(h.watchers, key)
	}
}
