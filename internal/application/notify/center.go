package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

var _ ports.Notifier = (*Center)(nil)

// Niveles de notificación.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

const (
	defaultLimit = 20
	defaultTTL   = 8 * time.Second
)

// Notice notificación transitoria y descartable.
type Notice struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center guarda las últimas notificaciones hasta que vencen o se descartan.
type Center struct {
	mu      sync.Mutex
	notices []Notice
	limit   int
	ttl     time.Duration
	now     func() time.Time
	log     *logger.Logger
}

// NewCenter crea el centro. limit/ttl <= 0 usan los valores por defecto.
func NewCenter(limit int, ttl time.Duration, log *logger.Logger) *Center {
	if limit <= 0 {
		limit = defaultLimit
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Center{limit: limit, ttl: ttl, now: time.Now, log: log.Component("notify")}
}

func (c *Center) Success(msg string) { c.push(LevelSuccess, msg) }
func (c *Center) Error(msg string)   { c.push(LevelError, msg) }
func (c *Center) Info(msg string)    { c.push(LevelInfo, msg) }

func (c *Center) push(level, msg string) {
	if msg == "" {
		return
	}
	now := c.now()
	n := Notice{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   msg,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.pruneLocked(now)
	c.notices = append(c.notices, n)
	if over := len(c.notices) - c.limit; over > 0 {
		c.notices = append([]Notice(nil), c.notices[over:]...)
	}
	c.mu.Unlock()

	c.log.Debug().Str("level", level).Str("id", n.ID).Msg(msg)
}

// List notificaciones vigentes, de la más antigua a la más reciente.
func (c *Center) List() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now())
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Dismiss descarta la notificación id. false si no existe o ya venció.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notices {
		if c.notices[i].ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) pruneLocked(now time.Time) {
	kept := c.notices[:0]
	for _, n := range c.notices {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	c.notices = kept
}
