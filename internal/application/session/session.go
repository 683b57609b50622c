package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
	"github.com/savinduamalka/agni-storefront/pkg/jwt"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

// Change estado de sesión tras un cambio del token efectivo. Token vacío = sin sesión.
type Change struct {
	Token string
	User  *entity.User
}

// Session identidad del comprador derivada del bearer token guardado.
// El decode es solo para mostrar; la autorización la decide siempre el backend.
type Session struct {
	store repository.Storage
	log   *logger.Logger
	now   func() time.Time

	mu          sync.RWMutex
	token       string
	user        *entity.User
	subscribers map[int]chan Change
	nextID      int
}

// New construye la sesión vacía sobre store. Llamar Init para cargar el token guardado.
func New(store repository.Storage, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		store:       store,
		log:         log.Component("session"),
		now:         time.Now,
		subscribers: make(map[int]chan Change),
	}
}

// Init carga el token guardado sin llamar al backend. Un token ilegible o vencido se
// borra junto con el usuario y la sesión arranca sin autenticar.
func (s *Session) Init(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, repository.KeyToken)
	if err != nil {
		return fmt.Errorf("session init: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	user, err := s.decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("token guardado inválido; se limpia la sesión")
		return s.clearStorage(ctx)
	}
	s.mu.Lock()
	s.token, s.user = raw, user
	s.mu.Unlock()
	return nil
}

// Login decodifica token, deriva el usuario y persiste ambos.
func (s *Session) Login(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	user, err := s.decode(token)
	if err != nil {
		s.log.Warn().Err(err).Msg("login con token inválido")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	record, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("session login: %w", err)
	}

	// Primero el almacenamiento: si falla, la memoria y los suscriptores no cambian.
	if err := s.store.Set(ctx, repository.KeyToken, token); err != nil {
		s.log.Error().Err(err).Msg("no se pudo guardar el token")
		return nil, fmt.Errorf("session login: guardar token: %w", err)
	}
	if err := s.store.Set(ctx, repository.KeyUser, string(record)); err != nil {
		s.log.Error().Err(err).Msg("no se pudo guardar el usuario")
		if derr := s.store.Delete(ctx, repository.KeyToken); derr != nil {
			s.log.Error().Err(derr).Msg("no se pudo revertir el token guardado")
		}
		return nil, fmt.Errorf("session login: guardar usuario: %w", err)
	}

	s.mu.Lock()
	changed := s.token != token
	s.token, s.user = token, user
	if changed {
		s.broadcastLocked()
	}
	s.mu.Unlock()
	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("sesión iniciada")
	return cloneUser(user), nil
}

// Logout limpia memoria y almacenamiento.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	was := s.token != ""
	s.token, s.user = "", nil
	if was {
		s.broadcastLocked()
	}
	s.mu.Unlock()
	return s.clearStorage(ctx)
}

// Token bearer vigente o "" sin sesión.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User copia del usuario actual o nil.
func (s *Session) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// Authenticated indica si hay un token decodificable cargado.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Subscribe entrega cada cambio del token efectivo: Login, Logout o cambios externos
// vistos por Watch. Un suscriptor lento solo conserva el último cambio.
func (s *Session) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 1)
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// Watch sigue los cambios del token guardado hechos por otras instancias (otra
// pestaña o proceso) y resincroniza la identidad en memoria. Bloquea hasta que ctx
// termina o el almacenamiento se cierra.
func (s *Session) Watch(ctx context.Context) error {
	changes, stop, err := s.store.Watch(ctx, repository.KeyToken)
	if err != nil {
		return fmt.Errorf("session watch: %w", err)
	}
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch, ok := <-changes:
			if !ok {
				return nil
			}
			s.apply(ch)
		}
	}
}

func (s *Session) apply(ch repository.Change) {
	value := strings.TrimSpace(ch.Value)
	if ch.Deleted {
		value = ""
	}

	var user *entity.User
	if value != "" {
		u, err := s.decode(value)
		if err != nil {
			s.log.Warn().Err(err).Msg("token externo inválido; sesión sin autenticar")
			value = ""
		} else {
			user = u
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if value == s.token {
		return
	}
	s.token, s.user = value, user
	s.log.Debug().Bool("authenticated", value != "").Msg("sesión sincronizada desde el almacenamiento")
	s.broadcastLocked()
}

// broadcastLocked requiere s.mu tomado.
func (s *Session) broadcastLocked() {
	ev := Change{Token: s.token, User: cloneUser(s.user)}
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func (s *Session) decode(token string) (*entity.User, error) {
	claims, err := jwt.Decode(token)
	if err != nil {
		return nil, err
	}
	if claims.Expired(s.now()) {
		return nil, fmt.Errorf("token vencido")
	}
	return &entity.User{
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Name:      strings.TrimSpace(claims.FirstName + " " + claims.LastName),
		Image:     claims.Image,
		Role:      claims.Role,
	}, nil
}

func (s *Session) clearStorage(ctx context.Context) error {
	if err := s.store.Delete(ctx, repository.KeyToken); err != nil {
		return fmt.Errorf("session: borrar token: %w", err)
	}
	if err := s.store.Delete(ctx, repository.KeyUser); err != nil {
		return fmt.Errorf("session: borrar usuario: %w", err)
	}
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
