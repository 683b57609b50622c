package engagement

import (
	"context"
	"fmt"
	"strings"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

const maxMessageLen = 5000

// Service formularios públicos de contacto y newsletter. La validación ocurre antes
// de cualquier llamada de red.
type Service struct {
	api    ports.EngagementAPI
	notify ports.Notifier
	log    *logger.Logger
}

// NewService construye el servicio.
func NewService(api ports.EngagementAPI, notifier ports.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, notify: notifier, log: log.Component("engagement")}
}

// SubmitContact POST /contact/submit.
func (s *Service) SubmitContact(ctx context.Context, in dto.ContactRequest) (*dto.MessageResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateContact(in); err != nil {
		s.notify.Error(domain.UserMessage(err))
		return nil, err
	}
	res, err := s.api.SubmitContact(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("envío de contacto fallido")
		s.notify.Error(domain.UserMessage(err))
		return nil, fmt.Errorf("contact: %w", err)
	}
	res.Message = orDefault(res.Message, "Thanks for reaching out. We will get back to you soon.")
	s.notify.Success(res.Message)
	return res, nil
}

// Subscribe POST /subscriptions/subscribe.
func (s *Service) Subscribe(ctx context.Context, email string) (*dto.MessageResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !domain.ValidEmail(email) {
		err := fmt.Errorf("%w: email", domain.ErrInvalidInput)
		s.notify.Error(domain.UserMessage(err))
		return nil, err
	}
	res, err := s.api.Subscribe(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("suscripción fallida")
		s.notify.Error(domain.UserMessage(err))
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	res.Message = orDefault(res.Message, "You are subscribed to our newsletter")
	s.notify.Success(res.Message)
	return res, nil
}

func validateContact(in dto.ContactRequest) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name", domain.ErrInvalidInput)
	case !domain.ValidEmail(in.Email):
		return fmt.Errorf("%w: email", domain.ErrInvalidInput)
	case in.Message == "":
		return fmt.Errorf("%w: message", domain.ErrInvalidInput)
	case len(in.Message) > maxMessageLen:
		return fmt.Errorf("%w: message too long", domain.ErrInvalidInput)
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
