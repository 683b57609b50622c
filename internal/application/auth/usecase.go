package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

// Vistas a las que el UI navega tras cada flujo.
const (
	NextHome        = "/"
	NextLogin       = "/login"
	NextVerifyEmail = "/verify-email"
)

// Resetter estado de sesión que se vacía al cerrar sesión (carrito, wishlist).
type Resetter interface {
	Reset()
}

// UseCase flujos de cuenta del comprador: login, registro y verificación de email.
type UseCase struct {
	api     ports.AuthAPI
	session *session.Session
	store   repository.Storage
	notify  ports.Notifier
	resets  []Resetter
	log     *logger.Logger
}

// NewUseCase construye los flujos de cuenta. resets se vacían en SignOut.
func NewUseCase(api ports.AuthAPI, sess *session.Session, store repository.Storage, notifier ports.Notifier, log *logger.Logger, resets ...Resetter) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{api: api, session: sess, store: store, notify: notifier, resets: resets, log: log.Component("auth")}
}

// SignIn login con email y contraseña. Si el backend indica email sin verificar,
// guarda el email pendiente, pide un código nuevo y dirige a la vista de verificación.
func (uc *UseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.SignInResponse, error) {
	email := strings.TrimSpace(in.Email)
	if !domain.ValidEmail(email) || in.Password == "" {
		return nil, uc.reject(domain.ErrInvalidInput)
	}
	res, err := uc.api.Login(ctx, dto.LoginRequest{Email: email, Password: in.Password})
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotVerified) {
			return uc.startVerification(ctx, email, err)
		}
		uc.log.Warn().Err(err).Str("email", email).Msg("login rechazado")
		return nil, uc.reject(err)
	}
	return uc.complete(ctx, res)
}

// SignInWithGoogle login con el access token de OAuth.
func (uc *UseCase) SignInWithGoogle(ctx context.Context, accessToken string) (*dto.SignInResponse, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, uc.reject(domain.ErrInvalidInput)
	}
	res, err := uc.api.LoginWithGoogle(ctx, accessToken)
	if err != nil {
		uc.log.Warn().Err(err).Msg("login con Google rechazado")
		return nil, uc.reject(err)
	}
	return uc.complete(ctx, res)
}

// Register crea la cuenta; el backend envía el OTP y el UI pasa a verificación.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.SignInResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if !domain.ValidEmail(in.Email) || in.FirstName == "" || in.LastName == "" || len(in.Password) < 6 {
		return nil, uc.reject(domain.ErrInvalidInput)
	}
	res, err := uc.api.Register(ctx, in)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", in.Email).Msg("registro rechazado")
		return nil, uc.reject(err)
	}
	if err := uc.store.Set(ctx, repository.KeyPendingVerificationEmail, in.Email); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo guardar el email pendiente")
	}
	msg := orDefault(res.Message, "Account created. Check your email for the verification code.")
	uc.notify.Success(msg)
	return &dto.SignInResponse{Next: NextVerifyEmail, Message: msg}, nil
}

// VerifyEmail consume el OTP. Email vacío usa el pendiente guardado. Si el backend
// devuelve token, la sesión queda iniciada.
func (uc *UseCase) VerifyEmail(ctx context.Context, in dto.VerifyEmailRequest) (*dto.SignInResponse, error) {
	otp := strings.TrimSpace(in.OTP)
	if otp == "" {
		return nil, uc.reject(domain.ErrInvalidInput)
	}
	email, err := uc.pendingOr(ctx, in.Email)
	if err != nil {
		return nil, uc.reject(err)
	}
	res, err := uc.api.VerifyEmail(ctx, email, otp)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("verificación rechazada")
		return nil, uc.reject(err)
	}
	if err := uc.store.Delete(ctx, repository.KeyPendingVerificationEmail); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo borrar el email pendiente")
	}
	if strings.TrimSpace(res.Token) == "" {
		msg := orDefault(res.Message, "Email verified. Please sign in.")
		uc.notify.Success(msg)
		return &dto.SignInResponse{Next: NextLogin, Message: msg}, nil
	}
	return uc.complete(ctx, res)
}

// ResendVerification pide un OTP nuevo para email o el pendiente guardado.
func (uc *UseCase) ResendVerification(ctx context.Context, email string) (*dto.MessageResponse, error) {
	email, err := uc.pendingOr(ctx, email)
	if err != nil {
		return nil, uc.reject(err)
	}
	res, err := uc.api.RequestEmailVerification(ctx, email)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("reenvío de código rechazado")
		return nil, uc.reject(err)
	}
	msg := orDefault(res.Message, "A new verification code was sent to "+email)
	uc.notify.Success(msg)
	return &dto.MessageResponse{Message: msg}, nil
}

// PendingEmail email que espera verificación, "" si no hay.
func (uc *UseCase) PendingEmail(ctx context.Context) string {
	v, ok, err := uc.store.Get(ctx, repository.KeyPendingVerificationEmail)
	if err != nil || !ok {
		return ""
	}
	return v
}

// SignOut cierra la sesión y vacía el carrito y la wishlist locales.
func (uc *UseCase) SignOut(ctx context.Context) error {
	if err := uc.session.Logout(ctx); err != nil {
		uc.log.Error().Err(err).Msg("logout")
		return fmt.Errorf("sign out: %w", err)
	}
	for _, r := range uc.resets {
		r.Reset()
	}
	uc.notify.Info("You have been signed out")
	return nil
}

func (uc *UseCase) complete(ctx context.Context, res *dto.AuthResponse) (*dto.SignInResponse, error) {
	user, err := uc.session.Login(ctx, res.Token)
	if err != nil {
		return nil, uc.reject(err)
	}
	msg := orDefault(res.Message, "Welcome back, "+user.FirstName)
	uc.notify.Success(msg)
	return &dto.SignInResponse{Authenticated: true, User: user, Next: NextHome, Message: msg}, nil
}

// startVerification un fallo al pedir el código no impide llegar a la vista de
// verificación: desde allí el comprador puede reenviarlo.
func (uc *UseCase) startVerification(ctx context.Context, email string, cause error) (*dto.SignInResponse, error) {
	uc.log.Info().Str("email", email).Msg("email sin verificar; se solicita nuevo código")
	if err := uc.store.Set(ctx, repository.KeyPendingVerificationEmail, email); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo guardar el email pendiente")
	}
	if _, err := uc.api.RequestEmailVerification(ctx, email); err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("no se pudo solicitar el código de verificación")
	}
	msg := domain.UserMessage(cause)
	uc.notify.Info(msg)
	return &dto.SignInResponse{Next: NextVerifyEmail, Message: msg}, nil
}

func (uc *UseCase) pendingOr(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = uc.PendingEmail(ctx)
	}
	if email == "" {
		return "", domain.ErrNoPendingEmail
	}
	if !domain.ValidEmail(email) {
		return "", domain.ErrInvalidInput
	}
	return email, nil
}

// reject notifica el error y lo devuelve sin cambios.
func (uc *UseCase) reject(err error) error {
	uc.notify.Error(domain.UserMessage(err))
	return err
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
