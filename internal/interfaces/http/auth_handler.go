package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/auth"
	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
)

// AuthHandler login, registro, verificación de email y estado de la sesión.
type AuthHandler struct {
	uc   *auth.UseCase
	sess *session.Session
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, sess *session.Session) *AuthHandler {
	return &AuthHandler{uc: uc, sess: sess}
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(dto.SessionResponse{Authenticated: h.sess.Authenticated(), User: h.sess.User()})
}

// AdoptToken godoc
// @Summary      Iniciar sesión con un token ya emitido
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenLoginRequest  true  "token"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *AuthHandler) AdoptToken(c *fiber.Ctx) error {
	var in dto.TokenLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.sess.Login(c.UserContext(), in.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionResponse{Authenticated: true, User: user})
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.uc.SignOut(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Account godoc
// @Summary      Perfil del comprador (requiere sesión)
// @Tags         session
// @Produce      json
// @Success      200  {object}  entity.User
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/account [get]
func (h *AuthHandler) Account(c *fiber.Ctx) error {
	return c.JSON(GetUser(c))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SignInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Google godoc
// @Summary      Iniciar sesión con Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "accessToken"
// @Success      200   {object}  dto.SignInResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignInWithGoogle(c.UserContext(), in.AccessToken)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "firstName, lastName, email, password"
// @Success      201   {object}  dto.SignInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VerifyEmail godoc
// @Summary      Verificar email con OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "otp, email opcional"
// @Success      200   {object}  dto.SignInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VerifyEmail(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResendVerification godoc
// @Summary      Reenviar código de verificación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  false  "email (vacío = pendiente)"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.ResendVerification(c.UserContext(), in.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PendingEmail godoc
// @Summary      Email que espera verificación
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.EmailRequest
// @Router       /api/auth/pending-email [get]
func (h *AuthHandler) PendingEmail(c *fiber.Ctx) error {
	return c.JSON(dto.EmailRequest{Email: h.uc.PendingEmail(c.UserContext())})
}
