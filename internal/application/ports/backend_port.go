package ports

import (
	"context"
	"net/url"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// AuthAPI puerto de salida hacia /users del backend.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, accessToken string) (*dto.AuthResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error)
	VerifyEmail(ctx context.Context, email, otp string) (*dto.AuthResponse, error)
	RequestEmailVerification(ctx context.Context, email string) (*dto.MessageResponse, error)
}

// CartAPI puerto hacia /cart. Cada método es exactamente una llamada REST; el carrito
// devuelto es la respuesta del servidor sin recalcular.
type CartAPI interface {
	Get(ctx context.Context, token string) (*dto.CartEnvelope, error)
	Add(ctx context.Context, token, productID string, quantity int) (*dto.CartEnvelope, error)
	UpdateItem(ctx context.Context, token, productID string, quantity int) (*dto.CartEnvelope, error)
	RemoveItem(ctx context.Context, token, productID string) (*dto.CartEnvelope, error)
	Clear(ctx context.Context, token string) (*dto.CartEnvelope, error)
}

// WishlistAPI puerto hacia /wishlist. Los ítems llegan sin normalizar.
type WishlistAPI interface {
	Get(ctx context.Context, token string) (*dto.WishlistEnvelope, error)
	Add(ctx context.Context, token, productID string) (*dto.WishlistEnvelope, error)
	Remove(ctx context.Context, token, productID string) (*dto.WishlistEnvelope, error)
	Clear(ctx context.Context, token string) (*dto.WishlistEnvelope, error)
}

// CatalogAPI puerto de lectura del catálogo (público).
type CatalogAPI interface {
	ListProducts(ctx context.Context, query url.Values) (*entity.ProductPage, error)
	ListOffers(ctx context.Context, query url.Values) (*entity.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	Reviews(ctx context.Context, productID string) (*entity.ReviewSummary, error)
}

// EngagementAPI formularios públicos: contacto y newsletter.
type EngagementAPI interface {
	SubmitContact(ctx context.Context, in dto.ContactRequest) (*dto.MessageResponse, error)
	Subscribe(ctx context.Context, email string) (*dto.MessageResponse, error)
}

// TokenSource entrega el bearer token vigente ("" si no hay sesión).
type TokenSource interface {
	Token() string
}

// Notifier superficie de notificaciones transitorias y descartables del UI.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}
