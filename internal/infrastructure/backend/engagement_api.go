package backend

import (
	"context"
	"net/http"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/ports"
)

var _ ports.EngagementAPI = (*EngagementAPI)(nil)

// EngagementAPI adaptador de los formularios públicos.
type EngagementAPI struct {
	c *Client
}

// NewEngagementAPI construye el adaptador.
func NewEngagementAPI(c *Client) *EngagementAPI { return &EngagementAPI{c: c} }

// SubmitContact POST /contact/submit.
func (a *EngagementAPI) SubmitContact(ctx context.Context, in dto.ContactRequest) (*dto.MessageResponse, error) {
	raw, err := a.c.do(ctx, call{method: http.MethodPost, route: "/contact/submit", path: "/contact/submit", body: in})
	if err != nil {
		return nil, err
	}
	var out dto.MessageResponse
	if err := decode("POST /contact/submit", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscribe POST /subscriptions/subscribe.
func (a *EngagementAPI) Subscribe(ctx context.Context, email string) (*dto.MessageResponse, error) {
	raw, err := a.c.do(ctx, call{
		method: http.MethodPost, route: "/subscriptions/subscribe", path: "/subscriptions/subscribe",
		body: dto.EmailRequest{Email: email},
	})
	if err != nil {
		return nil, err
	}
	var out dto.MessageResponse
	if err := decode("POST /subscriptions/subscribe", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
