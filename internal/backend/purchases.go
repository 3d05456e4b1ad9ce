package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkazantsev/workshop-bot/internal/domain/purchases"
)

type Purchases struct{ c *Client }

func NewPurchases(c *Client) *Purchases { return &Purchases{c: c} }

func (s *Purchases) List(ctx context.Context) ([]purchases.Purchase, error) {
	var out []purchases.Purchase
	if err := s.c.do(ctx, http.MethodGet, "/purchases", "purchases", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Purchases) Create(ctx context.Context, p purchases.Purchase) (*purchases.Purchase, error) {
	var out purchases.Purchase
	if err := s.c.do(ctx, http.MethodPost, "/purchases", "purchases", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Purchases) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/purchases/%d", id), "purchases", nil, nil)
}
