package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
)

type Orders struct{ c *Client }

func NewOrders(c *Client) *Orders { return &Orders{c: c} }

func (s *Orders) List(ctx context.Context) ([]orders.Order, error) {
	var out []orders.Order
	if err := s.c.do(ctx, http.MethodGet, "/orders", "orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Orders) GetByID(ctx context.Context, id int64) (*orders.Order, error) {
	var out orders.Order
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), "orders", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Orders) Create(ctx context.Context, o orders.Order) (*orders.Order, error) {
	var out orders.Order
	if err := s.c.do(ctx, http.MethodPost, "/orders", "orders", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Orders) Update(ctx context.Context, id int64, o orders.Order) (*orders.Order, error) {
	var out orders.Order
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), "orders", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Orders) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), "orders", nil, nil)
}

// UpdateStatus — частичное обновление: на бэкенд уходит только статус.
func (s *Orders) UpdateStatus(ctx context.Context, id int64, status orders.Status) error {
	body := map[string]orders.Status{"status": status}
	return s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), "orders", body, nil)
}
