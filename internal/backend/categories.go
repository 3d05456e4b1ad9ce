package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
)

type Categories struct{ c *Client }

func NewCategories(c *Client) *Categories { return &Categories{c: c} }

func (s *Categories) List(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	if err := s.c.do(ctx, http.MethodGet, "/categories", "categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Categories) GetByID(ctx context.Context, id int64) (*catalog.Category, error) {
	var out catalog.Category
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), "categories", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categories) Create(ctx context.Context, c catalog.Category) (*catalog.Category, error) {
	var out catalog.Category
	if err := s.c.do(ctx, http.MethodPost, "/categories", "categories", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categories) Update(ctx context.Context, id int64, c catalog.Category) (*catalog.Category, error) {
	var out catalog.Category
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), "categories", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categories) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), "categories", nil, nil)
}
