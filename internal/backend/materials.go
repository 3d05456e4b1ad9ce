package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
)

type Materials struct{ c *Client }

func NewMaterials(c *Client) *Materials { return &Materials{c: c} }

func (s *Materials) List(ctx context.Context) ([]catalog.Material, error) {
	var out []catalog.Material
	if err := s.c.do(ctx, http.MethodGet, "/materials", "materials", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Materials) GetByID(ctx context.Context, id int64) (*catalog.Material, error) {
	var out catalog.Material
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/materials/%d", id), "materials", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Materials) Create(ctx context.Context, m catalog.Material) (*catalog.Material, error) {
	var out catalog.Material
	if err := s.c.do(ctx, http.MethodPost, "/materials", "materials", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Materials) Update(ctx context.Context, id int64, m catalog.Material) (*catalog.Material, error) {
	var out catalog.Material
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/materials/%d", id), "materials", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Materials) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/materials/%d", id), "materials", nil, nil)
}
