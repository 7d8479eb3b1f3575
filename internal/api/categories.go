package api

import (
	"context"
	"net/http"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func (c *Client) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	var out []model.Category
	err := c.do(ctx, http.MethodGet, "/categories", token, nil, &out)
	return out, err
}
