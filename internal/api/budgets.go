package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func (c *Client) ListBudgets(ctx context.Context, token string) ([]model.Budget, error) {
	var out []model.Budget
	err := c.do(ctx, http.MethodGet, "/budgets", token, nil, &out)
	return out, err
}

func (c *Client) CreateBudget(ctx context.Context, token string, draft model.BudgetDraft) (model.Budget, error) {
	var out model.Budget
	err := c.do(ctx, http.MethodPost, "/budgets", token, draft, &out)
	return out, err
}

func (c *Client) UpdateBudget(ctx context.Context, token string, id int64, draft model.BudgetDraft) (model.Budget, error) {
	var out model.Budget
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/budgets/%d", id), token, draft, &out)
	return out, err
}

func (c *Client) DeleteBudget(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/budgets/%d", id), token, nil, nil)
}
