package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func (c *Client) ListTransactions(ctx context.Context, token string) ([]model.Transaction, error) {
	var out []model.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", token, nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, token string, draft model.TransactionDraft) (model.Transaction, error) {
	var out model.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", token, draft, &out)
	return out, err
}

// UpdateTransaction is a full replacement of the entity behind id.
func (c *Client) UpdateTransaction(ctx context.Context, token string, id int64, draft model.TransactionDraft) (model.Transaction, error) {
	var out model.Transaction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), token, draft, &out)
	return out, err
}

func (c *Client) DeleteTransaction(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), token, nil, nil)
}
