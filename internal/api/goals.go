package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func (c *Client) ListGoals(ctx context.Context, token string) ([]model.Goal, error) {
	var out []model.Goal
	err := c.do(ctx, http.MethodGet, "/goals", token, nil, &out)
	return out, err
}

func (c *Client) CreateGoal(ctx context.Context, token string, draft model.GoalDraft) (model.Goal, error) {
	var out model.Goal
	err := c.do(ctx, http.MethodPost, "/goals", token, draft, &out)
	return out, err
}

func (c *Client) UpdateGoal(ctx context.Context, token string, id int64, draft model.GoalDraft) (model.Goal, error) {
	var out model.Goal
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/goals/%d", id), token, draft, &out)
	return out, err
}

func (c *Client) DeleteGoal(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", id), token, nil, nil)
}
