package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func (c *Client) DashboardSummary(ctx context.Context, token string) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	err := c.do(ctx, http.MethodGet, "/dashboard/summary", token, nil, &out)
	return out, err
}

// ExpenseBreakdown aggregates expenses by category for one month (YYYY-MM).
func (c *Client) ExpenseBreakdown(ctx context.Context, token, month string) ([]model.CategoryAmount, error) {
	var out []model.CategoryAmount
	err := c.do(ctx, http.MethodGet, "/dashboard/expense-breakdown?month="+url.QueryEscape(month), token, nil, &out)
	return out, err
}

func (c *Client) SpendingTrends(ctx context.Context, token string, months int) ([]model.MonthlyTrend, error) {
	var out []model.MonthlyTrend
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dashboard/spending-trends?months=%d", months), token, nil, &out)
	return out, err
}

func (c *Client) CurrentMonthOverview(ctx context.Context, token string) (model.MonthlyOverview, error) {
	var out model.MonthlyOverview
	err := c.do(ctx, http.MethodGet, "/dashboard/current-month-overview", token, nil, &out)
	return out, err
}

// GenerateAdvice consumes one AI generation attempt. There is no retry and no
// idempotency guarantee; callers must gate on GenerationsLeft themselves.
func (c *Client) GenerateAdvice(ctx context.Context, token string) (model.AIAdvice, error) {
	var out model.AIAdvice
	err := c.do(ctx, http.MethodPost, "/dashboard/ai-advice", token, nil, &out)
	return out, err
}
