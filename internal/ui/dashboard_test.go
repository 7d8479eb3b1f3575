package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api/apitest"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func loadedDashboardPage(t *testing.T, srv *apitest.Server) dashboardPage {
	t.Helper()
	d := newTestDeps(t, srv)
	p := newDashboardPage(d)
	p = run(t, p, p.Init())
	return p.(dashboardPage)
}

func TestDashboardPageLoadsEverythingTogether(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Summary = model.DashboardSummary{TotalIncome: dec("3000"), TotalExpenses: dec("1200")}
	srv.Breakdown = []model.CategoryAmount{{Category: "Food", Amount: dec("300")}}
	srv.Trends = []model.MonthlyTrend{{Month: "2025-06", Income: dec("3000"), Expenses: dec("1200")}}

	p := loadedDashboardPage(t, srv)
	assert.False(t, p.loading)
	assert.Empty(t, p.err)
	assert.True(t, p.summary.TotalIncome.Equal(dec("3000")))
	assert.Len(t, p.breakdown, 1)
	assert.Len(t, p.trends, 1)
	assert.Equal(t, 3, p.generationsLeft())
}

func TestDashboardPageAdviceDecrementsCounter(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	p := loadedDashboardPage(t, srv)
	require.Equal(t, 3, p.generationsLeft())

	next, cmd := p.Update(keyRune("g"))
	p = next.(dashboardPage)
	require.True(t, p.adviceBusy)
	require.NotNil(t, cmd)

	next, _ = p.Update(cmd())
	p = next.(dashboardPage)
	assert.False(t, p.adviceBusy)
	assert.Equal(t, "Spend less than you earn.", p.advice)
	assert.Equal(t, 2, p.generationsLeft())
}

func TestDashboardPageAdviceBlockedAtZero(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.GenerationsLeft = 0

	p := loadedDashboardPage(t, srv)
	require.Equal(t, 0, p.generationsLeft())

	next, cmd := p.Update(keyRune("g"))
	p = next.(dashboardPage)
	assert.Nil(t, cmd, "no request leaves the client when the quota is spent")
	assert.False(t, p.adviceBusy)
	assert.Equal(t, 0, srv.RequestCount("POST /api/dashboard/ai-advice"))
}

func TestDashboardPageRefreshTickRefetches(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	p := loadedDashboardPage(t, srv)
	before := srv.RequestCount("GET /api/dashboard/summary")

	next, cmd := p.Update(refreshTickMsg{key: 1})
	p = next.(dashboardPage)
	require.True(t, p.loading)
	run(t, p, cmd)
	assert.Equal(t, before+1, srv.RequestCount("GET /api/dashboard/summary"))
}

func TestDashboardPageAuthExpiry(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	d := newTestDeps(t, srv)
	p := newDashboardPage(d).(dashboardPage)
	d.session.Logout()

	msg := p.fetch()()
	assert.IsType(t, authExpiredMsg{}, msg)
}
