package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

type dashboardLoadedMsg struct {
	summary   model.DashboardSummary
	breakdown []model.CategoryAmount
	trends    []model.MonthlyTrend
}

type dashboardErrMsg struct{ err error }

type adviceMsg struct {
	advice model.AIAdvice
	err    error
}

const trendMonths = 6

// dashboardPage shows the summary cards, the current month's expense
// breakdown and the income/expense trend. All three load together; a failure
// in any of them fails the whole page rather than rendering a partial view.
type dashboardPage struct {
	deps       deps
	loading    bool
	err        string
	spin       spinner.Model
	summary    model.DashboardSummary
	breakdown  []model.CategoryAmount
	trends     []model.MonthlyTrend
	advice     string
	adviceBusy bool
}

func newDashboardPage(d deps) page {
	return dashboardPage{deps: d, loading: true, spin: newSpinner()}
}

func (p dashboardPage) Init() tea.Cmd   { return tea.Batch(p.fetch(), p.spin.Tick) }
func (p dashboardPage) capturing() bool { return false }

func (p dashboardPage) fetch() tea.Cmd {
	d := p.deps
	month := model.CurrentYearMonth(d.clock())
	return func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var out dashboardLoadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.summary, err = d.api.DashboardSummary(ctx, d.token())
			return err
		})
		g.Go(func() (err error) {
			out.breakdown, err = d.api.ExpenseBreakdown(ctx, d.token(), month)
			return err
		})
		g.Go(func() (err error) {
			out.trends, err = d.api.SpendingTrends(ctx, d.token(), trendMonths)
			return err
		})
		if err := g.Wait(); err != nil {
			if api.IsAuthStatus(err) {
				return authExpiredMsg{}
			}
			return dashboardErrMsg{err: err}
		}
		return out
	}
}

func (p dashboardPage) generationsLeft() int {
	if p.summary.AIGenerationsLeft == nil {
		return 0
	}
	return *p.summary.AIGenerationsLeft
}

func (p dashboardPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		p.loading = false
		p.err = ""
		p.summary = msg.summary
		p.breakdown = msg.breakdown
		p.trends = msg.trends
		return p, nil

	case dashboardErrMsg:
		p.loading = false
		p.err = msg.err.Error()
		return p, nil

	case adviceMsg:
		p.adviceBusy = false
		if msg.err != nil {
			if api.IsAuthStatus(msg.err) {
				return p, authExpired
			}
			p.advice = ""
			p.err = msg.err.Error()
			return p, nil
		}
		left := msg.advice.GenerationsLeft
		p.summary.AIGenerationsLeft = &left
		if msg.advice.Advice != "" {
			p.advice = msg.advice.Advice
		} else {
			p.advice = msg.advice.Message
		}
		return p, nil

	case refreshTickMsg:
		p.loading = true
		return p, tea.Batch(p.fetch(), p.spin.Tick)

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			p.loading = true
			return p, tea.Batch(p.fetch(), p.spin.Tick)
		case "g":
			if p.loading || p.adviceBusy || p.generationsLeft() <= 0 {
				return p, nil
			}
			p.adviceBusy = true
			d := p.deps
			return p, func() tea.Msg {
				ctx, cancel := d.reqCtx()
				defer cancel()
				advice, err := d.api.GenerateAdvice(ctx, d.token())
				return adviceMsg{advice: advice, err: err}
			}
		}
	}
	return p, nil
}

func (p dashboardPage) View() string {
	if p.loading {
		return loadingView(p.spin, "dashboard")
	}
	if p.err != "" {
		return errorStyle.Render("Error: "+p.err) + "\n" + helpStyle.Render("r retry")
	}

	var b strings.Builder
	s := p.summary
	b.WriteString(panelStyle.Render(strings.Join([]string{
		titleStyle.Render("This month"),
		fmt.Sprintf("Income    %s  %s", money(s.TotalIncome), signedPct(s.MonthlyIncomeChangePercentage)),
		fmt.Sprintf("Expenses  %s  %s", money(s.TotalExpenses), signedPct(s.MonthlyExpensesChangePercentage)),
		fmt.Sprintf("Net worth %s  %s", money(s.NetWorth), signedPct(s.NetWorthChangePercentage)),
		fmt.Sprintf("Savings   %s%%  %s", s.SavingsRate.StringFixed(1), signedPct(s.SavingsRateChangePercentage)),
	}, "\n")))
	b.WriteString("\n")

	lines := []string{titleStyle.Render("Expenses by category")}
	if len(p.breakdown) == 0 {
		lines = append(lines, mutedStyle.Render("No expenses this month"))
	}
	for _, c := range p.breakdown {
		lines = append(lines, fmt.Sprintf("%-16s %s", c.Category, expenseStyle.Render(money(c.Amount))))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	lines = []string{titleStyle.Render("Trend")}
	for _, t := range p.trends {
		lines = append(lines, fmt.Sprintf("%-8s in %s  out %s",
			t.Month, incomeStyle.Render(money(t.Income)), expenseStyle.Render(money(t.Expenses))))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if p.advice != "" {
		b.WriteString(panelStyle.Render(titleStyle.Render("AI advice") + "\n" + p.advice))
		b.WriteString("\n")
	}

	hint := fmt.Sprintf("r refresh · g advice (%d left)", p.generationsLeft())
	if p.adviceBusy {
		hint = "generating advice..."
	}
	b.WriteString(helpStyle.Render(hint))
	return b.String()
}
