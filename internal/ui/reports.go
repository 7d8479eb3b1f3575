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

type reportsLoadedMsg struct {
	overview  model.MonthlyOverview
	breakdown []model.CategoryAmount
}

type reportsErrMsg struct{ err error }

const topCategoryCount = 5

// reportsPage is the current-month report: the overview numbers plus the five
// biggest expense categories.
type reportsPage struct {
	deps    deps
	loading bool
	err     string
	spin    spinner.Model

	overview model.MonthlyOverview
	top      []model.CategoryAmount
}

func newReportsPage(d deps) page {
	return reportsPage{deps: d, loading: true, spin: newSpinner()}
}

func (p reportsPage) Init() tea.Cmd   { return tea.Batch(p.fetch(), p.spin.Tick) }
func (p reportsPage) capturing() bool { return false }

func (p reportsPage) fetch() tea.Cmd {
	d := p.deps
	month := model.CurrentYearMonth(d.clock())
	return func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var out reportsLoadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.overview, err = d.api.CurrentMonthOverview(ctx, d.token())
			return err
		})
		g.Go(func() (err error) {
			out.breakdown, err = d.api.ExpenseBreakdown(ctx, d.token(), month)
			return err
		})
		if err := g.Wait(); err != nil {
			if api.IsAuthStatus(err) {
				return authExpiredMsg{}
			}
			return reportsErrMsg{err: err}
		}
		return out
	}
}

func (p reportsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		p.loading = false
		p.err = ""
		p.overview = msg.overview
		p.top = model.TopCategories(msg.breakdown, topCategoryCount)
		return p, nil

	case reportsErrMsg:
		p.loading = false
		p.err = msg.err.Error()
		return p, nil

	case refreshTickMsg:
		return p, p.fetch()

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			p.loading = true
			return p, tea.Batch(p.fetch(), p.spin.Tick)
		}
	}
	return p, nil
}

func (p reportsPage) View() string {
	if p.loading {
		return loadingView(p.spin, "report")
	}
	if p.err != "" {
		return errorStyle.Render("Error: "+p.err) + "\n" + helpStyle.Render("r retry")
	}

	var b strings.Builder
	o := p.overview
	b.WriteString(panelStyle.Render(strings.Join([]string{
		titleStyle.Render(o.CurrentMonthYearString),
		fmt.Sprintf("Income       %s", incomeStyle.Render(money(o.TotalIncome))),
		fmt.Sprintf("Expenses     %s", expenseStyle.Render(money(o.TotalExpenses))),
		fmt.Sprintf("Net income   %s", money(o.NetIncome)),
		fmt.Sprintf("Savings rate %s%%", o.SavingsRate.StringFixed(1)),
	}, "\n")))
	b.WriteString("\n")

	lines := []string{titleStyle.Render("Top expense categories")}
	if len(p.top) == 0 {
		lines = append(lines, mutedStyle.Render("No expenses this month"))
	}
	for i, c := range p.top {
		lines = append(lines, fmt.Sprintf("%d. %-16s %s", i+1, c.Category, expenseStyle.Render(money(c.Amount))))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r refresh"))
	return b.String()
}
