package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

type budgetsLoadedMsg struct {
	list       []model.Budget
	categories []model.Category
}

type budgetsErrMsg struct{ err error }

type budgetSavedMsg struct {
	budget  model.Budget
	created bool
}

type budgetSaveErrMsg struct{ err error }

type budgetDeletedMsg struct{ id int64 }

type budgetDeleteErrMsg struct {
	err      error
	snapshot []model.Budget
}

// budgetsPage lists per-category budgets with a spent bar. SpentAmount comes
// from the server and is never edited here. Budget categories come from the
// categories endpoint minus "Income"; income is not budgetable.
type budgetsPage struct {
	deps    deps
	loading bool
	busy    bool
	err     string
	spin    spinner.Model

	list       []model.Budget
	categories []string
	cursor     int
	bar        progress.Model

	frm      form
	formOpen bool
	editID   int64
}

func newBudgetsPage(d deps) page {
	return budgetsPage{
		deps:    d,
		loading: true,
		spin:    newSpinner(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage()),
	}
}

func (p budgetsPage) Init() tea.Cmd   { return tea.Batch(p.fetch(), p.spin.Tick) }
func (p budgetsPage) capturing() bool { return p.formOpen }

func (p budgetsPage) fetch() tea.Cmd {
	d := p.deps
	return func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var out budgetsLoadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.list, err = d.api.ListBudgets(ctx, d.token())
			return err
		})
		g.Go(func() (err error) {
			out.categories, err = d.api.ListCategories(ctx, d.token())
			return err
		})
		if err := g.Wait(); err != nil {
			if api.IsAuthStatus(err) {
				return authExpiredMsg{}
			}
			return budgetsErrMsg{err: err}
		}
		return out
	}
}

func (p budgetsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		p.loading = false
		p.err = ""
		p.list = msg.list
		p.categories = p.categories[:0]
		for _, c := range msg.categories {
			if c.Name != "Income" {
				p.categories = append(p.categories, c.Name)
			}
		}
		p.clampCursor()
		return p, nil

	case budgetsErrMsg:
		p.loading = false
		p.err = msg.err.Error()
		return p, nil

	case budgetSavedMsg:
		p.busy = false
		p.formOpen = false
		if msg.created {
			p.list = append(p.list, msg.budget)
		} else {
			for i := range p.list {
				if p.list[i].ID == msg.budget.ID {
					p.list[i] = msg.budget
				}
			}
		}
		return p, nil

	case budgetSaveErrMsg:
		p.busy = false
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		p.frm.err = msg.err.Error()
		return p, nil

	case budgetDeletedMsg:
		return p, nil

	case budgetDeleteErrMsg:
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		p.list = msg.snapshot
		p.err = "Delete failed: " + msg.err.Error()
		p.clampCursor()
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
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *budgetsPage) clampCursor() {
	if p.cursor >= len(p.list) {
		p.cursor = len(p.list) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p budgetsPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if p.formOpen {
		if p.busy {
			return p, nil
		}
		var event formEvent
		var cmd tea.Cmd
		p.frm, event, cmd = p.frm.update(msg)
		switch event {
		case formCancel:
			p.formOpen = false
			return p, nil
		case formSubmit:
			return p.submitForm()
		}
		return p, cmd
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.list)-1 {
			p.cursor++
		}
	case "r":
		p.loading = true
		return p, tea.Batch(p.fetch(), p.spin.Tick)
	case "a":
		p.openForm(model.Budget{Month: model.FirstOfMonth(model.CurrentYearMonth(p.deps.clock()))}, 0)
	case "e":
		if p.cursor < len(p.list) {
			b := p.list[p.cursor]
			p.openForm(b, b.ID)
		}
	case "d":
		return p.deleteSelected()
	}
	return p, nil
}

func (p *budgetsPage) openForm(seed model.Budget, editID int64) {
	title := "Add budget"
	if editID != 0 {
		title = "Edit budget"
	}
	p.frm = newForm(title, "Category", "Budget amount", "Month (YYYY-MM)").
		withValues(seed.Category, amountValue(seed.BudgetAmount), model.YearMonth(seed.Month)).
		withPlaceholders(strings.Join(p.categories, " / "))
	p.formOpen = true
	p.editID = editID
}

// validCategory accepts any category the backend offers except "Income".
func (p budgetsPage) validCategory(name string) bool {
	for _, c := range p.categories {
		if c == name {
			return true
		}
	}
	return false
}

func (p budgetsPage) submitForm() (page, tea.Cmd) {
	var draft model.BudgetDraft
	draft.Category = p.frm.value(0)
	if !p.validCategory(draft.Category) {
		p.frm.err = "Category must be one of: " + strings.Join(p.categories, ", ")
		return p, nil
	}
	amount, err := model.ParseAmount(p.frm.value(1))
	if err != nil || amount.IsNegative() {
		p.frm.err = "Budget amount must be a non-negative number"
		return p, nil
	}
	draft.BudgetAmount = amount
	month := p.frm.value(2)
	if _, err := time.Parse("2006-01", month); err != nil {
		p.frm.err = "Month must be YYYY-MM"
		return p, nil
	}
	draft.Month = model.FirstOfMonth(month)

	p.busy = true
	p.frm.err = ""
	d := p.deps
	editID := p.editID
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var b model.Budget
		var callErr error
		if editID == 0 {
			b, callErr = d.api.CreateBudget(ctx, d.token(), draft)
		} else {
			b, callErr = d.api.UpdateBudget(ctx, d.token(), editID, draft)
		}
		if callErr != nil {
			return budgetSaveErrMsg{err: callErr}
		}
		d.refresh.Trigger()
		return budgetSavedMsg{budget: b, created: editID == 0}
	}
}

func (p budgetsPage) deleteSelected() (page, tea.Cmd) {
	if p.cursor >= len(p.list) {
		return p, nil
	}
	target := p.list[p.cursor]
	snapshot := make([]model.Budget, len(p.list))
	copy(snapshot, p.list)

	p.list = append(p.list[:p.cursor], p.list[p.cursor+1:]...)
	p.err = ""
	p.clampCursor()

	d := p.deps
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		if err := d.api.DeleteBudget(ctx, d.token(), target.ID); err != nil {
			return budgetDeleteErrMsg{err: err, snapshot: snapshot}
		}
		d.refresh.Trigger()
		return budgetDeletedMsg{id: target.ID}
	}
}

func (p budgetsPage) View() string {
	if p.loading {
		return loadingView(p.spin, "budgets")
	}
	if p.formOpen {
		v := p.frm.view()
		if p.busy {
			v += "\n" + mutedStyle.Render("saving...")
		}
		return v
	}

	var b strings.Builder
	totalBudget, totalSpent := model.BudgetTotals(p.list)
	b.WriteString(fmt.Sprintf("%s  %s of %s spent\n",
		titleStyle.Render("Budgets"), money(totalSpent), money(totalBudget)))
	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n")
	}
	if len(p.list) == 0 {
		b.WriteString(mutedStyle.Render("No budgets yet. Press a to add one.") + "\n")
	}

	for i, budget := range p.list {
		prefix := "  "
		if i == p.cursor {
			prefix = selectedStyle.Render("> ")
		}
		status := model.StatusFor(budget.SpentAmount, budget.BudgetAmount)
		share := model.SpentPercentage(budget.SpentAmount, budget.BudgetAmount)
		ratio := share / 100
		if math.IsInf(ratio, 1) {
			ratio = 1
		}
		line := fmt.Sprintf("%s%-14s %s %s  %s / %s  %s",
			prefix,
			budget.Category,
			mutedStyle.Render(model.YearMonth(budget.Month)),
			p.bar.ViewAs(math.Min(ratio, 1)),
			money(budget.SpentAmount),
			money(budget.BudgetAmount),
			statusStyle(string(status)).Render(pct(share)))
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("a add · e edit · d delete · r reload"))
	return b.String()
}
