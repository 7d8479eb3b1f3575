package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

type txLoadedMsg struct {
	list       []model.Transaction
	categories []model.Category
}

type txErrMsg struct{ err error }

type txSavedMsg struct {
	tx      model.Transaction
	created bool
}

type txSaveErrMsg struct{ err error }

type txDeletedMsg struct{ id int64 }

type txDeleteErrMsg struct {
	err      error
	snapshot []model.Transaction
}

var transactionTypes = []model.TransactionType{"", model.TypeIncome, model.TypeExpense}

// transactionsPage lists, filters and edits transactions. Creates and edits
// wait for the server; deletes apply immediately and roll back on failure.
type transactionsPage struct {
	deps    deps
	loading bool
	busy    bool
	err     string
	spin    spinner.Model

	all        []model.Transaction
	categories []string
	filter     model.TransactionFilter
	catIdx     int
	typeIdx    int

	tbl       table.Model
	search    textinput.Model
	searching bool

	frm      form
	formOpen bool
	editID   int64
}

func newTransactionsPage(d deps) page {
	p := transactionsPage{deps: d, loading: true, spin: newSpinner()}
	p.tbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Description", Width: 28},
			{Title: "Category", Width: 14},
			{Title: "Amount", Width: 10},
			{Title: "Type", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	p.search = textinput.New()
	p.search.Prompt = "/ "
	p.search.Placeholder = "search description or category"
	return p
}

func (p transactionsPage) Init() tea.Cmd   { return tea.Batch(p.fetch(), p.spin.Tick) }
func (p transactionsPage) capturing() bool { return p.searching || p.formOpen }

func (p transactionsPage) fetch() tea.Cmd {
	d := p.deps
	return func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var out txLoadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.list, err = d.api.ListTransactions(ctx, d.token())
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
			return txErrMsg{err: err}
		}
		return out
	}
}

func (p *transactionsPage) rebuildRows() {
	visible := model.FilterTransactions(p.all, p.filter)
	rows := make([]table.Row, 0, len(visible))
	for _, t := range visible {
		amount := money(t.Amount)
		rows = append(rows, table.Row{t.Date, t.Description, t.Category, amount, string(t.Type)})
	}
	p.tbl.SetRows(rows)
	if cur := p.tbl.Cursor(); cur >= len(rows) && len(rows) > 0 {
		p.tbl.SetCursor(len(rows) - 1)
	}
}

// selected maps the table cursor back to the transaction behind it, through
// the active filter.
func (p transactionsPage) selected() (model.Transaction, bool) {
	visible := model.FilterTransactions(p.all, p.filter)
	i := p.tbl.Cursor()
	if i < 0 || i >= len(visible) {
		return model.Transaction{}, false
	}
	return visible[i], true
}

func (p transactionsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case txLoadedMsg:
		p.loading = false
		p.err = ""
		p.all = msg.list
		p.categories = p.categories[:0]
		for _, c := range msg.categories {
			p.categories = append(p.categories, c.Name)
		}
		p.rebuildRows()
		return p, nil

	case txErrMsg:
		p.loading = false
		p.err = msg.err.Error()
		return p, nil

	case txSavedMsg:
		p.busy = false
		p.formOpen = false
		if msg.created {
			p.all = append(p.all, msg.tx)
		} else {
			for i := range p.all {
				if p.all[i].ID == msg.tx.ID {
					p.all[i] = msg.tx
				}
			}
		}
		p.rebuildRows()
		return p, nil

	case txSaveErrMsg:
		p.busy = false
		p.frm.err = msg.err.Error()
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		return p, nil

	case txDeletedMsg:
		return p, nil

	case txDeleteErrMsg:
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		p.all = msg.snapshot
		p.err = "Delete failed: " + msg.err.Error()
		p.rebuildRows()
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

func (p transactionsPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
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

	if p.searching {
		switch msg.String() {
		case "enter", "esc":
			p.searching = false
			p.search.Blur()
			return p, nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		p.filter.Search = p.search.Value()
		p.rebuildRows()
		return p, cmd
	}

	switch msg.String() {
	case "r":
		p.loading = true
		return p, tea.Batch(p.fetch(), p.spin.Tick)
	case "/":
		p.searching = true
		cmd := p.search.Focus()
		return p, cmd
	case "c":
		p.catIdx = (p.catIdx + 1) % (len(p.categories) + 1)
		if p.catIdx == 0 {
			p.filter.Category = ""
		} else {
			p.filter.Category = p.categories[p.catIdx-1]
		}
		p.rebuildRows()
		return p, nil
	case "t":
		p.typeIdx = (p.typeIdx + 1) % len(transactionTypes)
		p.filter.Type = transactionTypes[p.typeIdx]
		p.rebuildRows()
		return p, nil
	case "x":
		p.filter = model.TransactionFilter{}
		p.catIdx, p.typeIdx = 0, 0
		p.search.SetValue("")
		p.rebuildRows()
		return p, nil
	case "a":
		p.openForm(model.Transaction{Date: model.CurrentDate(p.deps.clock()), Type: model.TypeExpense}, 0)
		return p, nil
	case "e":
		if t, ok := p.selected(); ok {
			p.openForm(t, t.ID)
		}
		return p, nil
	case "d":
		return p.deleteSelected()
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p *transactionsPage) openForm(seed model.Transaction, editID int64) {
	title := "Add transaction"
	if editID != 0 {
		title = "Edit transaction"
	}
	p.frm = newForm(title, "Date (YYYY-MM-DD)", "Description", "Category", "Amount", "Type (income/expense)").
		withValues(seed.Date, seed.Description, seed.Category, amountValue(seed.Amount), string(seed.Type))
	p.formOpen = true
	p.editID = editID
}

func amountValue(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func (p transactionsPage) submitForm() (page, tea.Cmd) {
	draft, err := p.parseDraft()
	if err != "" {
		p.frm.err = err
		return p, nil
	}
	p.busy = true
	p.frm.err = ""
	d := p.deps
	editID := p.editID
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		var tx model.Transaction
		var callErr error
		if editID == 0 {
			tx, callErr = d.api.CreateTransaction(ctx, d.token(), draft)
		} else {
			tx, callErr = d.api.UpdateTransaction(ctx, d.token(), editID, draft)
		}
		if callErr != nil {
			return txSaveErrMsg{err: callErr}
		}
		d.refresh.Trigger()
		return txSavedMsg{tx: tx, created: editID == 0}
	}
}

func (p transactionsPage) parseDraft() (model.TransactionDraft, string) {
	var draft model.TransactionDraft
	draft.Date = p.frm.value(0)
	draft.Description = p.frm.value(1)
	draft.Category = p.frm.value(2)
	if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
		return draft, "Date must be YYYY-MM-DD"
	}
	if draft.Description == "" {
		return draft, "Description is required"
	}
	if draft.Category == "" {
		return draft, "Category is required"
	}
	amount, err := model.ParseAmount(p.frm.value(3))
	if err != nil || !amount.IsPositive() {
		return draft, "Amount must be a positive number"
	}
	draft.Amount = amount
	switch model.TransactionType(p.frm.value(4)) {
	case model.TypeIncome:
		draft.Type = model.TypeIncome
	case model.TypeExpense:
		draft.Type = model.TypeExpense
	default:
		return draft, "Type must be income or expense"
	}
	return draft, ""
}

func (p transactionsPage) deleteSelected() (page, tea.Cmd) {
	t, ok := p.selected()
	if !ok {
		return p, nil
	}
	snapshot := make([]model.Transaction, len(p.all))
	copy(snapshot, p.all)

	kept := p.all[:0]
	for _, x := range p.all {
		if x.ID != t.ID {
			kept = append(kept, x)
		}
	}
	p.all = kept
	p.err = ""
	p.rebuildRows()

	d := p.deps
	id := t.ID
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		if err := d.api.DeleteTransaction(ctx, d.token(), id); err != nil {
			return txDeleteErrMsg{err: err, snapshot: snapshot}
		}
		d.refresh.Trigger()
		return txDeletedMsg{id: id}
	}
}

func (p transactionsPage) View() string {
	if p.loading {
		return loadingView(p.spin, "transactions")
	}
	if p.formOpen {
		v := p.frm.view()
		if p.busy {
			v += "\n" + mutedStyle.Render("saving...")
		}
		return v
	}

	var b strings.Builder
	income, expenses := model.TransactionTotals(model.FilterTransactions(p.all, p.filter))
	b.WriteString(fmt.Sprintf("%s  in %s  out %s\n",
		titleStyle.Render("Transactions"),
		incomeStyle.Render(money(income)),
		expenseStyle.Render(money(expenses))))

	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n")
	}
	if p.searching {
		b.WriteString(p.search.View() + "\n")
	} else if f := p.filterLabel(); f != "" {
		b.WriteString(mutedStyle.Render("filter: "+f) + "\n")
	}
	b.WriteString(p.tbl.View() + "\n")
	b.WriteString(helpStyle.Render("a add · e edit · d delete · / search · c category · t type · x clear · r reload"))
	return b.String()
}

func (p transactionsPage) filterLabel() string {
	var parts []string
	if p.filter.Search != "" {
		parts = append(parts, "\""+p.filter.Search+"\"")
	}
	if p.filter.Category != "" {
		parts = append(parts, p.filter.Category)
	}
	if p.filter.Type != "" {
		parts = append(parts, string(p.filter.Type))
	}
	return strings.Join(parts, " · ")
}
