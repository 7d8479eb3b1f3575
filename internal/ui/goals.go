package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

type goalsLoadedMsg struct{ list []model.Goal }

type goalsErrMsg struct{ err error }

// goalCreatedMsg resolves the pending placeholder behind localID.
type goalCreatedMsg struct {
	localID string
	goal    model.Goal
}

type goalCreateErrMsg struct {
	localID string
	err     error
}

type goalUpdatedMsg struct{ goal model.Goal }

type goalUpdateErrMsg struct{ err error }

type goalDeletedMsg struct{ id int64 }

type goalDeleteErrMsg struct {
	err      error
	snapshot []goalRow
}

// goalRow is a goal plus its optimistic state. A pending row was created
// locally and is waiting for the server to assign a real id.
type goalRow struct {
	goal    model.Goal
	pending bool
	localID string
}

// goalsPage lists savings goals. Creates are optimistic: the goal appears
// immediately as a pending row and is reconciled or removed when the server
// answers. Edits wait for the server; deletes roll back on failure.
type goalsPage struct {
	deps    deps
	loading bool
	busy    bool
	err     string
	spin    spinner.Model

	rows   []goalRow
	cursor int
	bar    progress.Model

	frm      form
	formOpen bool
	editID   int64
}

func newGoalsPage(d deps) page {
	return goalsPage{
		deps:    d,
		loading: true,
		spin:    newSpinner(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage()),
	}
}

func (p goalsPage) Init() tea.Cmd   { return tea.Batch(p.fetch(), p.spin.Tick) }
func (p goalsPage) capturing() bool { return p.formOpen }

func (p goalsPage) fetch() tea.Cmd {
	d := p.deps
	return func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		list, err := d.api.ListGoals(ctx, d.token())
		if err != nil {
			if api.IsAuthStatus(err) {
				return authExpiredMsg{}
			}
			return goalsErrMsg{err: err}
		}
		return goalsLoadedMsg{list: list}
	}
}

func (p goalsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		p.loading = false
		p.err = ""
		rows := make([]goalRow, 0, len(msg.list))
		for _, g := range msg.list {
			rows = append(rows, goalRow{goal: g})
		}
		// Pending rows survive a reload; the server does not know them yet.
		for _, r := range p.rows {
			if r.pending {
				rows = append(rows, r)
			}
		}
		p.rows = rows
		p.clampCursor()
		return p, nil

	case goalsErrMsg:
		p.loading = false
		p.err = msg.err.Error()
		return p, nil

	case goalCreatedMsg:
		// A refresh-driven reload may have already listed the confirmed goal
		// while the placeholder was still pending. Drop the placeholder first
		// and only add the server row when the id is not shown yet.
		listed := false
		kept := p.rows[:0]
		for _, r := range p.rows {
			if r.localID == msg.localID {
				continue
			}
			if !r.pending && r.goal.ID == msg.goal.ID {
				listed = true
			}
			kept = append(kept, r)
		}
		p.rows = kept
		if !listed {
			p.rows = append(p.rows, goalRow{goal: msg.goal})
		}
		p.clampCursor()
		return p, nil

	case goalCreateErrMsg:
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		kept := p.rows[:0]
		for _, r := range p.rows {
			if r.localID != msg.localID {
				kept = append(kept, r)
			}
		}
		p.rows = kept
		p.err = "Could not create goal: " + msg.err.Error()
		p.clampCursor()
		return p, nil

	case goalUpdatedMsg:
		p.busy = false
		p.formOpen = false
		for i := range p.rows {
			if !p.rows[i].pending && p.rows[i].goal.ID == msg.goal.ID {
				p.rows[i].goal = msg.goal
			}
		}
		return p, nil

	case goalUpdateErrMsg:
		p.busy = false
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		p.frm.err = msg.err.Error()
		return p, nil

	case goalDeletedMsg:
		return p, nil

	case goalDeleteErrMsg:
		if api.IsAuthStatus(msg.err) {
			return p, authExpired
		}
		p.rows = msg.snapshot
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

func (p *goalsPage) clampCursor() {
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p goalsPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
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
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case "r":
		p.loading = true
		return p, tea.Batch(p.fetch(), p.spin.Tick)
	case "a":
		p.openForm(model.Goal{}, 0)
	case "e":
		if p.cursor < len(p.rows) && !p.rows[p.cursor].pending {
			g := p.rows[p.cursor].goal
			p.openForm(g, g.ID)
		}
	case "d":
		return p.deleteSelected()
	}
	return p, nil
}

func (p *goalsPage) openForm(seed model.Goal, editID int64) {
	title := "Add goal"
	if editID != 0 {
		title = "Edit goal"
	}
	p.frm = newForm(title, "Title", "Category", "Target amount", "Current amount", "Deadline (YYYY-MM-DD)").
		withValues(seed.Title, seed.Category, amountValue(seed.TargetAmount), amountValue(seed.CurrentAmount), seed.Deadline)
	p.formOpen = true
	p.editID = editID
}

func (p goalsPage) parseDraft() (model.GoalDraft, string) {
	var draft model.GoalDraft
	draft.Title = p.frm.value(0)
	draft.Category = p.frm.value(1)
	if draft.Title == "" {
		return draft, "Title is required"
	}
	target, err := model.ParseAmount(p.frm.value(2))
	if err != nil || !target.IsPositive() {
		return draft, "Target amount must be a positive number"
	}
	draft.TargetAmount = target
	current := p.frm.value(3)
	if current != "" {
		amount, err := model.ParseAmount(current)
		if err != nil || amount.IsNegative() {
			return draft, "Current amount must be a non-negative number"
		}
		draft.CurrentAmount = amount
	}
	draft.Deadline = p.frm.value(4)
	if _, err := time.Parse("2006-01-02", draft.Deadline); err != nil {
		return draft, "Deadline must be YYYY-MM-DD"
	}
	return draft, ""
}

func (p goalsPage) submitForm() (page, tea.Cmd) {
	draft, errMsg := p.parseDraft()
	if errMsg != "" {
		p.frm.err = errMsg
		return p, nil
	}
	d := p.deps

	if p.editID != 0 {
		p.busy = true
		p.frm.err = ""
		editID := p.editID
		return p, func() tea.Msg {
			ctx, cancel := d.reqCtx()
			defer cancel()
			g, err := d.api.UpdateGoal(ctx, d.token(), editID, draft)
			if err != nil {
				return goalUpdateErrMsg{err: err}
			}
			d.refresh.Trigger()
			return goalUpdatedMsg{goal: g}
		}
	}

	// Optimistic create: show the goal now, reconcile when the server answers.
	localID := uuid.NewString()
	p.rows = append(p.rows, goalRow{
		goal: model.Goal{
			Title:         draft.Title,
			Category:      draft.Category,
			TargetAmount:  draft.TargetAmount,
			CurrentAmount: draft.CurrentAmount,
			Deadline:      draft.Deadline,
		},
		pending: true,
		localID: localID,
	})
	p.formOpen = false
	p.err = ""
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		g, err := d.api.CreateGoal(ctx, d.token(), draft)
		if err != nil {
			return goalCreateErrMsg{localID: localID, err: err}
		}
		d.refresh.Trigger()
		return goalCreatedMsg{localID: localID, goal: g}
	}
}

func (p goalsPage) deleteSelected() (page, tea.Cmd) {
	if p.cursor >= len(p.rows) || p.rows[p.cursor].pending {
		return p, nil
	}
	target := p.rows[p.cursor].goal
	snapshot := make([]goalRow, len(p.rows))
	copy(snapshot, p.rows)

	p.rows = append(p.rows[:p.cursor], p.rows[p.cursor+1:]...)
	p.err = ""
	p.clampCursor()

	d := p.deps
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		if err := d.api.DeleteGoal(ctx, d.token(), target.ID); err != nil {
			return goalDeleteErrMsg{err: err, snapshot: snapshot}
		}
		d.refresh.Trigger()
		return goalDeletedMsg{id: target.ID}
	}
}

func (p goalsPage) View() string {
	if p.loading {
		return loadingView(p.spin, "goals")
	}
	if p.formOpen {
		v := p.frm.view()
		if p.busy {
			v += "\n" + mutedStyle.Render("saving...")
		}
		return v
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Goals") + "\n")
	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n")
	}
	if len(p.rows) == 0 {
		b.WriteString(mutedStyle.Render("No goals yet. Press a to add one.") + "\n")
	}

	now := p.deps.clock()
	for i, row := range p.rows {
		prefix := "  "
		if i == p.cursor {
			prefix = selectedStyle.Render("> ")
		}
		g := row.goal
		share := model.GoalProgress(g.CurrentAmount, g.TargetAmount)
		deadline := g.Deadline
		if days, err := model.DaysRemaining(g.Deadline, now); err == nil {
			if model.Overdue(days) {
				deadline = errorStyle.Render("overdue")
			} else {
				deadline = fmt.Sprintf("%dd left", days)
			}
		}
		line := fmt.Sprintf("%s%-20s %s %s  %s / %s  %s",
			prefix, g.Title, p.bar.ViewAs(share/100), pct(share),
			money(g.CurrentAmount), money(g.TargetAmount), mutedStyle.Render(deadline))
		if row.pending {
			line += " " + pendingStyle.Render("(saving...)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(helpStyle.Render("a add · e edit · d delete · r reload"))
	return b.String()
}
