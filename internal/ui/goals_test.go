package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api/apitest"
	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

func loadedGoalsPage(t *testing.T, srv *apitest.Server) goalsPage {
	t.Helper()
	d := newTestDeps(t, srv)
	p := newGoalsPage(d)
	p = run(t, p, p.Init())
	return p.(goalsPage)
}

func TestGoalsPageOptimisticCreate(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	p := loadedGoalsPage(t, srv)

	next, _ := p.Update(keyRune("a"))
	p = next.(goalsPage)
	p.frm = p.frm.withValues("Emergency fund", "Savings", "5000", "100", "2026-01-01")

	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(goalsPage)
	require.NotNil(t, cmd)
	require.Len(t, p.rows, 1, "goal is visible before the server answers")
	assert.True(t, p.rows[0].pending)
	assert.NotEmpty(t, p.rows[0].localID)
	assert.Zero(t, p.rows[0].goal.ID)

	next, _ = p.Update(cmd())
	p = next.(goalsPage)
	require.Len(t, p.rows, 1)
	assert.False(t, p.rows[0].pending)
	assert.NotZero(t, p.rows[0].goal.ID, "placeholder swapped for the server row")
	assert.Equal(t, "Emergency fund", p.rows[0].goal.Title)
}

func TestGoalsPageCreateFailureRemovesPlaceholder(t *testing.T) {
	srv := apitest.NewServer()

	p := loadedGoalsPage(t, srv)

	next, _ := p.Update(keyRune("a"))
	p = next.(goalsPage)
	p.frm = p.frm.withValues("Trip", "Travel", "2000", "", "2026-06-01")

	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(goalsPage)
	require.Len(t, p.rows, 1)

	srv.Close() // create hits a dead server

	next, _ = p.Update(cmd())
	p = next.(goalsPage)
	assert.Empty(t, p.rows, "failed create removes the placeholder")
	assert.Contains(t, p.err, "Could not create goal")
}

func TestGoalsPageDeleteRollsBack(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Goals = []model.Goal{
		{ID: 7, Title: "Bike", Category: "Fun", TargetAmount: dec("800"), CurrentAmount: dec("200"), Deadline: "2025-12-01"},
	}

	p := loadedGoalsPage(t, srv)
	require.Len(t, p.rows, 1)

	srv.Goals = nil // the delete will 404

	next, cmd := p.Update(keyRune("d"))
	p = next.(goalsPage)
	assert.Empty(t, p.rows, "row disappears immediately")

	next, _ = p.Update(cmd())
	p = next.(goalsPage)
	require.Len(t, p.rows, 1, "failed delete restores the row")
	assert.Equal(t, "Bike", p.rows[0].goal.Title)
}

func TestGoalsPageCreateSurvivesRefreshRace(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	p := loadedGoalsPage(t, srv)

	next, _ := p.Update(keyRune("a"))
	p = next.(goalsPage)
	p.frm = p.frm.withValues("Vacation", "Travel", "3000", "", "2026-03-01")
	next, create := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(goalsPage)
	require.Len(t, p.rows, 1)

	// The refresh-driven reload can land before the create confirmation: the
	// server already lists the new goal while the placeholder is still
	// pending locally.
	createdMsg := create()
	p = run(t, p, p.fetch()).(goalsPage)
	require.Len(t, p.rows, 2, "server row plus the still-pending placeholder")

	next, _ = p.Update(createdMsg)
	p = next.(goalsPage)
	titles := 0
	for _, r := range p.rows {
		if r.goal.Title == "Vacation" {
			titles++
			assert.False(t, r.pending)
			assert.NotZero(t, r.goal.ID)
		}
	}
	assert.Equal(t, 1, titles, "late confirmation must not duplicate the goal")
}

func TestGoalsPageReloadKeepsPendingRows(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	p := loadedGoalsPage(t, srv)
	p.rows = append(p.rows, goalRow{goal: model.Goal{Title: "Pending"}, pending: true, localID: "x"})

	p2 := run(t, p, p.fetch()).(goalsPage)
	require.Len(t, p2.rows, 1)
	assert.True(t, p2.rows[0].pending)
}

func TestGoalsPageEditWaitsForServer(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.Goals = []model.Goal{
		{ID: 7, Title: "Bike", Category: "Fun", TargetAmount: dec("800"), CurrentAmount: dec("200"), Deadline: "2025-12-01"},
	}

	p := loadedGoalsPage(t, srv)

	next, _ := p.Update(keyRune("e"))
	p = next.(goalsPage)
	require.True(t, p.formOpen)

	p.frm = p.frm.withValues("Bike", "Fun", "900", "250", "2025-12-01")
	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(goalsPage)
	require.True(t, p.busy)
	assert.True(t, p.rows[0].goal.TargetAmount.Equal(dec("800")), "list unchanged until the server confirms")

	next, _ = p.Update(cmd())
	p = next.(goalsPage)
	assert.False(t, p.formOpen)
	assert.True(t, p.rows[0].goal.TargetAmount.Equal(dec("900")))
}
