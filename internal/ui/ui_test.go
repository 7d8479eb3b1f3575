package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/api/apitest"
	"github.com/AdnanMGHaider/pennywise-cli/internal/refresh"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
)

func newTestDeps(t *testing.T, srv *apitest.Server) deps {
	t.Helper()
	client := api.New(srv.BaseURL(), 5*time.Second, nil)
	store := session.NewStore(session.NewFileStorage(t.TempDir()), client, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, store.Login(ctx, apitest.DefaultUsername, apitest.DefaultPassword))

	return deps{
		api:     client,
		session: store,
		refresh: refresh.NewSignal(),
		timeout: 5 * time.Second,
		now:     func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes a command synchronously and feeds the result back in,
// unpacking batches the way the runtime would.
func run(t *testing.T, p page, cmd tea.Cmd) page {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			next, _ := p.Update(c())
			p = next
		}
		return p
	}
	next, _ := p.Update(msg)
	return next
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
