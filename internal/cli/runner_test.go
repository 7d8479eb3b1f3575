package cli

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/api/apitest"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
)

func newTestRunner(t *testing.T, srv *apitest.Server, stdin string) *Runner {
	t.Helper()
	client := api.New(srv.BaseURL(), 5*time.Second, nil)
	store := session.NewStore(session.NewFileStorage(t.TempDir()), client, nil, nil)
	return &Runner{
		Client:  client,
		Store:   store,
		Timeout: 5 * time.Second,
		Stdin:   bufio.NewReader(strings.NewReader(stdin)),
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "")
	assert.Equal(t, 2, r.Run([]string{"frobnicate"}))
}

func TestRunLoginArgAndLogout(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "")
	require.Equal(t, 0, r.Run([]string{"login", apitest.DefaultUsername, apitest.DefaultPassword}))
	assert.True(t, r.Store.Authenticated())

	require.Equal(t, 0, r.Run([]string{"logout"}))
	assert.False(t, r.Store.Authenticated())
}

func TestRunLoginPromptsForPassword(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, apitest.DefaultPassword+"\n")
	require.Equal(t, 0, r.Run([]string{"login", apitest.DefaultUsername}))
	assert.True(t, r.Store.Authenticated())
}

func TestRunLoginBadPassword(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "")
	assert.Equal(t, 1, r.Run([]string{"login", apitest.DefaultUsername, "nope"}))
	assert.False(t, r.Store.Authenticated())
}

func TestRunRegister(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "secret456\nsecret456\n")
	require.Equal(t, 0, r.Run([]string{"register", "alice", "alice@example.com"}))
	assert.True(t, r.Store.Authenticated())
}

func TestRunRegisterPasswordMismatch(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "secret456\nother456\n")
	assert.Equal(t, 2, r.Run([]string{"register", "alice", "alice@example.com"}))
}

func TestRunStatus(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "")
	assert.Equal(t, 1, r.Run([]string{"status"}), "signed out")

	require.Equal(t, 0, r.Run([]string{"login", apitest.DefaultUsername, apitest.DefaultPassword}))
	assert.Equal(t, 0, r.Run([]string{"status"}))
}

func TestRunBareArgsOpenTUI(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	r := newTestRunner(t, srv, "")
	opened := ""
	r.TUI = func(page string) error { opened = page; return nil }
	assert.Equal(t, 0, r.Run(nil))
	assert.Equal(t, "dashboard", opened)
}

func TestRunPageCommandsOpenTUIOnThatPage(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	cases := []struct {
		arg  string
		want string
	}{
		{"tui", "dashboard"},
		{"dashboard", "dashboard"},
		{"tx", "tx"},
		{"transactions", "transactions"},
		{"budgets", "budgets"},
		{"goals", "goals"},
		{"reports", "reports"},
		{"settings", "settings"},
	}
	for _, tc := range cases {
		r := newTestRunner(t, srv, "")
		opened := ""
		r.TUI = func(page string) error { opened = page; return nil }
		assert.Equal(t, 0, r.Run([]string{tc.arg}), tc.arg)
		assert.Equal(t, tc.want, opened, tc.arg)
	}
}
