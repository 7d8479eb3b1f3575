package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
)

// Runner dispatches the non-interactive subcommands. The interactive app is
// started through TUI so this package stays free of terminal setup.
type Runner struct {
	Client  *api.Client
	Store   *session.Store
	Log     *logrus.Logger
	Timeout time.Duration

	// TUI opens the interactive app on the named page.
	TUI func(page string) error

	// Stdin is swappable for tests; defaults to os.Stdin.
	Stdin *bufio.Reader
}

// Run executes one subcommand and returns an exit code: 0 ok, 1 error,
// 2 usage.
func (r *Runner) Run(args []string) int {
	if len(args) == 0 {
		return r.runTUI("dashboard")
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "tui", "dashboard", "tx", "transactions", "budgets", "goals", "reports", "settings":
		if cmd == "tui" {
			cmd = "dashboard"
		}
		return r.runTUI(cmd)

	case "login":
		if len(a) < 1 || len(a) > 2 {
			fail("usage: pennywise login <username> [password]")
			return 2
		}
		return r.doLogin(a)

	case "register":
		if len(a) != 2 {
			fail("usage: pennywise register <username> <email>")
			return 2
		}
		return r.doRegister(a[0], a[1])

	case "logout":
		r.Store.Logout()
		ok("logged out")
		return 0

	case "status", "whoami":
		return r.doStatus()
	}

	fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`pennywise - personal finance in your terminal

Usage:
  pennywise [subcommand]

Subcommands:
  (none), tui, dashboard    Open the interactive dashboard
  tx, transactions          Open the app on the transactions page
  budgets, goals            Open the app on that page
  reports, settings         Open the app on that page
  login <username>          Sign in (password is prompted, or passed as 2nd arg)
  register <user> <email>   Create an account (password is prompted)
  logout                    Forget the stored session
  status, whoami            Show who is signed in
  help                      Show this help

Environment:
  PENNYWISE_API_URL    Backend base URL (default http://localhost:8080/api)
  PENNYWISE_TOKEN      Bearer token override, skips the stored session
`)
}

func (r *Runner) ctx() (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (r *Runner) readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	in := r.Stdin
	if in == nil {
		in = bufio.NewReader(os.Stdin)
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *Runner) runTUI(page string) int {
	if r.TUI == nil {
		fail("interactive mode is not available")
		return 1
	}
	if err := r.TUI(page); err != nil {
		fail(err.Error())
		return 1
	}
	return 0
}

func (r *Runner) doLogin(a []string) int {
	username := a[0]
	var password string
	if len(a) == 2 {
		password = a[1]
	} else {
		p, err := r.readSecret("Password: ")
		if err != nil {
			fail("reading password: " + err.Error())
			return 1
		}
		password = p
	}
	if password == "" {
		fail("login: empty password")
		return 2
	}

	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.Store.Login(ctx, username, password); err != nil {
		fail(err.Error())
		return 1
	}
	ok("logged in as " + username)
	return 0
}

func (r *Runner) doRegister(username, email string) int {
	password, err := r.readSecret("Password: ")
	if err != nil {
		fail("reading password: " + err.Error())
		return 1
	}
	if len(password) < 6 {
		fail("register: password must be at least 6 characters")
		return 2
	}
	confirm, err := r.readSecret("Confirm password: ")
	if err != nil {
		fail("reading password: " + err.Error())
		return 1
	}
	if password != confirm {
		fail("register: passwords do not match")
		return 2
	}

	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.Store.Register(ctx, username, email, password); err != nil {
		fail(err.Error())
		return 1
	}
	ok("account created, logged in as " + username)
	return 0
}

func (r *Runner) doStatus() int {
	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.Store.Restore(ctx); err != nil {
		fail("session: " + err.Error())
		return 1
	}
	s := r.Store.Session()
	if s == nil {
		fail("not logged in")
		return 1
	}
	panel([]string{
		colorize(bold, "Signed in"),
		colorize(fgGray, "Username  ") + s.User.Username,
		colorize(fgGray, "Email     ") + s.User.Email,
	})
	return 0
}
