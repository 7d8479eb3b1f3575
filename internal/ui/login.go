package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// authResultMsg carries the outcome of a login or register attempt.
type authResultMsg struct{ err error }

// loginPage handles both sign-in and registration; ctrl+r flips between the
// two modes.
type loginPage struct {
	deps     deps
	register bool
	signIn   form
	signUp   form
	busy     bool
}

func newLoginPage(d deps) page {
	p := loginPage{deps: d}
	p.signIn = newForm("pennywise · sign in", "Username", "Password").secret(1)
	p.signUp = newForm("pennywise · create account", "Username", "Email", "Password", "Confirm password").
		secret(2).secret(3)
	return p
}

func (p loginPage) Init() tea.Cmd   { return nil }
func (p loginPage) capturing() bool { return true }

func (p loginPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		p.busy = false
		if msg.err != nil {
			p.setErr(msg.err.Error())
			return p, nil
		}
		return p, func() tea.Msg { return loggedInMsg{} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+r" {
			p.register = !p.register
			p.setErr("")
			return p, nil
		}
		if p.busy {
			return p, nil
		}
	}

	f := p.activeForm()
	next, event, cmd := f.update(msg)
	p.setForm(next)
	if event == formSubmit {
		return p.submit()
	}
	return p, cmd
}

func (p loginPage) activeForm() form {
	if p.register {
		return p.signUp
	}
	return p.signIn
}

func (p *loginPage) setForm(f form) {
	if p.register {
		p.signUp = f
	} else {
		p.signIn = f
	}
}

func (p *loginPage) setErr(msg string) {
	p.signIn.err = msg
	p.signUp.err = msg
}

func (p loginPage) submit() (page, tea.Cmd) {
	d := p.deps
	if p.register {
		username := p.signUp.value(0)
		email := p.signUp.value(1)
		password := p.signUp.value(2)
		confirm := p.signUp.value(3)
		switch {
		case username == "" || email == "" || password == "":
			p.setErr("All fields are required")
			return p, nil
		case !strings.Contains(email, "@"):
			p.setErr("Enter a valid email address")
			return p, nil
		case len(password) < 6:
			p.setErr("Password must be at least 6 characters")
			return p, nil
		case password != confirm:
			p.setErr("Passwords do not match")
			return p, nil
		}
		p.busy = true
		p.setErr("")
		return p, func() tea.Msg {
			ctx, cancel := d.reqCtx()
			defer cancel()
			return authResultMsg{err: d.session.Register(ctx, username, email, password)}
		}
	}

	username := p.signIn.value(0)
	password := p.signIn.value(1)
	if username == "" || password == "" {
		p.setErr("Username and password are required")
		return p, nil
	}
	p.busy = true
	p.setErr("")
	return p, func() tea.Msg {
		ctx, cancel := d.reqCtx()
		defer cancel()
		return authResultMsg{err: d.session.Login(ctx, username, password)}
	}
}

func (p loginPage) View() string {
	body := p.activeForm().view()
	hint := "ctrl+r create account · ctrl+c quit"
	if p.register {
		hint = "ctrl+r back to sign in · ctrl+c quit"
	}
	if p.busy {
		hint = "signing in..."
	}
	return body + "\n" + helpStyle.Render(hint)
}
