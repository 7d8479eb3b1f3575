package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// settingsPage shows the signed-in profile and hosts the logout action. The
// password form only validates locally; the backend has no change-password
// endpoint yet.
type settingsPage struct {
	deps     deps
	frm      form
	formOpen bool
	notice   string
}

func newSettingsPage(d deps) page {
	return settingsPage{deps: d}
}

func (p settingsPage) Init() tea.Cmd   { return nil }
func (p settingsPage) capturing() bool { return p.formOpen }

func (p settingsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.formOpen {
		var event formEvent
		var cmd tea.Cmd
		p.frm, event, cmd = p.frm.update(key)
		switch event {
		case formCancel:
			p.formOpen = false
			return p, nil
		case formSubmit:
			password := p.frm.value(0)
			confirm := p.frm.value(1)
			switch {
			case len(password) < 6:
				p.frm.err = "Password must be at least 6 characters"
			case password != confirm:
				p.frm.err = "Passwords do not match"
			default:
				p.formOpen = false
				p.notice = "Password checks passed. Changing it is not supported yet."
			}
			return p, nil
		}
		return p, cmd
	}

	switch key.String() {
	case "p":
		p.frm = newForm("Change password", "New password", "Confirm password").secret(0).secret(1)
		p.formOpen = true
		p.notice = ""
	case "l":
		return p, func() tea.Msg { return loggedOutMsg{} }
	}
	return p, nil
}

func (p settingsPage) View() string {
	if p.formOpen {
		return p.frm.view()
	}

	var b strings.Builder
	lines := []string{titleStyle.Render("Profile")}
	if s := p.deps.session.Session(); s != nil {
		lines = append(lines,
			"Username  "+s.User.Username,
			"Email     "+s.User.Email)
	} else {
		lines = append(lines, mutedStyle.Render("Not signed in"))
	}
	b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	if p.notice != "" {
		b.WriteString(successStyle.Render(p.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("p change password · l log out"))
	return b.String()
}
