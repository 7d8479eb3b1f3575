package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formEvent is what a key did to the form.
type formEvent int

const (
	formNone formEvent = iota
	formSubmit
	formCancel
)

// form is a stack of labelled text inputs with focus cycling. Enter submits,
// esc cancels, tab / shift+tab / up / down move focus.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(title string, labels ...string) form {
	f := form{title: title, labels: labels}
	f.inputs = make([]textinput.Model, len(labels))
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f form) withValues(values ...string) form {
	for i, v := range values {
		if i < len(f.inputs) {
			f.inputs[i].SetValue(v)
			f.inputs[i].CursorEnd()
		}
	}
	return f
}

func (f form) withPlaceholders(placeholders ...string) form {
	for i, p := range placeholders {
		if i < len(f.inputs) {
			f.inputs[i].Placeholder = p
		}
	}
	return f
}

// secret switches the input at i to password echo.
func (f form) secret(i int) form {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].EchoMode = textinput.EchoPassword
		f.inputs[i].EchoCharacter = '•'
	}
	return f
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) update(msg tea.Msg) (form, formEvent, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return f, formSubmit, nil
		case "esc":
			return f, formCancel, nil
		case "tab", "down":
			return f.moveFocus(1), formNone, nil
		case "shift+tab", "up":
			return f.moveFocus(-1), formNone, nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, formNone, cmd
}

func (f form) moveFocus(delta int) form {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	if f.err != "" {
		b.WriteString("  " + errorStyle.Render(f.err))
	}
	b.WriteString("\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = accentStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}
	b.WriteString(helpStyle.Render("enter save · esc cancel · tab next field"))
	return panelStyle.Render(b.String())
}
