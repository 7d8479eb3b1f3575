package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
)

func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle
	return sp
}

func loadingView(sp spinner.Model, what string) string {
	return sp.View() + mutedStyle.Render("Loading "+what+"...")
}
