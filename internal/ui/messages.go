package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// authExpiredMsg is raised by any page whose fetch came back 401/403. The app
// clears the session and drops to the login page; the page never renders
// partial authenticated data.
type authExpiredMsg struct{}

// loggedInMsg is raised by the login page after the session store accepted
// credentials.
type loggedInMsg struct{}

// loggedOutMsg is raised by pages offering an explicit logout action.
type loggedOutMsg struct{}

// refreshTickMsg carries a refresh-signal value into the event loop.
type refreshTickMsg struct{ key int }

// authExpired wraps the marker as a command result.
func authExpired() tea.Msg { return authExpiredMsg{} }

// listenForRefresh re-arms the refresh subscription. The returned command
// blocks on the subscriber channel, so it must be re-issued after every tick.
func listenForRefresh(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		return refreshTickMsg{key: <-ch}
	}
}
