package ui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
	"github.com/AdnanMGHaider/pennywise-cli/internal/refresh"
	"github.com/AdnanMGHaider/pennywise-cli/internal/session"
)

type pageID int

const (
	pageLogin pageID = iota
	pageDashboard
	pageTransactions
	pageBudgets
	pageGoals
	pageReports
	pageSettings
)

var tabOrder = []pageID{pageDashboard, pageTransactions, pageBudgets, pageGoals, pageReports, pageSettings}

func (p pageID) title() string {
	switch p {
	case pageDashboard:
		return "Dashboard"
	case pageTransactions:
		return "Transactions"
	case pageBudgets:
		return "Budgets"
	case pageGoals:
		return "Goals"
	case pageReports:
		return "Reports"
	case pageSettings:
		return "Settings"
	default:
		return "Sign in"
	}
}

// pageByName resolves a command-line page name. Unknown names land on the
// dashboard.
func pageByName(name string) pageID {
	switch name {
	case "transactions", "tx":
		return pageTransactions
	case "budgets":
		return pageBudgets
	case "goals":
		return pageGoals
	case "reports":
		return pageReports
	case "settings":
		return pageSettings
	default:
		return pageDashboard
	}
}

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Pages     key.Binding
}

var appKeys = keyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Pages:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "pages")),
}

// page is one screen of the app. capturing reports whether the page owns the
// keyboard (a focused form or search box), which suppresses global shortcuts.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	capturing() bool
}

// App is the Bubble Tea root model. It owns navigation, the refresh
// subscription and the auth lifecycle; everything else lives in the pages.
type App struct {
	deps      deps
	active    pageID
	current   page
	refreshCh <-chan int
	width     int
	height    int
}

// NewApp builds the root model. start names the first page to show when a
// session exists ("transactions", "budgets", ...); signed-out users land on
// the login page regardless.
func NewApp(client *api.Client, store *session.Store, signal *refresh.Signal, log *logrus.Logger, timeout time.Duration, start string) App {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	d := deps{api: client, session: store, refresh: signal, log: log, timeout: timeout}
	a := App{deps: d, refreshCh: signal.Subscribe()}
	if store.Authenticated() {
		a.active = pageByName(start)
	} else {
		a.active = pageLogin
	}
	a.current = a.makePage(a.active)
	return a
}

func (a App) makePage(id pageID) page {
	switch id {
	case pageDashboard:
		return newDashboardPage(a.deps)
	case pageTransactions:
		return newTransactionsPage(a.deps)
	case pageBudgets:
		return newBudgetsPage(a.deps)
	case pageGoals:
		return newGoalsPage(a.deps)
	case pageReports:
		return newReportsPage(a.deps)
	case pageSettings:
		return newSettingsPage(a.deps)
	default:
		return newLoginPage(a.deps)
	}
}

func (a App) switchTo(id pageID) (App, tea.Cmd) {
	a.active = id
	a.current = a.makePage(id)
	return a, a.current.Init()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.current.Init(), listenForRefresh(a.refreshCh))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height

	case authExpiredMsg:
		a.deps.log.Warn("session rejected by backend, signing out")
		a.deps.session.Logout()
		return a.switchTo(pageLogin)

	case loggedOutMsg:
		a.deps.session.Logout()
		return a.switchTo(pageLogin)

	case loggedInMsg:
		return a.switchTo(pageDashboard)

	case refreshTickMsg:
		next, cmd := a.current.Update(msg)
		a.current = next
		return a, tea.Batch(cmd, listenForRefresh(a.refreshCh))

	case tea.KeyMsg:
		if key.Matches(msg, appKeys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active != pageLogin && !a.current.capturing() {
			switch {
			case key.Matches(msg, appKeys.Quit):
				return a, tea.Quit
			case key.Matches(msg, appKeys.Pages):
				idx := int(msg.String()[0] - '1')
				if target := tabOrder[idx]; target != a.active {
					return a.switchTo(target)
				}
				return a, nil
			}
		}
	}

	next, cmd := a.current.Update(msg)
	a.current = next
	return a, cmd
}

func (a App) View() string {
	if a.active == pageLogin {
		return a.current.View()
	}
	return a.header() + "\n" + a.current.View() + "\n" + a.footer()
}

func (a App) header() string {
	tabs := make([]string, 0, len(tabOrder))
	for i, id := range tabOrder {
		label := id.title()
		if id == a.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(mutedStyle.Render(string('1'+byte(i)))+" "+label))
		}
	}
	return strings.Join(tabs, "")
}

func (a App) footer() string {
	who := ""
	if s := a.deps.session.Session(); s != nil {
		who = s.User.Username + " · "
	}
	pages := appKeys.Pages.Help()
	quit := appKeys.Quit.Help()
	return helpStyle.Render(who + pages.Key + " " + pages.Desc + " · " + quit.Key + " " + quit.Desc)
}
