// Package tui is the watch screen: it shows the current report, reloads
// it when the ledger changes on disk, and offers a small menu for
// editing and appending.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/ledger"
	"github.com/christopherklint97/timelog/internal/model"
	"github.com/christopherklint97/timelog/internal/parse"
	"github.com/christopherklint97/timelog/internal/report"
)

const (
	recentProjectDays = 30
	recentProjectMax  = 5
	headerHeight      = 3
)

type viewState int

const (
	reportView viewState = iota
	warningsView
	errorView
)

type tickMsg time.Time

type loadedMsg struct {
	entries  []model.DayEntry
	warnings []string
	err      error
}

type editorFinishedMsg struct {
	err error
}

type App struct {
	filename string
	dates    func() calendar.DateRange
	mode     report.Mode
	editor   string
	poll     time.Duration

	state    viewState
	menu     menu
	viewport viewport.Model
	ready    bool

	entries  []model.DayEntry
	warnings []string
	errMsg   string
	lastMod  time.Time
}

func NewApp(filename string, dates func() calendar.DateRange, mode report.Mode, editor string, poll time.Duration) *App {
	return &App{
		filename: filename,
		dates:    dates,
		mode:     mode,
		editor:   editor,
		poll:     poll,
		menu:     newMenu(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.load, a.tick())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// load parses the ledger off the Update loop.
func (a *App) load() tea.Msg {
	entries, warnings, err := parse.ParseFile(a.filename)
	return loadedMsg{entries: entries, warnings: warnings, err: err}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - headerHeight
		}
		a.refresh()
		return a, nil

	case tickMsg:
		if info, err := os.Stat(a.filename); err == nil && !info.ModTime().Equal(a.lastMod) {
			a.lastMod = info.ModTime()
			return a, tea.Batch(a.load, a.tick())
		}
		return a, a.tick()

	case loadedMsg:
		if msg.err != nil {
			a.state = errorView
			a.errMsg = msg.err.Error()
		} else {
			a.entries = msg.entries
			a.warnings = msg.warnings
			a.state = reportView
		}
		a.refresh()
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.state = errorView
			a.errMsg = msg.err.Error()
			a.refresh()
			return a, nil
		}
		return a, a.load

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c":
		return a, tea.Quit
	case "left":
		a.menu.left()
		return a, nil
	case "right":
		a.menu.right()
		return a, nil
	case "enter":
		return a, a.run(a.menu.current())
	default:
		if action, ok := a.menu.selectKey(key); ok {
			return a, a.run(action)
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) run(action menuAction) tea.Cmd {
	switch action {
	case actionQuit:
		return tea.Quit
	case actionReload:
		return a.load
	case actionWarnings:
		a.state = warningsView
		a.refresh()
		return nil
	case actionEdit:
		return a.edit()
	case actionAppend:
		return a.append()
	}
	return nil
}

// edit suspends the TUI and opens the configured editor, jumping to the
// last day entry's line when the editor supports a +line argument.
func (a *App) edit() tea.Cmd {
	var args []string
	if supportsLineArg(a.editor) && len(a.entries) > 0 {
		args = append(args, fmt.Sprintf("+%d", a.entries[len(a.entries)-1].LineNo))
	}
	args = append(args, a.filename)
	cmd := exec.Command(a.editor, args...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// append adds today's date block with stubs for recent projects, then
// reloads.
func (a *App) append() tea.Cmd {
	return func() tea.Msg {
		date, err := calendar.Today()
		if err != nil {
			return loadedMsg{err: err}
		}
		if err := ledger.ValidateDate(a.entries, date); err != nil {
			return loadedMsg{err: err}
		}
		minDate, err := date.MinusDays(recentProjectDays)
		if err != nil {
			return loadedMsg{err: err}
		}
		recent := ledger.RecentProjects(a.entries, minDate, recentProjectMax)
		if err := ledger.AppendDay(a.filename, date, recent); err != nil {
			return loadedMsg{err: err}
		}
		return a.load()
	}
}

// refresh rebuilds the viewport content for the current state.
func (a *App) refresh() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.body())
}

func (a *App) body() string {
	switch a.state {
	case errorView:
		return errorStyle.Render("error: ") + a.errMsg
	case warningsView:
		if len(a.warnings) == 0 {
			return "There are no warnings to display."
		}
		var lines []string
		for _, w := range a.warnings {
			lines = append(lines, warningStyle.Render("warning: "+w))
		}
		return strings.Join(lines, "\n")
	default:
		return a.reportBody()
	}
}

func (a *App) reportBody() string {
	var lines []string
	switch len(a.warnings) {
	case 0:
	case 1:
		lines = append(lines, warningStyle.Render("warning: "+a.warnings[0]), "")
	default:
		lines = append(lines, warningStyle.Render(fmt.Sprintf("There are %d warnings.", len(a.warnings))), "")
	}
	reportLines, err := report.Create(a.dates(), a.entries, a.mode)
	if err != nil {
		return errorStyle.Render("error: ") + err.Error()
	}
	return strings.Join(append(lines, reportLines...), "\n")
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	return a.menu.View() + "\n" +
		descriptionStyle.Render(a.menu.description()) + "\n\n" +
		a.viewport.View()
}

var lineArgEditors = regexp.MustCompile(`^(.*/)?((vim?)|(hx))$`)

// supportsLineArg reports whether the editor accepts a +line argument.
func supportsLineArg(editor string) bool {
	return lineArgEditors.MatchString(editor)
}
