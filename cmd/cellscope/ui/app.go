package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cellscope/internal/config"
	"cellscope/internal/life"
	"cellscope/internal/pattern"
	"cellscope/internal/store"
)

type page int

const (
	pageGrid page = iota
	pageRuns
	pageStats
	pageHelp
)

const (
	minSpeedMS  = 10
	maxSpeedMS  = 1000
	speedStepMS = 10
)

type tickMsg time.Time

type libraryMsg struct{ lib *pattern.Library }

type runsLoadedMsg struct{ runs []store.RunSummary }

type runLoadedMsg struct{ run *store.Run }

type statsLoadedMsg struct{ stats []store.PatternStat }

type runSavedMsg struct {
	id   int64
	name string
}

type runDeletedMsg struct{ id int64 }

type errMsg struct{ err error }

// App is the root model. It owns the simulation loop, the pattern
// scanner, and the page stack.
type App struct {
	cfg     config.Config
	sim     *life.Sim
	scanner *pattern.Scanner
	watcher *pattern.Watcher
	store   *store.Store
	logger  *zap.Logger

	styles   Styles
	gridView GridView
	sidebar  Sidebar
	toasts   *ToastStack

	runsPage  RunsPageModel
	statsPage StatsPageModel
	helpPage  HelpPageModel

	page    page
	running bool
	speedMS int

	cursorR int
	cursorC int

	// startingGrid is the generation-0 field, captured whenever the world
	// is reset or edited, so a save records what the run began from.
	startingGrid [][]int

	saveInput textinput.Model
	saving    bool

	status string
	rng    *rand.Rand
	width  int
	height int
}

// New assembles the application model. The store may be nil (saving and
// browsing are then disabled) and the watcher may be nil (no live pattern
// reload).
func New(cfg config.Config, lib *pattern.Library, st *store.Store, watcher *pattern.Watcher, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := NewStyles(DetectTheme(cfg.DarkMode))

	input := textinput.New()
	input.Placeholder = "run name"
	input.CharLimit = 48
	input.Width = 32

	a := &App{
		cfg:       cfg,
		sim:       life.NewSim(cfg.Rows, cfg.Cols),
		scanner:   pattern.NewScanner(lib),
		watcher:   watcher,
		store:     st,
		logger:    logger,
		styles:    styles,
		gridView:  NewGridView(styles),
		sidebar:   NewSidebar(styles),
		toasts:    NewToastStack(),
		runsPage:  NewRunsPageModel(styles),
		statsPage: NewStatsPageModel(styles),
		helpPage:  NewHelpPageModel(styles),
		speedMS:   cfg.SpeedMS,
		saveInput: input,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	a.startingGrid = a.sim.Grid.Cells()
	return a
}

// Init starts the step timer and the library watch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tick(), a.waitForLibrary())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Duration(a.speedMS)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) waitForLibrary() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		lib, ok := <-a.watcher.Updates()
		if !ok {
			return nil
		}
		return libraryMsg{lib: lib}
	}
}

// Update routes messages to the active page and drives the simulation.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.runsPage.SetSize(msg.Width, msg.Height)
		a.statsPage.SetSize(msg.Width, msg.Height)
		a.helpPage.SetSize(msg.Width, msg.Height)
		a.sidebar.SetHeight(msg.Height - 6)
		return a, nil

	case tickMsg:
		if a.running {
			a.sim.Step()
			a.notify(a.scanner.Scan(a.sim.Grid, a.sim.Generation))
		}
		return a, a.tick()

	case libraryMsg:
		a.scanner.SetLibrary(msg.lib)
		a.status = fmt.Sprintf("Pattern library reloaded (%d patterns)", msg.lib.Len())
		// Known patterns already on the board should be recognized now.
		a.notify(a.scanner.Scan(a.sim.Grid, a.sim.Generation))
		return a, a.waitForLibrary()

	case runsLoadedMsg:
		a.runsPage.SetRuns(msg.runs)
		return a, nil

	case runLoadedMsg:
		if msg.run == nil {
			a.status = "Run not found"
			return a, nil
		}
		a.loadRun(msg.run)
		return a, nil

	case statsLoadedMsg:
		a.statsPage.SetStats(msg.stats)
		return a, nil

	case runSavedMsg:
		a.status = fmt.Sprintf("Saved %q (#%d)", msg.name, msg.id)
		return a, nil

	case runDeletedMsg:
		a.status = fmt.Sprintf("Deleted run #%d", msg.id)
		return a, a.loadRunsCmd()

	case errMsg:
		a.status = "Error: " + msg.err.Error()
		a.logger.Warn("ui operation failed", zap.Error(msg.err))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updatePage(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.saving {
		return a.handleSaveKey(msg)
	}

	switch a.page {
	case pageGrid:
		return a.handleGridKey(msg)
	case pageRuns:
		return a.handleRunsKey(msg)
	case pageStats:
		switch msg.String() {
		case "esc", "p", "q":
			a.page = pageGrid
			return a, nil
		}
	case pageHelp:
		switch msg.String() {
		case "esc", "?", "q":
			a.page = pageGrid
			return a, nil
		}
	}
	return a.updatePage(msg)
}

func (a *App) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(a.saveInput.Value())
		if name == "" {
			name = "Run " + time.Now().Format("2006-01-02 15:04:05")
		}
		a.saving = false
		a.saveInput.Blur()
		return a, a.saveRunCmd(name)
	case "esc":
		a.saving = false
		a.saveInput.Blur()
		a.status = "Save cancelled"
		return a, nil
	}
	var cmd tea.Cmd
	a.saveInput, cmd = a.saveInput.Update(msg)
	return a, cmd
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit

	case " ":
		a.running = !a.running
		return a, nil

	case "n":
		if !a.running {
			a.sim.Step()
			a.notify(a.scanner.Scan(a.sim.Grid, a.sim.Generation))
		}
		return a, nil

	case "c":
		a.running = false
		a.sim.Clear()
		a.resetAndScan()
		a.status = "Cleared"
		return a, nil

	case "r":
		a.running = false
		a.sim.Randomize(a.rng)
		a.resetAndScan()
		a.status = "Randomized"
		return a, nil

	case "+", "=":
		a.speedMS -= speedStepMS
		if a.speedMS < minSpeedMS {
			a.speedMS = minSpeedMS
		}
		return a, nil

	case "-", "_":
		a.speedMS += speedStepMS
		if a.speedMS > maxSpeedMS {
			a.speedMS = maxSpeedMS
		}
		return a, nil

	case "up", "k":
		a.moveCursor(-1, 0)
		return a, nil
	case "down", "j":
		a.moveCursor(1, 0)
		return a, nil
	case "left", "h":
		a.moveCursor(0, -1)
		return a, nil
	case "right", "l":
		a.moveCursor(0, 1)
		return a, nil

	case "t", "enter":
		if !a.running {
			a.sim.Grid.Toggle(a.cursorR, a.cursorC)
			a.resetAndScan()
		}
		return a, nil

	case "1", "2", "3", "4", "5", "6":
		presets := life.Presets()
		idx := int(msg.String()[0] - '1')
		if idx < len(presets) {
			a.running = false
			a.sim.ApplyPreset(presets[idx])
			a.resetAndScan()
			a.status = "Placed " + presets[idx].Name
		}
		return a, nil

	case "s":
		if a.store == nil {
			a.status = "Persistence disabled"
			return a, nil
		}
		a.running = false
		a.saving = true
		a.saveInput.SetValue("")
		return a, a.saveInput.Focus()

	case "b":
		if a.store == nil {
			a.status = "Persistence disabled"
			return a, nil
		}
		a.running = false
		a.page = pageRuns
		return a, a.loadRunsCmd()

	case "p":
		if a.store == nil {
			a.status = "Persistence disabled"
			return a, nil
		}
		a.page = pageStats
		return a, a.loadStatsCmd()

	case "?":
		a.page = pageHelp
		return a, nil
	}
	return a, nil
}

func (a *App) handleRunsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		a.page = pageGrid
		return a, nil
	case "enter":
		if sel := a.runsPage.Selected(); sel != nil {
			return a, a.loadRunCmd(sel.ID)
		}
		return a, nil
	case "d":
		if sel := a.runsPage.Selected(); sel != nil {
			return a, a.deleteRunCmd(sel.ID)
		}
		return a, nil
	}
	return a.updatePage(msg)
}

func (a *App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case pageRuns:
		a.runsPage, cmd = a.runsPage.Update(msg)
	case pageStats:
		a.statsPage, cmd = a.statsPage.Update(msg)
	case pageHelp:
		a.helpPage, cmd = a.helpPage.Update(msg)
	}
	return a, cmd
}

func (a *App) moveCursor(dr, dc int) {
	r, c := a.cursorR+dr, a.cursorC+dc
	if r >= 0 && r < a.sim.Grid.Rows() {
		a.cursorR = r
	}
	if c >= 0 && c < a.sim.Grid.Cols() {
		a.cursorC = c
	}
}

// resetAndScan treats the current field as a fresh generation 0: discovery
// state is dropped, the starting grid is recaptured, and an immediate scan
// picks up whatever is already on the board.
func (a *App) resetAndScan() {
	a.sim.Generation = 0
	a.scanner.Reset()
	a.startingGrid = a.sim.Grid.Cells()
	a.notify(a.scanner.Scan(a.sim.Grid, 0))
}

func (a *App) loadRun(run *store.Run) {
	a.running = false
	a.sim.LoadCells(run.StartingGrid)
	a.resetAndScan()
	a.page = pageGrid
	a.status = fmt.Sprintf("Loaded %q", run.Name)
}

func (a *App) notify(names []string) {
	for _, name := range names {
		a.toasts.Add(name)
		a.logger.Info("pattern discovered",
			zap.String("pattern", name),
			zap.Int("generation", a.sim.Generation))
	}
}

func (a *App) loadRunsCmd() tea.Cmd {
	return func() tea.Msg {
		runs, err := a.store.ListRuns()
		if err != nil {
			return errMsg{err}
		}
		return runsLoadedMsg{runs: runs}
	}
}

func (a *App) loadRunCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		run, err := a.store.LoadRun(id)
		if err != nil {
			return errMsg{err}
		}
		return runLoadedMsg{run: run}
	}
}

func (a *App) deleteRunCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.DeleteRun(id); err != nil {
			return errMsg{err}
		}
		return runDeletedMsg{id: id}
	}
}

func (a *App) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.store.PatternStats()
		if err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{stats: stats}
	}
}

func (a *App) saveRunCmd(name string) tea.Cmd {
	grid := a.startingGrid
	discovered := a.scanner.Discovered()
	gen := a.sim.Generation
	speed := a.speedMS
	return func() tea.Msg {
		id, err := a.store.SaveRun(name, grid, discovered, gen, speed)
		if err != nil {
			return errMsg{err}
		}
		return runSavedMsg{id: id, name: name}
	}
}

// View renders the active page.
func (a *App) View() string {
	switch a.page {
	case pageRuns:
		return a.runsPage.View()
	case pageStats:
		return a.statsPage.View()
	case pageHelp:
		return a.helpPage.View()
	}
	return a.gridPageView()
}

func (a *App) gridPageView() string {
	var sb strings.Builder

	sb.WriteString(a.styles.Title.Render("cellscope"))
	sb.WriteString("  ")
	sb.WriteString(a.gridView.StatusBar(a.sim, a.running, a.speedMS))
	sb.WriteString("\n")

	grid := a.gridView.Render(a.sim, a.cursorR, a.cursorC, !a.running)
	side := a.sidebar.View(a.scanner.Discoveries())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, side))
	sb.WriteString("\n")

	if toastView := a.toasts.View(a.styles); toastView != "" {
		sb.WriteString(toastView)
		sb.WriteString("\n")
	}

	if a.saving {
		sb.WriteString(a.styles.Prompt.Render("Save run as: "))
		sb.WriteString(a.saveInput.View())
		sb.WriteString(a.styles.Muted.Render("  (enter to save, esc to cancel)"))
		sb.WriteString("\n")
	} else {
		if a.status != "" {
			sb.WriteString(a.styles.Muted.Render(a.status))
			sb.WriteString("\n")
		}
		sb.WriteString(a.styles.Footer.Render(
			"space run · n step · c clear · r random · 1-6 presets · +/- speed · s save · b runs · p stats · ? help · q quit"))
	}

	return sb.String()
}
