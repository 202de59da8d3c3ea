package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/command"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/placement"
	"github.com/vovakirdan/lane-defense/internal/battle/runner"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
	"github.com/vovakirdan/lane-defense/internal/core"
	"github.com/vovakirdan/lane-defense/internal/storage"
)

const (
	sidePanelWidth = 34
	logLines       = 8
)

// Setup is everything a battle view needs besides the terminal.
type Setup struct {
	Catalog *defs.Catalog
	Config  config.BattleConfig
	Level   *defs.Level
	Store   *storage.Store // optional, runs are not saved when nil
	Logger  *log.Logger    // optional
	Source  string         // recorded with saved runs
}

// BattleModel is the Bubble Tea model that plays one level.
type BattleModel struct {
	setup  Setup
	rt     core.RuntimeConfig
	sim    *sim.Simulation
	queue  *command.Queue
	drag   *command.Drag
	screen *core.Screen
	board  core.Board
	events *eventLog
	keys   BattleKeyMap
	help   help.Model
	roster table.Model

	templates []*defs.OperatorTemplate
	selected  int // roster index, -1 when nothing is selected
	cursor    grid.Coord
	aim       combat.Facing
	dragging  bool
	fast      bool
	seed      int64
	last      time.Time
	status    string
	err       error

	saved      bool
	quitting   bool
	backToMenu bool
	exitOnBack bool
}

// NewBattleModel creates a battle view and starts the level.
func NewBattleModel(setup Setup, rt core.RuntimeConfig) BattleModel {
	if rt.Speed <= 0 {
		rt.Speed = 1
	}
	h := help.New()
	h.ShowAll = false

	m := BattleModel{
		setup:    setup,
		rt:       rt,
		keys:     DefaultBattleKeyMap(),
		help:     h,
		selected: -1,
	}
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.start(seed)
	return m
}

// start replaces the running simulation with a fresh one.
func (m *BattleModel) start(seed int64) {
	m.seed = seed
	m.events = newEventLog(logLines)
	m.sim = sim.New(m.setup.Catalog, m.setup.Config, seed)
	m.sim.Subscribe(m.events)
	if m.setup.Logger != nil {
		m.sim.Subscribe(command.NewLogListener(m.setup.Logger.With("seed", seed)))
	}
	m.err = m.sim.Init(m.setup.Level)

	m.queue = command.NewQueue()
	m.drag = command.NewDrag(m.sim, m.setup.Config.Interaction)
	m.templates = m.sim.Roster()
	m.selected = -1
	m.dragging = false
	m.saved = false
	m.status = ""
	m.last = time.Time{}

	snap := m.sim.Snapshot()
	if snap.Grid != nil {
		m.board = core.NewBoard(0, 0, snap.Grid.W, snap.Grid.H)
		m.cursor = grid.C(snap.Grid.W/2, snap.Grid.H/2)
	}
	m.screen = core.NewScreen(m.board.Origin.W, m.board.Origin.H)
	m.roster = newRosterTable(m.templates)
}

func newRosterTable(templates []*defs.OperatorTemplate) table.Model {
	columns := []table.Column{
		{Title: "", Width: 1},
		{Title: "Operator", Width: 14},
		{Title: "Cost", Width: 4},
		{Title: "Blk", Width: 3},
		{Title: "Type", Width: 6},
	}
	rows := make([]table.Row, len(templates))
	for i, tpl := range templates {
		rows[i] = table.Row{
			string(glyphOr(tpl.Glyph, 'O')),
			tpl.Name,
			fmt.Sprint(tpl.Cost),
			fmt.Sprint(tpl.Block),
			tpl.Deploy.String(),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(core.Min(len(rows), 6)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init starts the frame loop.
func (m BattleModel) Init() tea.Cmd {
	return tickCmd(m.rt.TickRate)
}

// Update handles messages and advances the battle.
func (m BattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick flushes queued commands and advances the simulation by the
// real time elapsed since the previous frame.
func (m BattleModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, tickCmd(m.rt.TickRate)
	}

	dt := frameDelta(m.last, now, m.rt.Speed*m.speedFactor(), m.drag.TimeScale())
	m.last = now

	for _, r := range m.queue.Flush(m.sim) {
		if r.Err != nil {
			m.status = r.Err.Error()
		}
	}
	if dt > 0 && !m.sim.State().Terminal() {
		m.sim.Update(dt)
	}

	if m.sim.State().Terminal() && !m.saved {
		m.saveRun()
	}
	return m, tickCmd(m.rt.TickRate)
}

func (m BattleModel) speedFactor() float64 {
	if m.fast {
		return 2
	}
	return 1
}

// saveRun records the current run once. Runs that never started are not
// recorded.
func (m *BattleModel) saveRun() {
	m.saved = true
	if m.setup.Store == nil || m.sim.Time() == 0 {
		return
	}
	out := runner.Outcome{
		Level:   m.setup.Level.ID,
		Seed:    m.seed,
		State:   m.sim.State(),
		Stats:   m.sim.Stats(),
		Elapsed: m.sim.Time(),
	}
	if _, err := m.setup.Store.SaveRun(out.Record(m.setup.Source)); err != nil && m.setup.Logger != nil {
		m.setup.Logger.Warn("could not save run", "level", out.Level, "error", err)
	}
}

// leave ends the view, recording an unfinished run as quit.
func (m *BattleModel) leave() {
	if !m.saved && m.err == nil {
		m.saveRun()
	}
}

func (m BattleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.leave()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		if m.sim.State().Terminal() || m.sim.Paused() || m.err != nil {
			m.leave()
			m.start(time.Now().UnixNano())
		}
		return m, nil
	}

	if m.err != nil {
		return m, nil
	}

	if dx, dy, ok := action.CursorDelta(); ok {
		if m.drag.Active() {
			m.aim = facingOfDelta(dx, dy)
			return m, nil
		}
		m.moveCursor(dx, dy)
		return m, nil
	}

	switch action {
	case core.ActionNextOperator:
		m.selectOperator(m.selected + 1)
	case core.ActionPrevOperator:
		m.selectOperator(m.selected - 1)
	case core.ActionPlace:
		m.place()
	case core.ActionCancel:
		if m.drag.Active() {
			m.drag.Cancel()
		} else {
			m.selectOperator(-1)
		}
	case core.ActionSkill:
		m.queue.Push(command.Command{Kind: command.KindSkill, Tile: m.cursor})
	case core.ActionRetreat:
		m.queue.Push(command.Command{Kind: command.KindRetreat, Tile: m.cursor})
	case core.ActionPause:
		kind := command.KindPause
		if m.sim.Paused() {
			kind = command.KindResume
		}
		m.queue.Push(command.Command{Kind: kind})
	case core.ActionSpeed:
		m.fast = !m.fast
	}
	return m, nil
}

func (m *BattleModel) moveCursor(dx, dy int) {
	snap := m.sim.Snapshot()
	if snap.Grid == nil {
		return
	}
	m.cursor.X = core.Clamp(m.cursor.X+dx, 0, snap.Grid.W-1)
	m.cursor.Y = core.Clamp(m.cursor.Y+dy, 0, snap.Grid.H-1)
}

// selectOperator selects roster entry i. Indexes past either end wrap
// through "nothing selected".
func (m *BattleModel) selectOperator(i int) {
	n := len(m.templates)
	switch {
	case n == 0 || i == n:
		i = -1
	case i < -1:
		i = n - 1
	}
	m.selected = i
	if i >= 0 {
		m.roster.SetCursor(i)
		m.roster.Focus()
	} else {
		m.roster.Blur()
	}
}

// place starts a deployment at the cursor, or confirms the pending one
// with the keyboard aim.
func (m *BattleModel) place() {
	if m.drag.Active() {
		if _, err := m.drag.ReleaseFacing(m.aim); err != nil {
			m.status = err.Error()
			return
		}
		m.status = ""
		m.selectOperator(-1)
		return
	}
	if m.selected < 0 {
		return
	}
	if err := m.drag.Pick(m.templates[m.selected].ID, m.cursor); err != nil {
		m.status = denialText(err)
		return
	}
	m.aim = combat.FacingRight
	m.status = "aim with arrows or drag, enter to confirm"
}

func (m BattleModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.err != nil || m.sim.State().Terminal() {
		return m, nil
	}
	pointer := m.pointer(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			if m.drag.Active() {
				m.drag.Cancel()
				m.dragging = false
			}
			return m, nil
		}
		c, r, ok := m.board.CellTile(msg.X, msg.Y)
		if !ok || m.drag.Active() {
			return m, nil
		}
		m.cursor = grid.C(c, r)
		if m.selected >= 0 {
			m.place()
			m.dragging = m.drag.Active()
		}

	case tea.MouseActionMotion:
		if c, r, ok := m.board.CellTile(msg.X, msg.Y); ok && !m.drag.Active() {
			m.cursor = grid.C(c, r)
		}
		if f, ok := m.drag.Aim(pointer); ok {
			m.aim = f
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		if _, err := m.drag.Release(pointer); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.selectOperator(-1)
	}
	return m, nil
}

// pointer converts a screen cell to drag coordinates, where one tile
// spans the configured tile size.
func (m BattleModel) pointer(sx, sy int) combat.Vec2 {
	ts := m.setup.Config.Interaction.TileSize
	if ts <= 0 {
		ts = 1
	}
	x, y := m.board.CellPoint(sx, sy)
	return combat.Vec2{X: (x + 0.5) * ts, Y: (y + 0.5) * ts}
}

func facingOfDelta(dx, dy int) combat.Facing {
	switch {
	case dx < 0:
		return combat.FacingLeft
	case dy < 0:
		return combat.FacingUp
	case dy > 0:
		return combat.FacingDown
	default:
		return combat.FacingRight
	}
}

func denialText(err error) string {
	var v placement.Verdict
	if errors.As(err, &v) {
		return "cannot deploy: " + v.Reason
	}
	return err.Error()
}

// View renders the board, the side panel and the help line.
func (m BattleModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  cannot start %s: %v\n\n  r: retry  b: back  q: quit\n", m.setup.Level.ID, m.err)
	}

	snap := m.sim.Snapshot()
	m.screen.Clear()
	view := BoardView{
		Cursor:    m.cursor,
		ShowCur:   !snap.State.Terminal(),
		Aim:       m.aim,
		Selecting: m.selected >= 0,
	}
	if m.selected >= 0 && snap.Pending == nil {
		view.CursorOK = m.sim.CanPlace(m.templates[m.selected].ID, m.cursor).OK
	}
	DrawBoard(m.screen, m.board, snap, view)

	left := RenderScreen(m.screen)
	if banner := m.banner(snap); banner != "" {
		left = lipgloss.JoinVertical(lipgloss.Left, left, banner)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.sidePanel(snap))
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys))
}

var panelStyle = lipgloss.NewStyle().
	Width(sidePanelWidth).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func (m BattleModel) banner(snap sim.Snapshot) string {
	switch snap.State {
	case sim.StateWon:
		return wonStyle.Render(" VICTORY ") + mutedStyle.Render("  r: new run  b: back")
	case sim.StateGameOver:
		return lostStyle.Render(" DEFEAT ") + mutedStyle.Render("  r: new run  b: back")
	}
	if snap.Paused {
		return titleStyle.Render(" PAUSED ")
	}
	return ""
}

func (m BattleModel) sidePanel(snap sim.Snapshot) string {
	st := snap.Stats
	var b strings.Builder

	name := m.setup.Level.Name
	if name == "" {
		name = m.setup.Level.ID
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	speed := "1x"
	if m.fast {
		speed = "2x"
	}
	fmt.Fprintf(&b, "%s  %s\n", clock(snap.Time), mutedStyle.Render(speed))
	fmt.Fprintf(&b, "DP %d   Lives %d\n", st.Resource, st.Lives)
	fmt.Fprintf(&b, "Enemies %d/%d   Leaks %d\n", st.Resolved(), st.TotalEnemies, st.Leaks)
	fmt.Fprintf(&b, "Wave %d/%d   Units %d/%d\n\n", st.Wave, st.WaveCount, st.Deployed, st.DeployCap)

	b.WriteString(m.roster.View())
	b.WriteString("\n")

	if op, ok := findOperator(snap.Operators, m.cursor); ok {
		b.WriteString("\n")
		b.WriteString(operatorInfo(op))
	}

	b.WriteString("\n")
	for _, line := range m.events.Lines() {
		b.WriteString(mutedStyle.Render(line))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func findOperator(ops []sim.Operator, tile grid.Coord) (sim.Operator, bool) {
	for _, op := range ops {
		if op.Tile == tile && op.Alive() {
			return op, true
		}
	}
	return sim.Operator{}, false
}

func operatorInfo(op sim.Operator) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s facing %v\n", op.Template.Name, op.Facing)
	fmt.Fprintf(&b, "HP %.0f/%.0f", op.HP, op.MaxHP)
	if sk := op.Template.Skill; sk != nil {
		switch {
		case op.SkillActive:
			fmt.Fprintf(&b, "   %s %.1fs", sk.Name, op.SkillRemaining/1000)
		case op.SkillReady():
			fmt.Fprintf(&b, "   %s ready", sk.Name)
		default:
			fmt.Fprintf(&b, "   SP %.0f/%.0f", op.SP, op.SPMax)
		}
	}
	if en := op.Enchant; en != nil {
		fmt.Fprintf(&b, "\n+%v %.0f (%.1fs)", en.Status, en.Value, en.Remaining/1000)
	}
	b.WriteString("\n")
	return b.String()
}

// clock formats game milliseconds as m:ss.
func clock(ms float64) string {
	s := int(ms / 1000)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m BattleModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m BattleModel) BackToMenu() bool {
	return m.backToMenu
}

// RunBattle plays a single level in the current terminal.
func RunBattle(setup Setup, rt core.RuntimeConfig) error {
	m := NewBattleModel(setup, rt)
	m.exitOnBack = true

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
