package sim

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"vncrypt-sim/internal/mission"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// Controller is the part of the simulator driven from the keyboard.
type Controller interface {
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	EndMission(ctx context.Context) error
	ApplyDefense(ctx context.Context, tool mission.ToolID) (DefenseOutcome, error)
	Report(ctx context.Context) (Report, error)
	Snapshot() Snapshot
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// snapshotMsg carries the latest simulator state.
type snapshotMsg struct{ Snapshot }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

// reportMsg carries a scored report, plus any error recording it.
type reportMsg struct {
	report Report
	err    error
}

// noticeMsg is shown in the footer after a command completes.
type noticeMsg struct {
	text string
	err  bool
}

type setControllerMsg struct {
	ctx  context.Context
	ctrl Controller
}

type refreshMsg struct{}

const (
	maxLogLines     = 1000
	refreshInterval = 250 * time.Millisecond
)

// TUIWriter renders the mission log using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program for mission m and returns a TUIWriter.
// The program keeps running until Close or until the user quits, in which
// case the process receives an interrupt.
func NewTUIWriter(m mission.Mission) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(m), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteEntry implements EntryWriter.
func (w *TUIWriter) WriteEntry(e LogEntry) error {
	w.program.Send(logMsg{line: formatEntry(e, true)})
	return nil
}

// WriteEntries outputs multiple log entries.
func (w *TUIWriter) WriteEntries(rows []LogEntry) error {
	for _, e := range rows {
		_ = w.WriteEntry(e)
	}
	return nil
}

// WriteReport implements ReportWriter.
func (w *TUIWriter) WriteReport(r Report) error {
	w.program.Send(reportMsg{report: r})
	return nil
}

// SetAdminStatus updates the admin UI indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// SetController registers the simulator that key bindings act on.
func (w *TUIWriter) SetController(ctx context.Context, ctrl Controller) {
	w.program.Send(setControllerMsg{ctx: ctx, ctrl: ctrl})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	mission         mission.Mission
	ctx             context.Context
	ctrl            Controller
	table           table.Model
	vp              viewport.Model
	logs            []string
	snap            Snapshot
	report          *Report
	reportedSession string
	toolInput       textinput.Model
	toolDialog      bool
	notice          string
	noticeErr       bool
	admin           bool
	wrap            bool
	autoscroll      bool
	help            bool
	header          string
	headerHeight    int
	height          int
}

func newTUIModel(m mission.Mission) tuiModel {
	cols := []table.Column{
		{Title: "Mission", Width: 16},
		{Title: "Value", Width: 28},
	}
	rows := []table.Row{
		{"Key", m.Key},
		{"Difficulty", m.Difficulty},
		{"Attack Type", m.AttackType},
		{"Target System", m.TargetSystem},
		{"Detection Goal", fmt.Sprintf("%.0fs", m.SuccessCriteria.DetectionTimeSeconds)},
		{"Max Data Loss", fmt.Sprintf("%.0f%%", m.SuccessCriteria.MaxDataLossFraction*100)},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		mission:    m,
		ctx:        context.Background(),
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
		snap:       Snapshot{MissionKey: m.Key, State: StateIdle},
	}
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m tuiModel) Init() tea.Cmd { return refreshCmd() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width / 2)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		m.refreshViewport()
	case snapshotMsg:
		m.snap = msg.Snapshot
		if m.snap.State == StateEnded && m.snap.SessionID != m.reportedSession {
			m.reportedSession = m.snap.SessionID
			return m, m.reportCmd()
		}
	case reportMsg:
		r := msg.report
		m.report = &r
		if msg.err != nil {
			m.notice, m.noticeErr = msg.err.Error(), true
		}
		m.updateViewportHeight()
	case noticeMsg:
		m.notice, m.noticeErr = msg.text, msg.err
	case refreshMsg:
		if m.ctrl == nil {
			return m, refreshCmd()
		}
		return m, tea.Batch(m.snapshotCmd(), refreshCmd())
	case adminMsg:
		m.admin = msg.active
	case setControllerMsg:
		m.ctrl = msg.ctrl
		if msg.ctx != nil {
			m.ctx = msg.ctx
		}
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.toolDialog {
		switch msg.Type {
		case tea.KeyEnter:
			tool := mission.ToolID(strings.TrimSpace(m.toolInput.Value()))
			m.toolDialog = false
			m.updateViewportHeight()
			return m, m.applyCmd(tool)
		case tea.KeyEsc:
			m.toolDialog = false
			m.updateViewportHeight()
		default:
			var cmd tea.Cmd
			m.toolInput, cmd = m.toolInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.help {
		switch msg.String() {
		case "?", "h", "esc":
			m.help = false
			m.updateViewportHeight()
		}
		return m, nil
	}

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "w":
		m.wrap = !m.wrap
		m.refreshViewport()
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		return m, nil
	case "a":
		m.autoscroll = !m.autoscroll
		if m.autoscroll {
			m.vp.GotoBottom()
		}
		return m, nil
	case "h", "?":
		m.help = !m.help
		m.updateViewportHeight()
		return m, nil
	case "s":
		if m.snap.State == StateEnded {
			m.report = nil
			m.logs = nil
			m.refreshViewport()
			m.updateViewportHeight()
		}
		return m, m.runCmd("start", func(c Controller, ctx context.Context) error { return c.Start(ctx) })
	case "p":
		if m.snap.State == StatePaused {
			return m, m.runCmd("resume", func(c Controller, ctx context.Context) error { return c.Resume(ctx) })
		}
		return m, m.runCmd("pause", func(c Controller, ctx context.Context) error { return c.Pause(ctx) })
	case "e":
		return m, m.runCmd("end mission", func(c Controller, ctx context.Context) error { return c.EndMission(ctx) })
	case "r":
		return m, m.reportCmd()
	case "d":
		m.toolInput = textinput.New()
		m.toolInput.Placeholder = "tool id"
		m.toolInput.Focus()
		m.toolDialog = true
		m.updateViewportHeight()
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i, _ := strconv.Atoi(key)
		if i > len(m.mission.AllowedTools) {
			return m, nil
		}
		return m, m.applyCmd(m.mission.AllowedTools[i-1])
	}

	if !m.autoscroll {
		switch msg.String() {
		case "j", "down":
			m.vp.LineDown(1)
		case "k", "up":
			m.vp.LineUp(1)
		case "pgdown", "ctrl+n":
			m.vp.LineDown(10)
		case "pgup", "ctrl+p":
			m.vp.LineUp(10)
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// Commands run outside the update loop: the simulator may be blocked
// sending a log line to this program while holding its lock.

func (m tuiModel) runCmd(name string, fn func(Controller, context.Context) error) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		if err := fn(ctrl, ctx); err != nil {
			return noticeMsg{text: fmt.Sprintf("%s: %v", name, err), err: true}
		}
		return noticeMsg{text: name}
	}
}

func (m tuiModel) applyCmd(tool mission.ToolID) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if ctrl == nil || tool == "" {
		return nil
	}
	return func() tea.Msg {
		out, err := ctrl.ApplyDefense(ctx, tool)
		if err != nil {
			return noticeMsg{text: fmt.Sprintf("%s: %v", tool, err), err: true}
		}
		return noticeMsg{text: fmt.Sprintf("%s %s", tool, out)}
	}
}

func (m tuiModel) reportCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if ctrl == nil {
		return nil
	}
	return func() tea.Msg {
		rep, err := ctrl.Report(ctx)
		if err != nil && rep.SessionID == "" {
			return noticeMsg{text: fmt.Sprintf("report: %v", err), err: true}
		}
		return reportMsg{report: rep, err: err}
	}
}

func (m tuiModel) snapshotCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg { return snapshotMsg{ctrl.Snapshot()} }
}

func (m *tuiModel) updateViewportHeight() {
	fixed := m.headerHeight + lipgloss.Height(m.renderStatus()) + lipgloss.Height(m.renderBottom())
	if m.report != nil {
		fixed += lipgloss.Height(m.renderReport()) + 1
	}
	if m.toolDialog {
		fixed += lipgloss.Height(m.toolInput.View()) + 1
	}
	h := m.height - fixed - 3
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.renderStatus(),
		divider,
		m.vp.View(),
	}
	if m.report != nil {
		sections = append(sections, divider, m.renderReport())
	}
	if m.toolDialog {
		sections = append(sections, divider, m.toolInput.View())
	}
	sections = append(sections, divider, m.renderBottom())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	toolsWidth := m.vp.Width/2 - 1
	tools := renderToolbox(m.mission, m.wrap, toolsWidth)
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("│")
	return lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), sep, tools)
}

func renderToolbox(m mission.Mission, wrap bool, width int) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render(m.Title)
	b.WriteString(title + "\n")
	if m.Description != "" {
		desc := m.Description
		if wrap && width > 0 {
			desc = wordwrap.String(desc, width)
		}
		b.WriteString(desc + "\n")
	}
	b.WriteString("Defense Toolbox\n")
	for i, id := range m.AllowedTools {
		prefix := "├─"
		if i == len(m.AllowedTools)-1 {
			prefix = "└─"
		}
		t := mission.LookupTool(id)
		line := fmt.Sprintf("%s %s%d%s %s - %s", prefix, colorGreen, i+1, colorReset, t.Label, t.Description)
		if wrap && width > 0 {
			line = wordwrap.String(line, width)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func stateColor(s RunState) lipgloss.Color {
	switch s {
	case StateRunning:
		return lipgloss.Color("10")
	case StatePaused:
		return lipgloss.Color("11")
	case StateEnded:
		return lipgloss.Color("13")
	default:
		return lipgloss.Color("8")
	}
}

func (m tuiModel) renderStatus() string {
	state := lipgloss.NewStyle().Bold(true).Foreground(stateColor(m.snap.State)).Render(strings.ToUpper(string(m.snap.State)))
	defenses := "none"
	if len(m.snap.ActiveDefenses) > 0 {
		parts := make([]string, len(m.snap.ActiveDefenses))
		for i, d := range m.snap.ActiveDefenses {
			parts[i] = string(d)
		}
		defenses = strings.Join(parts, ",")
	}
	session := m.snap.SessionID
	if session == "" {
		session = "-"
	}
	return fmt.Sprintf("%s %st=%02ds/%ds%s %ssession=%s%s %sdefenses=%s%s",
		state,
		colorCyan, m.snap.CurrentTime, TimeLimit, colorReset,
		colorGray, session, colorReset,
		colorGreen, defenses, colorReset)
}

func (m tuiModel) renderReport() string {
	r := m.report
	status := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("FAILED")
	if r.Score.Passed {
		status = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("PASSED")
	}
	lines := []string{
		fmt.Sprintf("MISSION %s  reason=%s", status, r.Reason),
		fmt.Sprintf("Detection %ds (goal %.0fs)  Tools %d  Total %ds",
			r.DetectionTimeSeconds, r.Score.GoalSeconds, len(r.ToolsUsed), r.TotalElapsedSeconds),
		fmt.Sprintf("Score %d = %d base + %d detection + %d efficiency  XP +%d",
			r.Score.TotalScore, r.Score.BaseScore, int(r.Score.DetectionBonus), r.Score.EfficiencyBonus, r.Score.ExperienceAwarded),
		fmt.Sprintf("Skills speed=%.0f accuracy=%.0f resources=%.0f practice=%.0f response=%.0f",
			r.Skills.DetectionSpeed, r.Skills.DefenseAccuracy, r.Skills.ResourceUsage, r.Skills.BestPractice, r.Skills.ThreatResponse),
	}
	return strings.Join(lines, "\n")
}

func indicator(on bool) string {
	c := lipgloss.Color("9")
	if on {
		c = lipgloss.Color("10")
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

func (m tuiModel) renderBottom() string {
	line := fmt.Sprintf("Admin UI %s | Wrap %s | Scroll %s | Help %s | s start p pause/resume e end 1-%d defend",
		indicator(m.admin), indicator(m.wrap), indicator(m.autoscroll), indicator(m.help), len(m.mission.AllowedTools))
	if m.notice == "" {
		return line
	}
	c := lipgloss.Color("10")
	if m.noticeErr {
		c = lipgloss.Color("9")
	}
	return lipgloss.NewStyle().Foreground(c).Render(m.notice) + "\n" + line
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" s  start or replay mission",
		" p  pause / resume",
		" e  end mission (while paused)",
		" 1-9 apply defense from toolbox",
		" d  apply defense by tool id",
		" r  show report",
		" w  toggle wrap",
		" a  toggle auto-scroll",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
