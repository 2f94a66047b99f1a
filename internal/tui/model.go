package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/logging"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/patterns"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	jsonPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	policyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	statusTTL     = 3 * time.Second
	defaultStatus = "tab: policy | ctrl+t: json | ctrl+y: copy | ctrl+e: pdf | ctrl+s: save | f1: help | esc: quit"
	// title, input, two summary lines, status bar
	chromeHeight = 5
	minPaneRows  = 3
	sessionLabel = "interactive"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type statusMsg string

type clearStatusMsg int

// Options configures an interactive session.
type Options struct {
	Engine *engine.Engine
	// Policy selects the initial policy. Empty falls back to the saved
	// preference, then to the registry default.
	Policy string
	// AuditLog receives records on ctrl+s. Nil disables saving.
	AuditLog *audit.AuditLog
	// PrefsPath is where preferences persist. Empty disables persistence.
	PrefsPath string
	// ExportDir receives ctrl+e reports. Empty means the working directory.
	ExportDir string
	Logger    *logging.Logger
}

// Model is the state of the interactive assessor.
type Model struct {
	input    textinput.Model
	table    table.Model
	viewport viewport.Model

	engine    *engine.Engine
	policies  []policy.Policy
	policyIdx int
	current   *types.Assessment

	auditLog  *audit.AuditLog
	prefsPath string
	exportDir string
	logger    *logging.Logger

	showJSON      bool
	showHelp      bool
	statusMessage string
	statusSeq     int
	width         int
	height        int
	ready         bool // terminal size known
	quitting      bool
}

// NewModel builds a model from opts. The password input starts focused and
// masked.
func NewModel(opts Options) Model {
	eng := opts.Engine
	if eng == nil {
		eng = engine.New(engine.Config{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	prefs := DefaultPrefs()
	if opts.PrefsPath != "" {
		prefs = LoadPrefs(opts.PrefsPath)
	}

	policies := eng.Registry().All()
	name := opts.Policy
	if name == "" {
		name = prefs.Policy
	}
	idx := policyIndex(policies, name)
	if idx < 0 {
		idx = max(policyIndex(policies, eng.Registry().DefaultName()), 0)
	}

	in := textinput.New()
	in.Prompt = "Password: "
	in.Placeholder = "start typing"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = 256
	in.Focus()

	t := table.New(
		table.WithColumns(ruleColumns(80)),
		table.WithHeight(8),
	)

	return Model{
		input:     in,
		table:     t,
		viewport:  viewport.New(0, 0),
		engine:    eng,
		policies:  policies,
		policyIdx: idx,
		auditLog:  opts.AuditLog,
		prefsPath: opts.PrefsPath,
		exportDir: opts.ExportDir,
		logger:    logger,
		showJSON:  prefs.ShowJSON,
	}
}

func policyIndex(policies []policy.Policy, name string) int {
	for i, p := range policies {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func ruleColumns(width int) []table.Column {
	if width < 40 {
		width = 40
	}
	const statusW = 6
	// each cell carries one column of padding on both sides
	rest := width - statusW - 6
	ruleW := rest * 2 / 5
	return []table.Column{
		{Title: "Status", Width: statusW},
		{Title: "Rule", Width: ruleW},
		{Title: "Details", Width: rest - ruleW},
	}
}

func ruleRows(a types.Assessment) []table.Row {
	rows := make([]table.Row, len(a.Compliance))
	for i, r := range a.Compliance {
		// plain status text, ANSI codes break cell truncation
		rows[i] = table.Row{string(r.Status), r.Rule, r.Details}
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Policy returns the currently selected policy.
func (m Model) Policy() policy.Policy {
	return m.policies[m.policyIdx]
}

// Current returns the latest assessment, or nil while the input is empty.
func (m Model) Current() *types.Assessment {
	return m.current
}

func (m *Model) reassess() {
	pw := m.input.Value()
	if pw == "" {
		m.current = nil
		m.table.SetRows(nil)
		m.updateViewportContent()
		return
	}
	p := m.Policy()
	a := m.engine.Assess(pw, &p)
	m.current = &a
	m.table.SetRows(ruleRows(a))
	m.updateViewportContent()
}

func (m *Model) cyclePolicy(delta int) {
	n := len(m.policies)
	m.policyIdx = ((m.policyIdx+delta)%n + n) % n
	m.reassess()
}

func (m *Model) updateViewportContent() {
	if m.current == nil {
		m.viewport.SetContent(hintStyle.Render("No assessment yet"))
		return
	}
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, *m.current, report.JSONOptions{}); err != nil {
		m.viewport.SetContent(fmt.Sprintf("Error rendering JSON: %v", err))
		return
	}
	m.viewport.SetContent(report.Highlight(buf.String()))
	m.viewport.GotoTop()
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	inner := m.width - 2
	m.table.SetColumns(ruleColumns(inner))
	m.table.SetWidth(inner)
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-2, 10)

	// borders take two rows per pane
	avail := m.height - chromeHeight - 2
	tableH := avail
	if m.showJSON {
		avail -= 2
		tableH = avail / 2
		m.viewport.Width = inner
		m.viewport.Height = max(avail-tableH, minPaneRows)
	}
	m.table.SetHeight(max(tableH, minPaneRows))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	prefs := Prefs{ShowJSON: m.showJSON, Policy: m.Policy().Name}
	if err := SavePrefs(m.prefsPath, prefs); err != nil {
		m.logger.Warn("failed to save preferences", "path", m.prefsPath, "error", err)
	}
}

func statusCmd(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}

// copyReport puts the plain-text report on the clipboard.
func (m Model) copyReport() tea.Cmd {
	if m.current == nil {
		return statusCmd("Nothing to copy")
	}
	var buf bytes.Buffer
	if err := report.PrintText(&buf, *m.current); err != nil {
		return statusCmd(fmt.Sprintf("Copy failed: %v", err))
	}
	text := buf.String()
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg(fmt.Sprintf("Copy failed: %v", err))
		}
		return statusMsg("Report copied to clipboard")
	}
}

// exportPDF writes the current report to a timestamped PDF. When the PDF
// cannot be rendered the plain-text report is written instead.
func (m Model) exportPDF() tea.Cmd {
	if m.current == nil {
		return statusCmd("Nothing to export")
	}
	a := *m.current
	dir := m.exportDir
	logger := m.logger
	return func() tea.Msg {
		var buf bytes.Buffer
		used, err := report.Export(&buf, []types.Assessment{a}, report.FormatPDF, report.ExportOptions{NoColor: true})
		if err != nil {
			return statusMsg(fmt.Sprintf("Export failed: %v", err))
		}
		ext := ".pdf"
		if used != report.FormatPDF {
			ext = ".txt"
		}
		path := filepath.Join(dir, "pwlab-report-"+a.Timestamp.Format("20060102-150405")+ext)
		if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
			return statusMsg(fmt.Sprintf("Export failed: %v", err))
		}
		if used != report.FormatPDF {
			logger.Warn("pdf export failed, wrote plain text instead", "path", path)
			return statusMsg("PDF unavailable, wrote " + path)
		}
		return statusMsg("Exported " + path)
	}
}

// saveAudit appends the current assessment to the audit log.
func (m Model) saveAudit() tea.Cmd {
	if m.auditLog == nil {
		return statusCmd("Audit log disabled")
	}
	if m.current == nil {
		return statusCmd("Nothing to save")
	}
	rec := audit.CreateRecord(*m.current, m.engine.Registry().Fingerprint(), sessionLabel)
	log := m.auditLog
	return func() tea.Msg {
		if err := log.Append(rec); err != nil {
			return statusMsg(fmt.Sprintf("Save failed: %v", err))
		}
		return statusMsg("Saved to " + log.Path())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case statusMsg:
		m.statusSeq++
		m.statusMessage = string(msg)
		seq := m.statusSeq
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg(seq) })

	case clearStatusMsg:
		if int(msg) == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				m.savePrefs()
				return m, tea.Quit
			}
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.savePrefs()
			return m, tea.Quit
		case "esc":
			if m.input.Value() != "" {
				m.input.Reset()
				m.reassess()
				return m, nil
			}
			m.quitting = true
			m.savePrefs()
			return m, tea.Quit
		case "f1":
			m.showHelp = true
			return m, nil
		case "tab":
			m.cyclePolicy(1)
			return m, nil
		case "shift+tab":
			m.cyclePolicy(-1)
			return m, nil
		case "ctrl+t":
			m.showJSON = !m.showJSON
			m.layout()
			return m, nil
		case "ctrl+y":
			return m, m.copyReport()
		case "ctrl+e":
			return m, m.exportPDF()
		case "ctrl+s":
			return m, m.saveAudit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "up", "down":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.reassess()
	}
	return m, cmd
}

func statusStyleFor(s types.Status) lipgloss.Style {
	switch s {
	case types.StatusPass:
		return passStyle
	case types.StatusWarn:
		return warnStyle
	default:
		return failStyle
	}
}

func strengthBar(s types.Strength) string {
	style := failStyle
	switch {
	case s >= types.StrengthStrong:
		style = passStyle
	case s == types.StrengthMedium:
		style = warnStyle
	}
	var b strings.Builder
	for i := 0; i < int(types.StrengthVeryStrong); i++ {
		if i < int(s) {
			b.WriteString(style.Render("█"))
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func classMark(label string, present bool) string {
	if present {
		return passStyle.Render(label + " ✓")
	}
	return failStyle.Render(label + " ✗")
}

func (m Model) summary() string {
	if m.current == nil {
		return hintStyle.Render("Type a password to assess it against "+m.Policy().Name) + "\n"
	}
	a := m.current
	v := a.Verdict()
	line1 := fmt.Sprintf("Length %d  |  Entropy %.1f bits  |  %s %s  |  Verdict %s",
		a.Length, a.EntropyBits, strengthBar(a.Strength), a.Strength,
		statusStyleFor(v).Render(string(v)))

	parts := []string{
		classMark("a-z", a.Classes.Lower),
		classMark("A-Z", a.Classes.Upper),
		classMark("0-9", a.Classes.Digits),
		classMark("!@#", a.Classes.Special),
	}
	if len(a.Patterns) > 0 {
		labels := make([]string, len(a.Patterns))
		for i, p := range a.Patterns {
			labels[i] = patterns.Label(p)
		}
		parts = append(parts, warnStyle.Render("Patterns: "+strings.Join(labels, ", ")))
	}
	// the matched word can be the password itself, so only the fact is shown
	if len(a.DictionaryHits) > 0 {
		parts = append(parts, failStyle.Render("Common password"))
	}
	return line1 + "\n" + strings.Join(parts, "  ")
}

func helpText() string {
	rows := [][2]string{
		{"tab / shift+tab", "next / previous policy"},
		{"ctrl+t", "toggle JSON pane"},
		{"ctrl+y", "copy text report"},
		{"ctrl+e", "export PDF report"},
		{"ctrl+s", "save to audit log"},
		{"up / down", "scroll rules"},
		{"pgup / pgdown", "scroll JSON"},
		{"esc", "clear input, quit when empty"},
		{"ctrl+c", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-16s", r[0])), r[1])
	}
	b.WriteString("\n" + hintStyle.Render("Press any key to close"))
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(helpText()))
	}

	p := m.Policy()
	header := titleStyle.Render("Password & Entropy Lab") +
		policyStyle.Render(fmt.Sprintf("%s  [%d/%d]", p.Title(), m.policyIdx+1, len(m.policies)))

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.summary() + "\n")
	b.WriteString(tableBorderStyle.Width(m.width-2).Render(m.table.View()) + "\n")
	if m.showJSON {
		b.WriteString(jsonPaneBorderStyle.Width(m.width-2).Render(m.viewport.View()) + "\n")
	}
	status := m.statusMessage
	if status == "" {
		status = defaultStatus
	}
	b.WriteString(statusStyle.Width(m.width).Padding(0, 1).Render(status))
	return b.String()
}
