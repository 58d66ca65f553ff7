// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/compiler"
	"github.com/jeranaias/simpledoc-tui/internal/config"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/session"
	"github.com/jeranaias/simpledoc-tui/internal/ui/components"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// focus identifies the pane receiving unbound keys.
type focus int

const (
	focusEditor focus = iota
	focusOutput
)

// Options configures a new editor Model.
type Options struct {
	// Config supplies startup and service settings. Nil uses defaults.
	Config *config.Config
	// Client is the compile client. Nil builds one from Config.
	Client *compiler.Client
	// Theme is the UI theme. Nil uses styles.NewTheme.
	Theme *styles.Theme
	// Reloads delivers config reloads, usually from a config.Watcher.
	Reloads <-chan config.Reload
	// Overrides is re-applied to every reloaded config, so command-line
	// settings keep winning over the file.
	Overrides func(*config.Config) error
	// Now overrides the notification clock.
	Now func() time.Time
}

// Model is the editor's Bubble Tea model.
type Model struct {
	cfg    *config.Config
	client *compiler.Client
	sess   *session.Session
	disp   *display.Controller
	toasts *components.ToastManager
	keys   KeyMap

	// Widgets
	input   textarea.Model
	output  viewport.Model
	help    viewport.Model
	spinner spinner.Model

	// Chrome
	header    *components.Header
	statusbar *components.StatusBar
	theme     *styles.Theme

	focus    focus
	showHelp bool
	reloads  <-chan config.Reload
	override func(*config.Config) error
	now      func() time.Time

	width   int
	height  int
	panes   paneLayout
	toastUI string
}

// New creates the editor in its bootstrap state: the configured tier's
// example loaded and the configured view visible. Init issues the first
// compile.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	client := opts.Client
	if client == nil {
		client = compiler.NewClientWithConfig(cfg.ClientConfig())
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sess := session.New(cfg.Tier(), session.Config{DiscardStale: cfg.Compile.DiscardStale})

	disp := display.NewController(cfg.ViewMode())
	disp.Reset(msgNoOutput)

	toasts := components.NewToastManager()
	toasts.SetClock(now)

	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "Write SimpleDoc here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(sess.Document())
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	header := components.NewHeader(theme)
	header.SetTier(sess.Tier())
	header.SetMode(disp.Mode())

	statusbar := components.NewStatusBar(theme)
	statusbar.Endpoint = client.Endpoint()

	m := Model{
		cfg:       cfg,
		client:    client,
		sess:      sess,
		disp:      disp,
		toasts:    toasts,
		keys:      DefaultKeyMap(),
		input:     ta,
		output:    viewport.New(80, 20),
		help:      viewport.New(80, 20),
		spinner:   sp,
		header:    header,
		statusbar: statusbar,
		theme:     theme,
		reloads:   opts.Reloads,
		override:  opts.Overrides,
		now:       now,
		width:     80,
		height:    24,
	}
	m.layout()
	m.refreshOutput()
	return m
}

// Init compiles the bootstrap document and starts the background ticks.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, components.ToastTickCmd()}
	if cmd := m.startCompile(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layout()
		m.refreshOutput()
		m.output.SetYOffset(0)
		if m.showHelp {
			m.refreshHelp()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case CompileResultMsg:
		m.handleCompileResult(msg)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick(msg.Time)
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		if m.sess.InFlight() == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		m.handleConfigReload(msg.Reload)
		return m, waitForReload(m.reloads)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress routes a key. Editor bindings win over the text area,
// so compile keys never insert text.
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.CloseHelp) {
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Compile):
		return m, m.startCompile()

	case key.Matches(msg, m.keys.LoadExample):
		m.input.SetValue(m.sess.LoadExample())
		if m.cfg.Compile.CompileOnLoad {
			return m, m.startCompile()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.sess.Clear()
		m.input.Reset()
		m.disp.Reset(msgCleared)
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.ToggleView):
		m.header.SetMode(m.disp.Toggle())
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.Tier1):
		m.selectTier(catalog.TierBasic)
		return m, nil

	case key.Matches(msg, m.keys.Tier2):
		m.selectTier(catalog.TierIntermediate)
		return m, nil

	case key.Matches(msg, m.keys.Tier3):
		m.selectTier(catalog.TierAdvanced)
		return m, nil

	case key.Matches(msg, m.keys.CycleTier):
		m.selectTier(m.sess.Tier().Next())
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		m.switchFocus()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissLatest()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.refreshHelp()
		m.help.GotoTop()
		return m, nil
	}

	if m.focus == focusOutput {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.sess.Document() {
		m.sess.SetDocument(text)
	}
	return m, cmd
}

// =============================================================================
// ACTIONS
// =============================================================================

// startCompile issues a compile for the current document. A blank
// document only raises a warning.
func (m Model) startCompile() tea.Cmd {
	ticket, err := m.sess.BeginCompile()
	if err != nil {
		m.notify(msgEmptySource, components.SeverityWarning)
		return nil
	}
	return tea.Batch(compileCmd(m.client, ticket), m.spinner.Tick)
}

// compileCmd runs one compile request off the update loop.
func compileCmd(client *compiler.Client, ticket session.Ticket) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Compile(context.Background(), ticket.Source, ticket.Tier)
		return CompileResultMsg{Ticket: ticket, Result: result, Err: err}
	}
}

func (m *Model) handleCompileResult(msg CompileResultMsg) {
	if msg.Err == nil {
		if !m.sess.Complete(msg.Ticket, msg.Result.HTML) {
			m.logStale(msg.Ticket)
			return
		}
		m.disp.Render(msg.Result.HTML)
		m.refreshOutput()
		m.output.GotoTop()
		m.notify(msgCompiled, components.SeveritySuccess)
		return
	}

	if !m.sess.Fail(msg.Ticket, msg.Err) {
		m.logStale(msg.Ticket)
		return
	}

	var ce *compiler.ClientError
	if errors.As(msg.Err, &ce) && ce.Type == compiler.ErrTypeCompile {
		m.notify(msgCompileFailed+ce.Message, components.SeverityError)
		return
	}
	log.Printf("COMPILE_TRANSPORT_ERROR | seq=%d tier=%s error=%q", msg.Ticket.Seq, msg.Ticket.Tier, msg.Err)
	m.notify(msgTransportError+msg.Err.Error(), components.SeverityError)
}

func (m *Model) logStale(t session.Ticket) {
	log.Printf("COMPILE_STALE | seq=%d tier=%s age=%dms", t.Seq, t.Tier, time.Since(t.IssuedAt).Milliseconds())
}

// selectTier changes the tier. The text is swapped for the tier's example
// only when it is blank or an untouched example; nothing is compiled.
func (m *Model) selectTier(t catalog.Tier) {
	if m.sess.SetTier(t) {
		m.input.SetValue(m.sess.Document())
	}
	m.header.SetTier(m.sess.Tier())
}

func (m *Model) switchFocus() {
	if m.focus == focusEditor {
		m.focus = focusOutput
		m.input.Blur()
		return
	}
	m.focus = focusEditor
	m.input.Focus()
}

func (m *Model) notify(message string, severity components.Severity) {
	m.toasts.Notify(message, severity, m.cfg.NotificationLifetime())
}

// handleConfigReload applies service and display settings from a reload.
// Startup settings (tier and view) are left alone.
func (m *Model) handleConfigReload(r config.Reload) {
	if r.Err != nil {
		m.notify(msgConfigInvalid+r.Err.Error(), components.SeverityWarning)
		return
	}
	if r.Config == nil {
		return
	}
	if m.override != nil {
		if err := m.override(r.Config); err != nil {
			log.Printf("CONFIG_OVERRIDE_ERROR | path=%s error=%v", r.Path, err)
			m.notify(msgConfigInvalid+err.Error(), components.SeverityWarning)
			return
		}
	}
	m.cfg = r.Config
	m.client.Configure(r.Config.ClientConfig())
	m.sess.SetDiscardStale(r.Config.Compile.DiscardStale)
	m.statusbar.Endpoint = m.client.Endpoint()
	m.refreshOutput()
	if m.showHelp {
		m.refreshHelp()
	}
	log.Printf("CONFIG_APPLIED | path=%s url=%s", r.Path, m.client.BaseURL())
	m.notify(msgConfigReloaded, components.SeverityInfo)
}

// waitForReload blocks on the next config reload.
func waitForReload(reloads <-chan config.Reload) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-reloads
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Reload: r}
	}
}
