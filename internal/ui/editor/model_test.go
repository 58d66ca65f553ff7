// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/compiler"
	"github.com/jeranaias/simpledoc-tui/internal/config"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/session"
	"github.com/jeranaias/simpledoc-tui/internal/ui/components"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// fakeService is a stand-in compile service. Sources containing
// "bad token" fail; everything else compiles to a paragraph echoing the
// source and tier.
type fakeService struct {
	mu       sync.Mutex
	requests []compileRequest
}

type compileRequest struct {
	Source string
	Tier   string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := compileRequest{
		Source: r.PostForm.Get(compiler.FieldSource),
		Tier:   r.PostForm.Get(compiler.FieldTier),
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(req.Source, "bad token") {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Unexpected token"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"html":    "<h1>" + html.EscapeString(req.Source) + "</h1><p>tier " + req.Tier + "</p>",
	})
}

func (f *fakeService) Requests() []compileRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]compileRequest(nil), f.requests...)
}

func newTestModel(t *testing.T) (Model, *fakeService) {
	t.Helper()
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Server.URL = srv.URL
	cfg.Server.TimeoutSecs = 5
	cfg.UI.Theme = "dark"
	cfg.UI.HighlightRaw = false

	m := New(Options{Config: cfg, Theme: styles.NewPlainTheme()})
	return m, svc
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update should return an editor Model")
	return nm, cmd
}

// compileResults runs cmd, descending into batches, and returns every
// compile result it produced.
func compileResults(cmd tea.Cmd) []CompileResultMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case CompileResultMsg:
		return []CompileResultMsg{msg}
	case tea.BatchMsg:
		var out []CompileResultMsg
		for _, c := range msg {
			out = append(out, compileResults(c)...)
		}
		return out
	}
	return nil
}

// deliver runs cmd and feeds its compile results back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, res := range compileResults(cmd) {
		m, _ = send(t, m, res)
	}
	return m
}

func setText(m *Model, text string) {
	m.input.SetValue(text)
	m.sess.SetDocument(text)
}

func lastToast(t *testing.T, m Model) components.Toast {
	t.Helper()
	toasts := m.toasts.Toasts()
	require.NotEmpty(t, toasts, "expected a notification")
	return toasts[len(toasts)-1]
}

var (
	keyCompile = tea.KeyMsg{Type: tea.KeyCtrlJ}
	keyToggle  = tea.KeyMsg{Type: tea.KeyF2}
	keyClear   = tea.KeyMsg{Type: tea.KeyCtrlL}
	keyExample = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyDismiss = tea.KeyMsg{Type: tea.KeyCtrlX}
	keyHelp    = tea.KeyMsg{Type: tea.KeyF1}
	keyEsc     = tea.KeyMsg{Type: tea.KeyEscape}
	keyEnter   = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab     = tea.KeyMsg{Type: tea.KeyTab}
)

func altDigit(d rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{d}, Alt: true}
}

// =============================================================================
// BOOTSTRAP TESTS
// =============================================================================

func TestNew_BootstrapState(t *testing.T) {
	m, svc := newTestModel(t)

	assert.Equal(t, display.ModePreview, m.disp.Mode())
	assert.Equal(t, catalog.TierAdvanced, m.sess.Tier())
	assert.Equal(t, catalog.Example(catalog.TierAdvanced), m.input.Value())
	assert.Empty(t, svc.Requests(), "nothing is sent before Init")
}

func TestInit_CompilesBootstrapExample(t *testing.T) {
	m, svc := newTestModel(t)

	m = deliver(t, m, m.Init())

	reqs := svc.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, catalog.Example(catalog.TierAdvanced), reqs[0].Source)
	assert.Equal(t, "3", reqs[0].Tier)
	assert.Equal(t, session.StateCompiled, m.sess.State())
	assert.Contains(t, m.disp.Raw(), "tier 3")
	assert.Equal(t, components.SeveritySuccess, lastToast(t, m).Severity)
}

func TestNew_HonoursConfiguredStartup(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.DefaultTier = 1
	cfg.Editor.DefaultView = "raw"

	m := New(Options{Config: cfg, Theme: styles.NewPlainTheme()})

	assert.Equal(t, display.ModeRaw, m.disp.Mode())
	assert.Equal(t, catalog.TierBasic, m.sess.Tier())
	assert.Equal(t, catalog.Example(catalog.TierBasic), m.input.Value())
}

// =============================================================================
// COMPILE TESTS
// =============================================================================

func TestCompile_BlankSourceWarnsWithoutRequest(t *testing.T) {
	m, svc := newTestModel(t)
	setText(&m, "   \n\t ")

	m, cmd := send(t, m, keyCompile)

	assert.Nil(t, cmd)
	assert.Empty(t, svc.Requests())
	toasts := m.toasts.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, components.SeverityWarning, toasts[0].Severity)
	assert.Equal(t, msgEmptySource, toasts[0].Message)
	assert.Equal(t, session.StateEmpty, m.sess.State())
}

func TestCompile_SuccessFillsBothSurfaces(t *testing.T) {
	m, svc := newTestModel(t)
	setText(&m, "Mi documento")

	m, cmd := send(t, m, keyCompile)
	assert.Equal(t, session.StateCompiling, m.sess.State())
	m = deliver(t, m, cmd)

	require.Len(t, svc.Requests(), 1)
	assert.Equal(t, "<h1>Mi documento</h1><p>tier 3</p>", m.disp.Raw())
	headings := m.disp.Preview().Headings()
	require.Len(t, headings, 1)
	assert.Equal(t, "Mi documento", headings[0].Text)

	assert.Equal(t, session.StateCompiled, m.sess.State())
	toast := lastToast(t, m)
	assert.Equal(t, components.SeveritySuccess, toast.Severity)
	assert.Equal(t, msgCompiled, toast.Message)
}

func TestCompile_FailureKeepsPreviousOutput(t *testing.T) {
	m, _ := newTestModel(t)
	setText(&m, "Bueno")
	m, cmd := send(t, m, keyCompile)
	m = deliver(t, m, cmd)
	before := m.disp.Raw()

	setText(&m, "# Hola\nbad token")
	m, cmd = send(t, m, keyCompile)
	m = deliver(t, m, cmd)

	assert.Equal(t, before, m.disp.Raw(), "surfaces keep the last good output")
	assert.Equal(t, session.StateFailed, m.sess.State())
	assert.True(t, compiler.IsCompile(m.sess.LastError()))

	toast := lastToast(t, m)
	assert.Equal(t, components.SeverityError, toast.Severity)
	assert.Equal(t, "Error: Unexpected token", toast.Message)
}

func TestCompile_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := config.Default()
	cfg.Server.URL = url
	m := New(Options{Config: cfg, Theme: styles.NewPlainTheme()})

	m, cmd := send(t, m, keyCompile)
	m = deliver(t, m, cmd)

	assert.Equal(t, session.StateFailed, m.sess.State())
	assert.True(t, compiler.IsTransport(m.sess.LastError()))
	toast := lastToast(t, m)
	assert.Equal(t, components.SeverityError, toast.Severity)
	assert.True(t, strings.HasPrefix(toast.Message, msgTransportError), toast.Message)
	assert.Empty(t, m.disp.Raw())
}

func TestCompile_KeyDoesNotInsertText(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.input.Value()

	for _, k := range []tea.KeyMsg{keyCompile, {Type: tea.KeyCtrlS}, {Type: tea.KeyF5}} {
		var cmd tea.Cmd
		m, cmd = send(t, m, k)
		require.NotNil(t, cmd, "%s should compile", k)
		assert.Equal(t, before, m.input.Value(), "%s should not edit the text", k)
	}
}

func TestTyping_UpdatesSession(t *testing.T) {
	m, _ := newTestModel(t)
	setText(&m, "Hola")

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, "Hola\nx", m.input.Value())
	assert.Equal(t, "Hola\nx", m.sess.Document())
	assert.Equal(t, session.StateEdited, m.sess.State())
}

func TestCompile_StaleResponseDropped(t *testing.T) {
	m, _ := newTestModel(t)

	setText(&m, "primero")
	m, first := send(t, m, keyCompile)
	setText(&m, "segundo")
	m, second := send(t, m, keyCompile)

	// The later request answers first; the earlier answer must not win.
	m = deliver(t, m, second)
	m = deliver(t, m, first)

	assert.Contains(t, m.disp.Raw(), "segundo")
	assert.Equal(t, session.StateCompiled, m.sess.State())
	assert.Equal(t, 0, m.sess.InFlight())
}

func TestCompile_LastArrivalWinsWhenStaleKept(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.SetDiscardStale(false)

	setText(&m, "primero")
	m, first := send(t, m, keyCompile)
	setText(&m, "segundo")
	m, second := send(t, m, keyCompile)

	m = deliver(t, m, second)
	m = deliver(t, m, first)

	assert.Contains(t, m.disp.Raw(), "primero")
}

// =============================================================================
// VIEW AND TIER TESTS
// =============================================================================

func TestToggle_SwitchesWithoutRequest(t *testing.T) {
	m, svc := newTestModel(t)
	setText(&m, "Hola")
	m, cmd := send(t, m, keyCompile)
	m = deliver(t, m, cmd)
	raw := m.disp.Raw()

	m, cmd = send(t, m, keyToggle)
	assert.Nil(t, cmd)
	assert.Equal(t, display.ModeRaw, m.disp.Mode())
	assert.Equal(t, display.ModeRaw, m.header.Mode)
	assert.Equal(t, raw, m.disp.Raw())
	assert.Contains(t, m.output.View(), "<h1>Hola</h1>")

	m, _ = send(t, m, keyToggle)
	assert.Equal(t, display.ModePreview, m.disp.Mode())
	assert.Len(t, svc.Requests(), 1)
}

func TestTier_BasicEndToEnd(t *testing.T) {
	m, svc := newTestModel(t)

	m, cmd := send(t, m, altDigit('1'))
	assert.Nil(t, cmd, "changing tier does not compile")
	assert.Equal(t, catalog.TierBasic, m.sess.Tier())
	assert.Equal(t, catalog.Example(catalog.TierBasic), m.input.Value())
	assert.Empty(t, svc.Requests())

	m, cmd = send(t, m, keyCompile)
	m = deliver(t, m, cmd)

	reqs := svc.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "1", reqs[0].Tier)
	assert.Equal(t, catalog.Example(catalog.TierBasic), reqs[0].Source)
	assert.Equal(t, session.StateCompiled, m.sess.State())
}

func TestTier_KeepsEditedText(t *testing.T) {
	m, _ := newTestModel(t)
	setText(&m, "mi propio texto")

	m, _ = send(t, m, altDigit('2'))

	assert.Equal(t, catalog.TierIntermediate, m.sess.Tier())
	assert.Equal(t, "mi propio texto", m.input.Value())
}

func TestTier_Cycle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, catalog.TierBasic, m.sess.Tier())
	assert.Equal(t, catalog.TierBasic, m.header.Tier)
}

func TestLoadExample_ReplacesAndCompiles(t *testing.T) {
	m, svc := newTestModel(t)
	setText(&m, "algo distinto")

	m, cmd := send(t, m, keyExample)
	assert.Equal(t, catalog.Example(catalog.TierAdvanced), m.input.Value())
	m = deliver(t, m, cmd)

	require.Len(t, svc.Requests(), 1)
	assert.Equal(t, session.StateCompiled, m.sess.State())
}

func TestClear_EmptiesEverythingWithoutRequest(t *testing.T) {
	m, svc := newTestModel(t)
	m, cmd := send(t, m, keyCompile)
	m = deliver(t, m, cmd)

	m, cmd = send(t, m, keyClear)

	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, session.StateEmpty, m.sess.State())
	assert.Empty(t, m.disp.Raw())
	assert.Equal(t, msgCleared, m.disp.Preview().Text())
	assert.Len(t, svc.Requests(), 1)
}

// =============================================================================
// NOTIFICATION, HELP AND CONFIG TESTS
// =============================================================================

func TestDismiss_RemovesLatestNotification(t *testing.T) {
	m, _ := newTestModel(t)
	setText(&m, "")
	m, _ = send(t, m, keyCompile)
	require.True(t, m.toasts.HasToasts())

	m, _ = send(t, m, keyDismiss)
	for _, toast := range m.toasts.Toasts() {
		assert.Equal(t, components.PhaseLeaving, toast.Phase)
	}
}

func TestHelp_OpensAndCloses(t *testing.T) {
	m, svc := newTestModel(t)

	m, _ = send(t, m, keyHelp)
	assert.True(t, m.showHelp)
	assert.NotEmpty(t, m.help.View())

	// Editor bindings are inactive while help is open
	m, cmd := send(t, m, keyCompile)
	assert.Nil(t, cmd)
	assert.Empty(t, svc.Requests())

	m, _ = send(t, m, keyEsc)
	assert.False(t, m.showHelp)
}

func TestHelpMarkdown_ListsBindingsAndGuide(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	assert.Contains(t, md, "C-j/C-s/F5")
	assert.Contains(t, md, "preview / HTML")
	assert.Contains(t, md, "SimpleDoc syntax guide")
}

func TestSwitchFocus(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, keyTab)
	assert.Equal(t, focusOutput, m.focus)
	assert.False(t, m.input.Focused())

	before := m.input.Value()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Equal(t, before, m.input.Value(), "keys scroll the output, not edit")

	m, _ = send(t, m, keyTab)
	assert.Equal(t, focusEditor, m.focus)
	assert.True(t, m.input.Focused())
}

func TestConfigReload_AppliesServiceSettings(t *testing.T) {
	m, _ := newTestModel(t)

	cfg := config.Default()
	cfg.Server.URL = "http://127.0.0.1:6001"
	cfg.Compile.DiscardStale = false

	m, _ = send(t, m, ConfigReloadedMsg{Reload: config.Reload{Path: "config.toml", Config: cfg}})

	assert.Equal(t, "http://127.0.0.1:6001", m.client.BaseURL())
	assert.False(t, m.sess.DiscardStale())
	assert.Equal(t, m.client.Endpoint(), m.statusbar.Endpoint)
	assert.Equal(t, components.SeverityInfo, lastToast(t, m).Severity)
}

func TestConfigReload_KeepsCommandLineOverrides(t *testing.T) {
	m, _ := newTestModel(t)
	pinned := m.client.BaseURL()
	m.override = func(c *config.Config) error {
		c.Server.URL = pinned
		return nil
	}

	cfg := config.Default()
	cfg.Server.URL = "http://127.0.0.1:6001"
	cfg.Compile.DiscardStale = false
	m, _ = send(t, m, ConfigReloadedMsg{Reload: config.Reload{Path: "config.toml", Config: cfg}})

	assert.Equal(t, pinned, m.client.BaseURL(), "flag URL survives the reload")
	assert.False(t, m.sess.DiscardStale(), "file settings still apply")

	m.override = func(*config.Config) error { return errors.New("bad flag") }
	m, _ = send(t, m, ConfigReloadedMsg{Reload: config.Reload{Path: "config.toml", Config: config.Default()}})
	assert.Equal(t, pinned, m.client.BaseURL())
	assert.Equal(t, components.SeverityWarning, lastToast(t, m).Severity)
}

func TestConfigReload_InvalidKeepsSettings(t *testing.T) {
	m, _ := newTestModel(t)
	url := m.client.BaseURL()

	m, _ = send(t, m, ConfigReloadedMsg{Reload: config.Reload{Err: errors.New("bad tier")}})

	assert.Equal(t, url, m.client.BaseURL())
	toast := lastToast(t, m)
	assert.Equal(t, components.SeverityWarning, toast.Severity)
	assert.Contains(t, toast.Message, "bad tier")
}

func TestWaitForReload(t *testing.T) {
	assert.Nil(t, waitForReload(nil))

	ch := make(chan config.Reload, 1)
	ch <- config.Reload{Path: "x.toml"}
	msg := waitForReload(ch)()
	reload, ok := msg.(ConfigReloadedMsg)
	require.True(t, ok)
	assert.Equal(t, "x.toml", reload.Reload.Path)

	close(ch)
	assert.Nil(t, waitForReload(ch)())
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestView_RendersChrome(t *testing.T) {
	m, _ := newTestModel(t)

	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 60, Height: 20}} {
		m, _ = send(t, m, size)
		view := m.View()
		assert.Contains(t, view, "SimpleDoc")
		assert.Contains(t, view, "Source")
		assert.Contains(t, view, "Preview")
	}
}

func TestView_CountsHiddenNotifications(t *testing.T) {
	m, _ := newTestModel(t)
	setText(&m, "  ")
	for i := 0; i < maxVisibleToasts+2; i++ {
		m, _ = send(t, m, keyCompile)
	}
	require.Len(t, m.toasts.Toasts(), maxVisibleToasts+2)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	assert.Contains(t, m.View(), "+2 more")
}

func TestLayout_StacksOnNarrowTerminals(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.False(t, m.panes.stacked)
	assert.Equal(t, 120, m.panes.editor.width+m.panes.output.width)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 70, Height: 40})
	assert.True(t, m.panes.stacked)
	assert.Equal(t, m.panes.body, m.panes.editor.height+m.panes.output.height)
}
