// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/compiler"
)

// =============================================================================
// STATE
// =============================================================================

// State is the compile lifecycle state of the session.
type State int

const (
	// StateEmpty means the document is blank.
	StateEmpty State = iota
	// StateEdited means the document holds text not yet compiled.
	StateEdited
	// StateCompiling means a compile request is outstanding.
	StateCompiling
	// StateCompiled means the last applied response was a success.
	StateCompiled
	// StateFailed means the last applied response was a failure.
	StateFailed
)

// String returns the state name shown in the status bar.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateEdited:
		return "EDITED"
	case StateCompiling:
		return "COMPILING"
	case StateCompiled:
		return "COMPILED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Config holds session options.
type Config struct {
	// DiscardStale drops responses for any ticket but the latest.
	DiscardStale bool
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{DiscardStale: true}
}

// Ticket identifies one issued compile request.
type Ticket struct {
	Seq      uint64
	Source   string
	Tier     catalog.Tier
	IssuedAt time.Time
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the state of one editing session.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	document string
	tier     catalog.Tier
	state    State

	output         string
	hasOutput      bool
	compiledSource string
	lastErr        error
	lastDuration   time.Duration

	seq          compiler.Sequencer
	inFlight     int
	discardStale bool
}

// New creates a session at tier with the document seeded from that
// tier's example.
func New(tier catalog.Tier, cfg Config) *Session {
	tier = tier.Clamp()
	s := &Session{
		id:           uuid.NewString(),
		startTime:    time.Now(),
		tier:         tier,
		discardStale: cfg.DiscardStale,
	}
	s.setDocumentLocked(catalog.Example(tier))
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// StartTime returns when the session started.
func (s *Session) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Document returns the current source text.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// Tier returns the selected complexity tier.
func (s *Session) Tier() catalog.Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Output returns the last applied compiled HTML.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// HasOutput reports whether any compile result is held.
func (s *Session) HasOutput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasOutput
}

// LastError returns the error of the last applied failure, if the
// session is FAILED.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LastDuration returns the round-trip time of the last applied success.
func (s *Session) LastDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDuration
}

// InFlight returns the number of compile requests without a response.
func (s *Session) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Dirty reports whether the document differs from the source of the
// last applied successful compile.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document != s.compiledSource
}

// DiscardStale reports whether stale responses are dropped.
func (s *Session) DiscardStale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discardStale
}

// SetDiscardStale changes the response ordering policy.
func (s *Session) SetDiscardStale(discard bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardStale = discard
}

// =============================================================================
// EDITING
// =============================================================================

// SetDocument replaces the source text.
func (s *Session) SetDocument(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDocumentLocked(text)
}

// setDocumentLocked updates the document and derives EMPTY or EDITED.
// An outstanding compile keeps the session COMPILING.
func (s *Session) setDocumentLocked(text string) {
	s.document = text
	if s.state == StateCompiling {
		return
	}
	if strings.TrimSpace(text) == "" {
		s.state = StateEmpty
	} else {
		s.state = StateEdited
	}
}

// LoadExample replaces the document with the current tier's example and
// returns it.
func (s *Session) LoadExample() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	example := catalog.Example(s.tier)
	s.setDocumentLocked(example)
	return example
}

// Clear empties the document and drops the held output. Outstanding
// requests are not cancelled.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = ""
	s.hasOutput = false
	s.compiledSource = ""
	s.lastErr = nil
	s.setDocumentLocked("")
}

// SetTier selects a tier. The document is replaced with the new tier's
// example only when it is blank or an unmodified example; the return
// value reports whether that happened.
func (s *Session) SetTier(tier catalog.Tier) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tier = tier.Clamp()
	s.tier = tier
	if !catalog.ShouldRefresh(s.document) {
		return false
	}
	example := catalog.Example(tier)
	if example == s.document {
		return false
	}
	s.setDocumentLocked(example)
	return true
}

// =============================================================================
// COMPILE LIFECYCLE
// =============================================================================

// BeginCompile issues a ticket for the current document and tier. A blank
// document yields compiler.ErrEmptySource and leaves the state unchanged.
func (s *Session) BeginCompile() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.document) == "" {
		return Ticket{}, compiler.ErrEmptySource
	}

	t := Ticket{
		Seq:      s.seq.Next(),
		Source:   s.document,
		Tier:     s.tier,
		IssuedAt: time.Now(),
	}
	s.inFlight++
	s.state = StateCompiling
	return t, nil
}

// IsStale reports whether a response for t would be discarded.
func (s *Session) IsStale(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isStaleLocked(t)
}

func (s *Session) isStaleLocked(t Ticket) bool {
	return s.discardStale && !s.seq.IsLatest(t.Seq)
}

func (s *Session) resolveLocked() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}

// Complete applies a successful response for t. It returns false, and
// changes nothing but the in-flight count, when t is stale.
func (s *Session) Complete(t Ticket, html string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolveLocked()
	if s.isStaleLocked(t) {
		return false
	}

	s.output = html
	s.hasOutput = true
	s.compiledSource = t.Source
	s.lastErr = nil
	s.lastDuration = time.Since(t.IssuedAt)
	s.state = StateCompiled
	return true
}

// Fail applies a failed response for t. The held output is kept. It
// returns false when t is stale.
func (s *Session) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolveLocked()
	if s.isStaleLocked(t) {
		return false
	}

	s.lastErr = err
	s.state = StateFailed
	return true
}
