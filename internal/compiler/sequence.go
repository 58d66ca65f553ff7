// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compiler

import "sync/atomic"

// Sequencer issues monotonically increasing request numbers so that only
// the most recently issued request's response is applied.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a new sequence number.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Latest returns the most recently issued number (0 if none).
func (s *Sequencer) Latest() uint64 {
	return s.last.Load()
}

// IsLatest reports whether seq is the most recently issued number.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.last.Load()
}
