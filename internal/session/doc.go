// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one editing session.
//
// A Session owns the source document, the selected complexity tier, the
// last compiled output and the compile lifecycle. It is the single place
// where the editor's state lives; the UI reads it and the compile flow
// drives it through tickets.
//
// # Key Types
//
//   - Session: document, tier, output and compile state
//   - State: EMPTY, EDITED, COMPILING, COMPILED or FAILED
//   - Ticket: one issued compile request
//
// # Usage
//
//	sess := session.New(catalog.TierAdvanced, session.DefaultConfig())
//	ticket, err := sess.BeginCompile()
//	if err != nil {
//	    // blank document, nothing was issued
//	}
//	result, err := client.Compile(ctx, ticket.Source, ticket.Tier)
//	if err != nil {
//	    sess.Fail(ticket, err)
//	} else {
//	    sess.Complete(ticket, result.HTML)
//	}
//
// # Ordering
//
// With DiscardStale set, only the most recently issued ticket may change
// the output. Responses for older tickets are reported as stale and
// ignored, whatever order they arrive in.
package session
