// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compiler provides the HTTP client for the SimpleDoc compile service.
//
// The compile service is an external collaborator exposing a single
// endpoint, POST /compilar, which accepts form fields "codigo" (source text)
// and "nivel_complejidad" (tier "1".."3") and answers with JSON:
//
//	{"success": true,  "html":  "<h1>...</h1>"}
//	{"success": false, "error": "Error en línea 3: ..."}
//
// # Error kinds
//
// Every failure is a *ClientError whose Type is one of:
//
//   - ErrTypeValidation: blank source, detected locally, never sent
//   - ErrTypeCompile: the service answered success=false
//   - ErrTypeTransport: network failure or unparseable response
//
// Use IsValidation, IsCompile and IsTransport to branch on them.
//
// # Usage
//
//	client := compiler.NewClient()
//	res, err := client.Compile(ctx, source, catalog.TierAdvanced)
//	switch {
//	case err == nil:
//	    render(res.HTML)
//	case compiler.IsCompile(err):
//	    notify("Error: " + err.Error())
//	}
//
// # Sequencing
//
// Sequencer hands out monotonically increasing tickets so callers can drop
// responses that arrive after a newer request was issued.
package compiler
