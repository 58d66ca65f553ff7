// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compiler

import "time"

// Form field names expected by the compile endpoint.
const (
	FieldSource = "codigo"
	FieldTier   = "nivel_complejidad"
)

// CompilePath is the compile endpoint path, relative to the base URL.
const CompilePath = "/compilar"

// compileResponse is the JSON body returned by the compile endpoint.
// Success is a pointer so a body without the field is rejected.
type compileResponse struct {
	Success *bool  `json:"success"`
	HTML    string `json:"html"`
	Error   string `json:"error"`
	Message string `json:"mensaje"`
}

// Result is a successful compilation.
type Result struct {
	// HTML is the compiled output, consumed verbatim.
	HTML string
	// Message is the service's optional summary ("mensaje").
	Message string
	// RequestID is the X-Request-ID sent with the request.
	RequestID string
	// Duration is the round-trip time.
	Duration time.Duration
}
