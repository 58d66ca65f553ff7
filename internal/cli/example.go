// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
)

// HandleExample handles the "example" command.
func HandleExample(args Args) {
	if err := RunExample(args, os.Stdout); err != nil {
		HandleErrorAndExit("example", err, args.JSON)
	}
}

// RunExample writes the example for args.Tier, or the default tier, to out.
func RunExample(args Args, out io.Writer) error {
	tier := catalog.DefaultTier
	if args.Tier != "" {
		t, err := catalog.ParseTier(args.Tier)
		if err != nil {
			return NewUsageError("tier", args.Tier, "must be 1, 2 or 3", "simpledoc-tui example -c 1")
		}
		tier = t
	}
	_, err := io.WriteString(out, catalog.Example(tier))
	return err
}
