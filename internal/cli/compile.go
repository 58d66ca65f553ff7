// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jeranaias/simpledoc-tui/internal/compiler"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
	"github.com/jeranaias/simpledoc-tui/internal/util"
)

// HandleCompile handles the "compile" command.
func HandleCompile(args Args) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RunCompile(ctx, args, os.Stdin, os.Stdout); err != nil {
		HandleErrorAndExit("compile", err, args.JSON)
	}
}

// RunCompile compiles args.File (stdin when empty or "-") and writes the
// result to args.Output or out.
func RunCompile(ctx context.Context, args Args, in io.Reader, out io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	source, err := readSource(args.File, in)
	if err != nil {
		return err
	}

	client := compiler.NewClientWithConfig(cfg.ClientConfig())
	tier := cfg.Tier()

	result, err := client.Compile(ctx, source, tier)
	if err != nil {
		return fmt.Errorf("%s: %w", compileFailure(err), err)
	}

	rendered := result.HTML
	if args.Preview {
		doc, err := display.Parse(result.HTML)
		if err != nil {
			return NewCommandError("compile", "render", "cannot parse the compiled HTML", err)
		}
		theme := styles.NewTheme()
		if !ColorsEnabled() {
			theme = styles.NewPlainTheme()
		}
		rendered = display.RenderDocument(doc, theme, GetTerminalWidth(), cfg.UI.HighlightStyle)
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}

	if args.Output != "" {
		if err := util.AtomicWriteFile(args.Output, []byte(rendered), 0644); err != nil {
			return NewCommandError("compile", "write", args.Output, err)
		}
	}

	if args.JSON {
		data := CompileData{
			Output:     args.Output,
			Tier:       int(tier),
			Endpoint:   client.Endpoint(),
			RequestID:  result.RequestID,
			DurationMs: result.Duration.Milliseconds(),
			Message:    result.Message,
		}
		if args.Output == "" {
			data.HTML = result.HTML
		}
		return NewJSONResponse("compile", data).Write(out)
	}

	if args.Output != "" {
		fmt.Fprintf(os.Stderr, "%s %s (%d bytes, %s)\n",
			SuccessStyle.Render("Compiled"), args.Output, len(rendered), result.Duration.Round(time.Millisecond))
		return nil
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// readSource reads the document from path, or from in when path is ""
// or "-".
func readSource(path string, in io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", NewCommandError("compile", "read", "stdin", err)
		}
		return util.NormalizeNewlines(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewCommandError("compile", "read", path, err)
	}
	return util.NormalizeNewlines(string(data)), nil
}

// compileFailure is the user-facing prefix for a compile error.
func compileFailure(err error) string {
	switch compiler.TypeOf(err) {
	case compiler.ErrTypeValidation:
		return "nothing to compile"
	case compiler.ErrTypeCompile:
		return "the document did not compile"
	case compiler.ErrTypeTransport:
		return "error communicating with the server"
	}
	return "compile failed"
}
