package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/gogpu/spirvtools/diag"
)

// diagPrinter writes diagnostics to w, colored by severity when
// either color is forced on or w is a terminal and color is "auto".
// In "auto" mode, when w is a terminal, lines are truncated to its width rather than
// left to wrap mid-message, the way a progress or status line would
// be in a terminal UI.
type diagPrinter struct {
	w       io.Writer
	fatal   *color.Color
	errC    *color.Color
	warn    *color.Color
	info    *color.Color
	enabled bool
	width   int // 0 means "unknown, don't truncate"
}

func newDiagPrinter(w io.Writer, mode string) *diagPrinter {
	enabled := mode == "on"
	width := 0
	if mode == "auto" {
		if f, ok := w.(*os.File); ok {
			enabled = term.IsTerminal(int(f.Fd()))
			if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = cols
			}
		}
	}
	p := &diagPrinter{
		w:       w,
		fatal:   color.New(color.FgRed, color.Bold),
		errC:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		enabled: enabled,
		width:   width,
	}
	return p
}

func (p *diagPrinter) print(d diag.Diagnostic) {
	line := d.String()
	if p.width > 0 && runewidth.StringWidth(line) > p.width {
		line = runewidth.Truncate(line, p.width-1, "…")
	}
	if !p.enabled {
		fmt.Fprintln(p.w, line)
		return
	}
	switch d.Severity {
	case diag.SevFatal:
		p.fatal.Fprintln(p.w, line)
	case diag.SevError:
		p.errC.Fprintln(p.w, line)
	case diag.SevWarning:
		p.warn.Fprintln(p.w, line)
	default:
		p.info.Fprintln(p.w, line)
	}
}
