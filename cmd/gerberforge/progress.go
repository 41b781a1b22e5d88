package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// progress reports step-by-step status while parsing/rendering a board.
// On an interactive terminal it overwrites a single status line; piped
// into a file or CI log it falls back to one line per step. The
// terminal check is an fd-based term.IsTerminal test on the writer.
type progress struct {
	w       io.Writer
	isTerm  bool
	lastLen int
}

func newProgress(w io.Writer) *progress {
	isTerm := false
	if f, ok := w.(*os.File); ok {
		isTerm = term.IsTerminal(int(f.Fd()))
	}
	return &progress{w: w, isTerm: isTerm}
}

func (p *progress) step(msg string) {
	if !p.isTerm {
		fmt.Fprintln(p.w, msg)
		return
	}
	pad := p.lastLen - len(msg)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.w, "\r%s%*s", msg, pad, "")
	p.lastLen = len(msg)
}

func (p *progress) done() {
	if p.isTerm {
		fmt.Fprintln(p.w)
	}
}
