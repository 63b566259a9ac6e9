// Package ui prints command-line output for the non-interactive commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/novella/internal/playlog"
	"github.com/papapumpkin/novella/internal/script"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes formatted output to Out.
type Printer struct {
	Out io.Writer // nil = os.Stderr
}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stderr
}

// Banner prints the story title.
func (p *Printer) Banner(title string) {
	if title == "" {
		title = "novella"
	}
	line := strings.Repeat("═", len([]rune(title))+6)
	fmt.Fprintln(p.out(), bold+cyan+"  ╔"+line+"╗"+reset)
	fmt.Fprintln(p.out(), bold+cyan+"  ║"+reset+bold+"   "+title+"   "+reset+bold+cyan+"║"+reset)
	fmt.Fprintln(p.out(), bold+cyan+"  ╚"+line+"╝"+reset)
	fmt.Fprintln(p.out())
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.out(), red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out(), dim+"%s"+reset+"\n", msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out(), yellow+"⚠ %s"+reset+"\n", msg)
}

// ValidateResult prints the validation outcome for a story directory.
func (p *Printer) ValidateResult(source string, chapters int, errs []script.ValidationError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out(), green+bold+"✓ story %q"+reset+" %d chapter(s), no errors\n", source, chapters)
		return
	}
	fmt.Fprintf(p.out(), red+bold+"✗ story %q"+reset+" %d error(s):\n", source, len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.out(), "  "+red+"• "+reset+"[%s] %s\n", e.Category, e.Error())
	}
}

// Stats prints a play log summary followed by the most visited scenes.
func (p *Printer) Stats(sum playlog.Summary, top []playlog.SceneCount) {
	fmt.Fprintf(p.out(), bold+cyan+"sessions"+reset+" %d   "+bold+cyan+"visits"+reset+" %d\n", sum.Sessions, sum.Visits)

	if len(sum.Gates) > 0 {
		fmt.Fprintln(p.out())
		fmt.Fprintln(p.out(), bold+"gates"+reset)
		for _, g := range sum.Gates {
			fmt.Fprintf(p.out(), "  %-8s %4d attempt(s) %4d accepted\n", g.Gate, g.Attempts, g.Accepted)
		}
	}

	fmt.Fprintln(p.out())
	fmt.Fprintln(p.out(), bold+"scenes"+reset)
	if len(top) == 0 {
		fmt.Fprintln(p.out(), dim+"  (no visits)"+reset)
		return
	}
	for _, s := range top {
		fmt.Fprintf(p.out(), "  %-20s %4d visit(s) %4d session(s)\n", s.Scene, s.Visits, s.Sessions)
	}
}
