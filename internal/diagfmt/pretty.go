package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ledge/internal/diag"
	"ledge/internal/source"
)

type palette struct {
	severity map[diag.Severity]*color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &palette{
		severity: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan),
		},
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p *palette) sev(s diag.Severity) *color.Color {
	if c, ok := p.severity[s]; ok {
		return c
	}
	return p.severity[diag.SevInfo]
}

// Pretty renders the bag's diagnostics in a human-readable form, one
// entry per diagnostic:
//
//	<path>:<line>:<col>: <SEV> [<CODE>]: <message>
//
// followed by the source line with a caret underlining the span, and by
// any notes when opts.ShowNotes is set. Call bag.Sort() beforehand for a
// deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, p, d, opts)
		writeSnippet(w, p, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "%s %s: %s\n",
					formatAnchor(n.Span, opts.PathMode), p.note.Sprint("note"), n.Msg)
				writeSnippet(w, p, fs, n.Span, opts)
			}
		}
	}
}

func writeHeader(w io.Writer, p *palette, d diag.Diagnostic, opts PrettyOpts) {
	fmt.Fprintf(w, "%s %s [%s]: %s\n",
		formatAnchor(d.Primary, opts.PathMode),
		p.sev(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message)
}

// formatAnchor renders the "path:line:col:" prefix of a diagnostic line.
func formatAnchor(sp source.Span, mode PathMode) string {
	if sp.IsNone() {
		return "<unknown>:"
	}
	return fmt.Sprintf("%s:%d:%d:", formatPath(sp.File, mode), sp.Start.Line, sp.Start.Col)
}

func formatPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

// writeSnippet prints the span's source line inside a numbered gutter,
// with a caret row underlining the span and opts.Context extra lines of
// surrounding source. Spans the FileSet cannot resolve print nothing.
func writeSnippet(w io.Writer, p *palette, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if fs == nil || sp.IsNone() {
		return
	}
	f, ok := fs.GetByName(sp.File)
	if !ok {
		return
	}

	first := sp.Start.Line
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	from := uint32(1)
	if first > ctx {
		from = first - ctx
	}
	gutterW := len(fmt.Sprintf("%d", first+ctx))

	for ln := from; ln <= first+ctx; ln++ {
		line := f.GetLine(ln)
		if line == "" && ln != first {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterW, ln), line)
		if ln == first {
			writeCaret(w, p, line, sp, gutterW)
		}
	}
}

// writeCaret prints the underline row. Width math uses display columns
// so that wide runes in the source line do not skew the caret.
func writeCaret(w io.Writer, p *palette, line string, sp source.Span, gutterW int) {
	startCol := int(sp.Start.Col)
	if startCol < 1 {
		startCol = 1
	}
	// End is inclusive; a span ending on a later line underlines only
	// the start character.
	endCol := int(sp.End.Col)
	if sp.End.Line != sp.Start.Line || endCol < startCol {
		endCol = startCol
	}

	runes := []rune(line)
	clamp := func(col int) int {
		if col > len(runes) {
			return len(runes)
		}
		return col
	}
	pad := runewidth.StringWidth(string(runes[:clamp(startCol-1)]))
	width := runewidth.StringWidth(string(runes[clamp(startCol-1):clamp(endCol)]))
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterW, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint(marker))
}
