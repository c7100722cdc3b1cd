package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/fzline/internal/search"
)

// highlighter wraps matched byte spans in ANSI red ("\x1b[31m" ... "\x1b[0m")
// via fatih/color instead of hand-rolled escape constants.
type highlighter struct {
	enabled bool
	c       *color.Color
}

func newHighlighter(enabled bool) *highlighter {
	h := &highlighter{enabled: enabled, c: color.New(color.FgRed)}
	h.c.EnableColor()
	return h
}

func (h *highlighter) wrap(text string, spans []search.MatchSpan) string {
	if !h.enabled || len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(spans)*9)
	pos := 0
	for _, sp := range spans {
		if sp.Start > pos {
			b.WriteString(text[pos:sp.Start])
		}
		end := sp.End + 1
		if end > len(text) {
			end = len(text)
		}
		b.WriteString(h.c.Sprint(text[sp.Start:end]))
		pos = end
	}
	if pos < len(text) {
		b.WriteString(text[pos:])
	}
	return b.String()
}

// WriteResults renders up to TopK results one per line:
// "[score ] [filename ] [lineno ] text", plus the trailing count footer
// when ShowCount is set. Filenames are padded to the widest one seen via
// go-runewidth so columns stay aligned even with wide/multi-byte characters
// in a path.
func WriteResults(w io.Writer, args search.SearchArgs, scan *search.ScanResult) {
	h := newHighlighter(args.Color)
	results := scan.Collector.Results()

	nameWidth := 0
	if !args.TrimEmptyFiles {
		for _, sl := range results {
			if w := runewidth.StringWidth(sl.Record.Filename); w > nameWidth {
				nameWidth = w
			}
		}
	}

	for _, sl := range results {
		var cols []string
		if args.ShowScore {
			cols = append(cols, strconv.FormatFloat(sl.Result.Score, 'f', 3, 64))
		}
		if !args.TrimEmptyFiles || sl.Record.Filename != "" {
			name := sl.Record.Filename
			if nameWidth > 0 {
				name = runewidth.FillRight(name, nameWidth)
			}
			cols = append(cols, name)
		}
		if args.ShowLine {
			cols = append(cols, strconv.Itoa(sl.Record.Lineno))
		}

		spans := search.MergeMatchSpans(search.PathToSpans(sl.Result.Path))
		text := h.wrap(sl.Record.Text, spans)

		if len(cols) == 0 {
			fmt.Fprintln(w, text)
			continue
		}
		fmt.Fprintln(w, strings.Join(cols, " ")+" "+text)
	}

	if args.ShowCount {
		fmt.Fprintln(w, scan.TotalAccepted)
	}
}
