// Package cli is the thin collaborator around the search core: flag
// parsing, source resolution, and output formatting, kept separate so
// internal/search never opens files or writes results itself and imports os
// only for its own debug-logging switch.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/kk-code-lab/fzline/internal/search"
)

// Options is the raw result of flag parsing, one step short of a validated
// search.SearchArgs.
type Options struct {
	TopK          int
	IgnoreCase    bool
	NoIgnoreCase  bool
	Parallel      bool
	PreserveOrder bool
	BatchSize     int
	MaxSymbolGap  int
	GapPenalty    string
	WordDelims    string
	NoColor       bool
	NoScore       bool
	NoCount       bool
	NoLine        bool
	TrimEmptyName bool
	Version       bool
	Help          bool

	Query string
	Files []string
}

// ParseArgs registers the flag table with pflag and returns the parsed
// Options. The flag surface is wide enough to earn a real flag library over
// a hand-rolled os.Args switch.
func ParseArgs(args []string) (Options, error) {
	fs := pflag.NewFlagSet("fzline", pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var o Options
	fs.IntVarP(&o.TopK, "topk", "k", 100, "retain top N results")
	fs.BoolVarP(&o.IgnoreCase, "ignore-case", "i", false, "force case-insensitive; disables smart-case")
	fs.BoolVarP(&o.NoIgnoreCase, "no-ignore-case", "I", false, "force case-sensitive; disables smart-case")
	fs.BoolVarP(&o.Parallel, "parallel", "p", false, "enable parallel batches")
	fs.BoolVarP(&o.PreserveOrder, "preserve-order", "o", false, "fuzzy AND atoms must match in query order")
	fs.IntVar(&o.BatchSize, "batch-size", 10000, "batch granularity")
	fs.IntVarP(&o.MaxSymbolGap, "max-symbol-gap", "s", 10, "witness gap bound; N<=0 means unbounded")
	fs.StringVarP(&o.GapPenalty, "gap-penalty", "g", "linear", "gap cost function: linear or log")
	fs.StringVarP(&o.WordDelims, "word-delims", "d", ":;,./-_ \t", "characters treated as word boundaries")
	fs.BoolVarP(&o.NoColor, "no-color", "C", false, "disable ANSI highlighting")
	fs.BoolVarP(&o.NoScore, "no-score", "S", false, "hide score column")
	fs.BoolVarP(&o.NoCount, "no-count", "c", false, "hide total-match count footer")
	fs.BoolVarP(&o.NoLine, "no-line", "l", false, "hide line-number column")
	fs.BoolVarP(&o.TrimEmptyName, "trim-empty-filenames", "t", false, "omit empty filename field")
	fs.BoolVarP(&o.Version, "version", "V", false, "print version and exit")
	fs.BoolVarP(&o.Help, "help", "h", false, "show help and exit")

	if err := fs.Parse(args); err != nil {
		return Options{}, &ArgumentError{Message: err.Error()}
	}
	if o.Help || o.Version {
		return o, nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Options{}, &ArgumentError{Message: "missing QUERY"}
	}
	o.Query = rest[0]
	o.Files = rest[1:]
	return o, nil
}

// ToSearchArgs validates and converts Options into a search.SearchArgs,
// resolving the ignore-case / smart-case interaction.
func (o Options) ToSearchArgs() (search.SearchArgs, error) {
	gp := search.GapPenaltyLinear
	switch o.GapPenalty {
	case "linear", "":
		gp = search.GapPenaltyLinear
	case "log":
		gp = search.GapPenaltyLog
	default:
		return search.SearchArgs{}, &ArgumentError{Message: fmt.Sprintf("invalid --gap-penalty %q", o.GapPenalty)}
	}

	ignoreCase := true
	smartCase := true
	switch {
	case o.IgnoreCase:
		ignoreCase, smartCase = true, false
	case o.NoIgnoreCase:
		ignoreCase, smartCase = false, false
	}

	maxSymbolDist := o.MaxSymbolGap
	if maxSymbolDist < 0 {
		maxSymbolDist = search.Unbounded
	}

	args := search.SearchArgs{
		Query:          o.Query,
		IgnoreCase:     ignoreCase,
		SmartCase:      smartCase,
		TopK:           o.TopK,
		Parallel:       o.Parallel,
		PreserveOrder:  o.PreserveOrder,
		BatchSize:      o.BatchSize,
		MaxSymbolDist:  maxSymbolDist,
		GapPenalty:     gp,
		WordDelims:     o.WordDelims,
		Color:          !o.NoColor,
		ShowCount:      !o.NoCount,
		ShowScore:      !o.NoScore,
		ShowLine:       !o.NoLine,
		TrimEmptyFiles: o.TrimEmptyName,
	}.Normalize()

	if args.TopK < 1 {
		return search.SearchArgs{}, &ArgumentError{Message: "--topk must be >= 1"}
	}
	return args, nil
}
