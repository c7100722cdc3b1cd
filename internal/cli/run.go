package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/kk-code-lab/fzline/internal/search"
)

// Run is the CLI entry point's body: parse flags, build the query, scan the
// sources, write results, and return the process exit code.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) ExitCode {
	opts, err := ParseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitParseError
	}
	if opts.Help {
		printHelp(stdout)
		return ExitOK
	}
	if opts.Version {
		fmt.Fprintln(stdout, "fzline "+version)
		return ExitOK
	}

	args, err := opts.ToSearchArgs()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitParseError
	}
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		args.Color = false
	} else if f, ok := stdout.(*os.File); ok {
		args.Color = term.IsTerminal(int(f.Fd()))
	}

	query, err := search.Parse(args.Query, args.IgnoreCase, args.SmartCase)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitParseError
	}

	sources, any := OpenSources(opts.Files, stdin, func(e error) {
		fmt.Fprintln(stderr, e)
	})
	if !any {
		return ExitIOError
	}

	scan, err := search.Run(context.Background(), args, query, sources)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitIOError
	}

	WriteResults(stdout, args, scan)
	return ExitOK
}

const version = "0.1.0"

func printHelp(w io.Writer) {
	fmt.Fprint(w, `fzline - line-oriented fuzzy search filter

USAGE:
    fzline [OPTIONS] QUERY [FILE...]

If no FILE is given, fzline reads from standard input.

OPTIONS:
    -k, --topk N                retain top N results (default 100)
    -i, --ignore-case           force case-insensitive; disables smart-case
    -I, --no-ignore-case        force case-sensitive; disables smart-case
    -p, --parallel              enable parallel batches
    -o, --preserve-order        fuzzy AND atoms must match in query order
        --batch-size N          batch granularity (default 10000)
    -s, --max-symbol-gap N      witness gap bound; N<=0 means unbounded
    -g, --gap-penalty {linear|log}
                                 gap cost function
    -d, --word-delims STR       characters treated as word boundaries
    -C, --no-color              disable ANSI highlighting
    -S, --no-score              hide score column
    -c, --no-count              hide total-match count footer
    -l, --no-line               hide line-number column
    -t, --trim-empty-filenames  omit empty filename field
    -V, --version                print version and exit
    -h, --help                   show this help and exit
`)
}
