package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kk-code-lab/fzline/internal/search"
)

// OpenSources resolves the CLI's FILE... positionals (or stdin when empty)
// into search.Source values. A file that cannot be opened yields an IoError
// printed to warn and is skipped rather than aborting the whole scan; a
// file whose first sample looks binary is skipped the same way. The
// returned bool is true iff at least one source was opened.
func OpenSources(files []string, stdin io.Reader, warn func(error)) ([]search.Source, bool) {
	if len(files) == 0 {
		return []search.Source{{Name: "", Reader: stdin}}, true
	}

	var sources []search.Source
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			warn(&IoError{Path: path, Err: err})
			continue
		}
		br := bufio.NewReaderSize(f, 64*1024)
		sample, _ := br.Peek(4096)
		if !search.LooksLikeText(sample) {
			warn(fmt.Errorf("%s: skipped (binary content)", path))
			_ = f.Close()
			continue
		}
		sources = append(sources, search.Source{Name: path, Reader: &closingReader{r: br, c: f}})
	}
	return sources, len(sources) > 0
}

// closingReader closes the underlying file once the scanner is done reading
// it, so OpenSources's caller doesn't need to track file handles itself.
type closingReader struct {
	r io.Reader
	c io.Closer
}

func (c *closingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err == io.EOF {
		_ = c.c.Close()
	}
	return n, err
}
