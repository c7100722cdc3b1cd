package search

import (
	"bytes"
	"unicode/utf8"
)

// looksLikeTextSampleSize bounds how much of a source LooksLikeText
// inspects before deciding it's safe to line-split.
const looksLikeTextSampleSize = 4096

// LooksLikeText reports whether sample, the first bytes read from a source,
// looks like line-oriented text rather than binary content. The batch
// scanner has no business splitting a binary record on a byte that happens
// to equal '\n', so the CLI layer sniffs each source before handing it a
// line reader. This is a NUL-byte veto plus a UTF-8/printable-ratio
// fallback; it never transcodes anything, it only decides yes or no.
func LooksLikeText(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if len(sample) > looksLikeTextSampleSize {
		sample = sample[:looksLikeTextSampleSize]
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}
	printable := 0
	for _, b := range sample {
		if isCommonTextByte(b) {
			printable++
		}
	}
	return printable*10 >= len(sample)*7
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}
