package search

// PathToSpans collapses a sorted, duplicate-free path of byte offsets into
// minimal contiguous [start,end] runs, the shape the CLI layer wraps in
// ANSI highlighting.
func PathToSpans(path []int) []MatchSpan {
	if len(path) == 0 {
		return nil
	}
	spans := make([]MatchSpan, 0, len(path))
	start := path[0]
	prev := path[0]
	for _, p := range path[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		spans = append(spans, MatchSpan{Start: start, End: prev})
		start, prev = p, p
	}
	spans = append(spans, MatchSpan{Start: start, End: prev})
	return spans
}

// MergeMatchSpans merges overlapping or touching spans into the minimal
// covering set, preserving ascending order. The CLI's highlighter runs it
// over PathToSpans output before wrapping bytes in color.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
