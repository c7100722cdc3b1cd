package search

import "sync"

// runeBuffer holds a reusable []rune scratch slice so the hot matching loop
// never allocates for rune decomposition.
type runeBuffer struct {
	runes []rune
}

var runeBufferPool = sync.Pool{
	New: func() any { return &runeBuffer{runes: make([]rune, 0, 128)} },
}

// acquireRunes returns the rune decomposition of s, case-folded under ASCII
// rules when fold is true, backed by a pooled buffer. Release with
// releaseRunes.
func acquireRunes(s string, fold bool) ([]rune, *runeBuffer) {
	buf := runeBufferPool.Get().(*runeBuffer)
	if cap(buf.runes) < len(s) {
		buf.runes = make([]rune, 0, len(s))
	}
	buf.runes = buf.runes[:0]

	if fold && isASCII(s) {
		for i := 0; i < len(s); i++ {
			buf.runes = append(buf.runes, rune(lowerASCIIByte(s[i])))
		}
		return buf.runes, buf
	}

	for _, r := range s {
		if fold {
			r = lowerASCIIRune(r)
		}
		buf.runes = append(buf.runes, r)
	}
	return buf.runes, buf
}

func releaseRunes(buf *runeBuffer) {
	if buf == nil {
		return
	}
	buf.runes = buf.runes[:0]
	runeBufferPool.Put(buf)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func lowerASCIIByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func lowerASCIIRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// offsetBuffer pools the rune-index -> byte-offset map built once per line
// so the Scorer can report true byte offsets without allocating per atom.
type offsetBuffer struct {
	offsets []int
}

var offsetBufferPool = sync.Pool{
	New: func() any { return &offsetBuffer{offsets: make([]int, 0, 128)} },
}

// acquireByteOffsets returns, for text, a slice of length runeCount(text)+1
// where element i is the byte offset of rune i (and the last element is
// len(text)).
func acquireByteOffsets(text string) ([]int, *offsetBuffer) {
	buf := offsetBufferPool.Get().(*offsetBuffer)
	buf.offsets = buf.offsets[:0]
	for i := range text {
		buf.offsets = append(buf.offsets, i)
	}
	buf.offsets = append(buf.offsets, len(text))
	return buf.offsets, buf
}

func releaseByteOffsets(buf *offsetBuffer) {
	if buf == nil {
		return
	}
	buf.offsets = buf.offsets[:0]
	offsetBufferPool.Put(buf)
}

// dpScratch holds the rolling DP rows and backtracking arrays the Scorer
// reuses across calls, grown on demand to the largest (m, n) seen so far
// instead of reallocated every call.
type dpScratch struct {
	prev, curr []float64
	backtrack  []int32
}

var dpScratchPool = sync.Pool{
	New: func() any { return &dpScratch{} },
}

func acquireDPScratch(rows, cols int) *dpScratch {
	s := dpScratchPool.Get().(*dpScratch)
	need := rows * cols
	if cap(s.backtrack) < need {
		s.backtrack = make([]int32, need)
	}
	s.backtrack = s.backtrack[:need]
	if cap(s.prev) < cols {
		s.prev = make([]float64, cols)
		s.curr = make([]float64, cols)
	}
	s.prev = s.prev[:cols]
	s.curr = s.curr[:cols]
	return s
}

func releaseDPScratch(s *dpScratch) {
	if s == nil {
		return
	}
	dpScratchPool.Put(s)
}

// resultBufferPool pools []ScoredLine slices used by the batch scanner to
// merge per-worker results without allocating per batch.
var resultBufferPool = sync.Pool{
	New: func() any {
		buf := make([]ScoredLine, 0, 256)
		return &buf
	},
}

func borrowScoredLineBuffer(sizeHint int) []ScoredLine {
	if sizeHint <= 0 {
		sizeHint = 256
	}
	if v := resultBufferPool.Get(); v != nil {
		bufPtr := v.(*[]ScoredLine)
		buf := *bufPtr
		if cap(buf) < sizeHint {
			return make([]ScoredLine, 0, sizeHint)
		}
		return buf[:0]
	}
	return make([]ScoredLine, 0, sizeHint)
}

func releaseScoredLineBuffer(buf []ScoredLine) {
	if buf == nil {
		return
	}
	if cap(buf) > 1<<18 {
		return
	}
	buf = buf[:0]
	resultBufferPool.Put(&buf)
}
