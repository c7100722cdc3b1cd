package search

import (
	"math"
	"strings"
)

// Scoring weights, fixed by design: a tight word-start prefix should always
// outrank a scattered match.
const (
	baseMatchBonus    = 1.0
	consecutiveBonus  = 2.0
	wordStartBonus    = 4.0
	camelBonus        = 3.0
	gapPenaltyAlpha   = 0.1   // linear gap cost
	gapPenaltyBeta    = 0.5   // log gap cost
	lengthCorrection  = 0.001 // tie-break toward shorter lines
)

// ScoreOptions configures one Scorer invocation. Lo is the order-preservation
// lower bound: the chosen witness for the atom's first character must land
// at a byte offset >= Lo.
type ScoreOptions struct {
	CaseFold      bool
	MaxSymbolDist int // 0 means unbounded
	GapPenalty    GapPenalty
	WordDelims    string
	Lo            int
	AnchorStart   bool // require the first witness at byte offset 0
	AnchorEnd     bool // require the last witness at the line's final rune
}

// ScoreFuzzy finds the highest-scoring order-preserving injection of atomText
// into line as a subsequence and returns its MatchResult with byte-offset
// witnesses. It never panics; an infeasible match returns MatchResult{}.
func ScoreFuzzy(atomText, line string, opts ScoreOptions) MatchResult {
	aRunes, aBuf := acquireRunes(atomText, opts.CaseFold)
	m := len(aRunes)
	if m == 0 {
		releaseRunes(aBuf)
		return accept(0, nil)
	}
	if line == "" {
		releaseRunes(aBuf)
		return reject()
	}

	tRaw, tRawBuf := acquireRunes(line, false)
	var tMatch []rune
	var tMatchBuf *runeBuffer
	if opts.CaseFold {
		tMatch, tMatchBuf = acquireRunes(line, true)
	} else {
		tMatch = tRaw
	}
	defer func() {
		releaseRunes(aBuf)
		releaseRunes(tRawBuf)
		if tMatchBuf != nil {
			releaseRunes(tMatchBuf)
		}
	}()

	n := len(tRaw)
	offsets, offBuf := acquireByteOffsets(line)
	defer releaseByteOffsets(offBuf)

	// opts.Lo is a byte offset (paths are byte offsets); convert to the rune
	// index it corresponds to.
	loByte := opts.Lo
	if loByte < 0 {
		loByte = 0
	}
	lo := 0
	for lo < n && offsets[lo] < loByte {
		lo++
	}
	if lo >= n {
		return reject()
	}

	scratch := acquireDPScratch(m, n)
	defer releaseDPScratch(scratch)

	prev, curr := scratch.prev, scratch.curr
	backtrack := scratch.backtrack
	negInf := math.Inf(-1)
	delims := opts.WordDelims

	maxGap := opts.MaxSymbolDist
	unbounded := maxGap <= 0

	// i = 1: no predecessor, only the lower bound and a direct rune match.
	for j := 0; j < n; j++ {
		if j < lo || aRunes[0] != tMatch[j] {
			curr[j] = negInf
			continue
		}
		if opts.AnchorStart && j != 0 {
			curr[j] = negInf
			continue
		}
		curr[j] = wordBonus(j, -1, tRaw, delims)
	}
	prev, curr = curr, prev

	for i := 2; i <= m; i++ {
		row := (i - 1) * n
		for j := 0; j < n; j++ {
			curr[j] = negInf
			if aRunes[i-1] != tMatch[j] {
				continue
			}
			lowP := 0
			if !unbounded {
				// f(i) - f(i-1) <= maxGap, so a max gap of 1 admits only
				// consecutive witnesses.
				lowP = j - maxGap
				if lowP < 0 {
					lowP = 0
				}
			}
			bestVal := negInf
			bestP := -1
			for p := lowP; p < j; p++ {
				if prev[p] == negInf {
					continue
				}
				gap := j - p - 1
				val := prev[p] + wordBonus(j, p, tRaw, delims) - gapCost(gap, opts.GapPenalty)
				if val > bestVal {
					bestVal = val
					bestP = p
				}
			}
			if bestP >= 0 {
				curr[j] = bestVal
				backtrack[row+j] = int32(bestP)
			}
		}
		prev, curr = curr, prev
	}

	bestJ, bestScore := -1, negInf
	if opts.AnchorEnd {
		if prev[n-1] != negInf {
			bestJ, bestScore = n-1, prev[n-1]
		}
	} else {
		for j := 0; j < n; j++ {
			if prev[j] > bestScore {
				bestScore = prev[j]
				bestJ = j
			}
		}
	}
	if bestJ < 0 {
		return reject()
	}

	total := bestScore - lengthCorrection*float64(n-m)

	runePath := make([]int, m)
	j := bestJ
	for i := m; i >= 1; i-- {
		runePath[i-1] = j
		if i == 1 {
			break
		}
		p := backtrack[(i-1)*n+j]
		j = int(p)
	}

	bytePath := make([]int, m)
	for i, rp := range runePath {
		bytePath[i] = offsets[rp]
	}

	return accept(total, bytePath)
}

func wordBonus(j, prevP int, t []rune, delims string) float64 {
	if j == 0 || strings.ContainsRune(delims, t[j-1]) {
		return wordStartBonus
	}
	if isUpperASCII(t[j]) && isLowerASCII(t[j-1]) {
		return camelBonus
	}
	if prevP >= 0 && j == prevP+1 {
		return consecutiveBonus
	}
	return baseMatchBonus
}

func gapCost(gap int, policy GapPenalty) float64 {
	if gap <= 0 {
		return 0
	}
	if policy == GapPenaltyLog {
		return gapPenaltyBeta * math.Log1p(float64(gap))
	}
	return gapPenaltyAlpha * float64(gap)
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLowerASCII(r rune) bool { return r >= 'a' && r <= 'z' }

// isWordBoundaryByte reports whether offset i in s begins a word, used for
// phrase/exact scoring with the same boundary rule the fuzzy scorer uses.
func isWordBoundaryByte(s string, i int, delims string) bool {
	if i <= 0 {
		return true
	}
	return strings.ContainsRune(delims, rune(s[i-1]))
}
