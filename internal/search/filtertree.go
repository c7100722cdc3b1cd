package search

import "strings"

// Evaluate runs the parsed query tree against one line under args and
// returns its combined MatchResult. It is a pure, depth-first fold over the
// tagged-variant Node tree.
func Evaluate(n Node, line string, args SearchArgs) MatchResult {
	return evaluateNode(n, line, args, 0)
}

func evaluateNode(n Node, line string, args SearchArgs, lo int) MatchResult {
	switch n.Kind {
	case NodeAtom:
		return evaluateAtom(n.Atom, line, args, lo)
	case NodeAnd:
		return evaluateAnd(n.Children, line, args)
	case NodeOr:
		return evaluateOr(n.Children, line, args)
	default:
		return reject()
	}
}

func evaluateAtom(a Atom, line string, args SearchArgs, lo int) MatchResult {
	res := evaluateAtomCore(a, line, args, lo)
	if a.Negated {
		if res.Matched {
			return reject()
		}
		return accept(0, nil)
	}
	return res
}

func evaluateAtomCore(a Atom, line string, args SearchArgs, lo int) MatchResult {
	switch {
	case a.Phrase:
		return evaluatePhrase(a, line, args)
	case a.Exact:
		return evaluateExact(a, line, args)
	default:
		return evaluateFuzzyAtom(a, line, args, lo)
	}
}

func evaluateFuzzyAtom(a Atom, line string, args SearchArgs, lo int) MatchResult {
	return ScoreFuzzy(a.Text, line, ScoreOptions{
		CaseFold:      !a.CaseSensitive,
		MaxSymbolDist: args.MaxSymbolDist,
		GapPenalty:    args.GapPenalty,
		WordDelims:    args.WordDelims,
		Lo:            lo,
		AnchorStart:   a.AnchorPrefix,
		AnchorEnd:     a.AnchorSuffix,
	})
}

func evaluatePhrase(a Atom, line string, args SearchArgs) MatchResult {
	if a.Text == "" {
		return accept(0, nil)
	}
	idx := indexFold(line, a.Text, !a.CaseSensitive)
	if idx < 0 {
		return reject()
	}
	n := len([]byte(a.Text))
	return accept(contiguousScore(line, idx, n, args.WordDelims), contiguousPath(idx, n))
}

func evaluateExact(a Atom, line string, args SearchArgs) MatchResult {
	fold := !a.CaseSensitive
	body := a.Text
	switch {
	case a.AnchorPrefix && a.AnchorSuffix, !a.AnchorPrefix && !a.AnchorSuffix:
		if !equalsFold(line, body, fold) {
			return reject()
		}
		return accept(exactScore(line, 0, len(body), args.WordDelims), contiguousPath(0, len(body)))
	case a.AnchorPrefix:
		if !hasPrefixFold(line, body, fold) {
			return reject()
		}
		return accept(exactScore(line, 0, len(body), args.WordDelims), contiguousPath(0, len(body)))
	default: // AnchorSuffix only
		if !hasSuffixFold(line, body, fold) {
			return reject()
		}
		start := len(line) - len(body)
		return accept(exactScore(line, start, len(body), args.WordDelims), contiguousPath(start, len(body)))
	}
}

func evaluateAnd(children []Node, line string, args SearchArgs) MatchResult {
	lo := 0
	totalScore := 0.0
	var mergedPath []int

	for _, child := range children {
		var res MatchResult
		if args.PreserveOrder && isPlainFuzzyAtom(child) {
			res = evaluateNode(child, line, args, lo)
		} else {
			res = evaluateNode(child, line, args, 0)
		}
		if !res.Matched {
			return reject()
		}
		totalScore += res.Score
		mergedPath = mergeSortedUnique(mergedPath, res.Path)
		if args.PreserveOrder && len(res.Path) > 0 {
			lo = res.Path[len(res.Path)-1] + 1
		}
	}
	return accept(totalScore, mergedPath)
}

func isPlainFuzzyAtom(n Node) bool {
	return n.Kind == NodeAtom && !n.Atom.Phrase && !n.Atom.Exact && !n.Atom.Negated
}

// evaluateOr accepts iff any child accepts; the result is the accepting
// child with the maximum score, ties broken by AST order. OR never
// propagates a preserve-order lower bound: its children are alternatives,
// not a sequence, so each starts fresh.
func evaluateOr(children []Node, line string, args SearchArgs) MatchResult {
	best := reject()
	for _, child := range children {
		res := evaluateNode(child, line, args, 0)
		if !res.Matched {
			continue
		}
		if !best.Matched || res.Score > best.Score {
			best = res
		}
	}
	return best
}

func mergeSortedUnique(a, b []int) []int {
	if len(a) == 0 {
		return append([]int(nil), b...)
	}
	if len(b) == 0 {
		return append([]int(nil), a...)
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func contiguousPath(start, n int) []int {
	if n == 0 {
		return nil
	}
	path := make([]int, n)
	for i := 0; i < n; i++ {
		path[i] = start + i
	}
	return path
}

// contiguousScore is the phrase scoring rule: the word-start bonus applies
// only if the occurrence begins at a word boundary, every further byte
// contributes a plain base-match bonus.
func contiguousScore(line string, start, n int, delims string) float64 {
	if n == 0 {
		return 0
	}
	score := 0.0
	if isWordBoundaryByte(line, start, delims) {
		score += wordStartBonus
	}
	score += baseMatchBonus * float64(n-1)
	return score
}

// exactScore is the exact-atom scoring rule: the sum of base bonuses over
// each matched position, the same per-character rule ScoreFuzzy applies to
// fuzzy witnesses. A consecutive run inside the body earns the consecutive
// bonus and a camelCase transition the camel bonus, unlike the flat phrase
// formula.
func exactScore(line string, start, n int, delims string) float64 {
	if n == 0 {
		return 0
	}
	score := 0.0
	prev := -1
	for i := 0; i < n; i++ {
		pos := start + i
		score += wordBonusByte(line, pos, prev, delims)
		prev = pos
	}
	return score
}

// wordBonusByte mirrors the Scorer's wordBonus (scorer.go) but operates on
// raw bytes rather than a decoded []rune, matching the byte-offset world
// the exact/phrase evaluators already work in.
func wordBonusByte(line string, pos, prevPos int, delims string) float64 {
	if pos == 0 || strings.ContainsRune(delims, rune(line[pos-1])) {
		return wordStartBonus
	}
	if isUpperASCII(rune(line[pos])) && isLowerASCII(rune(line[pos-1])) {
		return camelBonus
	}
	if prevPos >= 0 && pos == prevPos+1 {
		return consecutiveBonus
	}
	return baseMatchBonus
}

func asciiFold(s string) string {
	b := []byte(s)
	changed := false
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

func equalsFold(line, body string, fold bool) bool {
	if fold {
		return asciiFold(line) == asciiFold(body)
	}
	return line == body
}

func hasPrefixFold(line, body string, fold bool) bool {
	if fold {
		return strings.HasPrefix(asciiFold(line), asciiFold(body))
	}
	return strings.HasPrefix(line, body)
}

func hasSuffixFold(line, body string, fold bool) bool {
	if fold {
		return strings.HasSuffix(asciiFold(line), asciiFold(body))
	}
	return strings.HasSuffix(line, body)
}

func indexFold(line, body string, fold bool) int {
	if fold {
		return strings.Index(asciiFold(line), asciiFold(body))
	}
	return strings.Index(line, body)
}
