package search

import "testing"

func TestScoreFuzzyRanking(t *testing.T) {
	lines := []string{"axbxc", "abcx", "zzz", "aabbcc"}
	opts := ScoreOptions{CaseFold: true, GapPenalty: GapPenaltyLinear, WordDelims: ":;,./-_ \t"}

	scores := make(map[string]float64)
	for _, l := range lines {
		res := ScoreFuzzy("abc", l, opts)
		if l == "zzz" {
			if res.Matched {
				t.Fatalf("expected zzz to reject, got %+v", res)
			}
			continue
		}
		if !res.Matched {
			t.Fatalf("expected %q to match", l)
		}
		scores[l] = res.Score
	}

	if !(scores["abcx"] > scores["axbxc"] && scores["axbxc"] > scores["aabbcc"]) {
		t.Fatalf("unexpected ranking: %+v", scores)
	}
}

func TestScoreFuzzyRejectsEmptyLine(t *testing.T) {
	res := ScoreFuzzy("abc", "", ScoreOptions{})
	if res.Matched {
		t.Fatalf("expected reject on empty line")
	}
}

func TestScoreFuzzyEmptyAtomAccepts(t *testing.T) {
	res := ScoreFuzzy("", "anything", ScoreOptions{})
	if !res.Matched || res.Score != 0 || len(res.Path) != 0 {
		t.Fatalf("expected (0,[]) for empty atom, got %+v", res)
	}
}

func TestScoreFuzzyMaxSymbolGap(t *testing.T) {
	res := ScoreFuzzy("ab", "a-b", ScoreOptions{MaxSymbolDist: 1})
	if res.Matched {
		t.Fatalf("max_symbol_dist=1 must force consecutive witnesses, got %+v", res)
	}
	res = ScoreFuzzy("ab", "ab", ScoreOptions{MaxSymbolDist: 1})
	if !res.Matched {
		t.Fatalf("expected consecutive witnesses to pass max_symbol_dist=1")
	}
	res = ScoreFuzzy("ab", "a-b", ScoreOptions{MaxSymbolDist: 2})
	if !res.Matched {
		t.Fatalf("expected a witness distance of 2 to pass max_symbol_dist=2")
	}
}

func TestScoreFuzzyPathAscending(t *testing.T) {
	res := ScoreFuzzy("abc", "zzzaaazzzbbbzzzccc", ScoreOptions{})
	if !res.Matched {
		t.Fatalf("expected match")
	}
	for i := 1; i < len(res.Path); i++ {
		if res.Path[i] <= res.Path[i-1] {
			t.Fatalf("path not strictly ascending: %v", res.Path)
		}
	}
}

func TestScoreFuzzyPreserveOrderLowerBound(t *testing.T) {
	base := ScoreFuzzy("ab", "xaybz", ScoreOptions{})
	if !base.Matched {
		t.Fatalf("expected base match")
	}
	lo := base.Path[len(base.Path)-1] + 1
	constrained := ScoreFuzzy("ab", "xaybz", ScoreOptions{Lo: lo})
	if constrained.Matched && constrained.Score > base.Score {
		t.Fatalf("preserve_order constraint should never raise the score")
	}
}

func TestScoreFuzzyAnchors(t *testing.T) {
	if !ScoreFuzzy("foo", "foobar", ScoreOptions{AnchorStart: true}).Matched {
		t.Fatalf("expected foo to match at start of foobar")
	}
	if ScoreFuzzy("foo", "barfoo", ScoreOptions{AnchorStart: true}).Matched {
		t.Fatalf("expected anchor_prefix to reject barfoo")
	}
	if !ScoreFuzzy("foo", "barfoo", ScoreOptions{AnchorEnd: true}).Matched {
		t.Fatalf("expected anchor_suffix to accept barfoo")
	}
}
