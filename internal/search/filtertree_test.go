package search

import "testing"

func defaultArgs(query string) SearchArgs {
	return SearchArgs{
		Query:      query,
		IgnoreCase: true,
		GapPenalty: GapPenaltyLinear,
		WordDelims: ":;,./-_ \t",
	}.Normalize()
}

func mustParse(t *testing.T, args SearchArgs) Node {
	t.Helper()
	n, err := Parse(args.Query, args.IgnoreCase, args.SmartCase)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return n
}

func TestAnchorPrefixScenario(t *testing.T) {
	args := defaultArgs("^foo")
	n := mustParse(t, args)

	cases := map[string]bool{"foobar": true, "barfoo": false, "fooo": true}
	for line, want := range cases {
		got := Evaluate(n, line, args).Matched
		if got != want {
			t.Errorf("%q: got matched=%v want %v", line, got, want)
		}
	}
}

func TestPhraseScenario(t *testing.T) {
	args := defaultArgs(`"hello world"`)
	n := mustParse(t, args)

	cases := map[string]bool{
		"hello world!": true,
		"hello  world": false,
		"world hello":  false,
	}
	for line, want := range cases {
		got := Evaluate(n, line, args).Matched
		if got != want {
			t.Errorf("%q: got matched=%v want %v", line, got, want)
		}
	}
}

func TestOrScenario(t *testing.T) {
	args := defaultArgs("foo|bar")
	n := mustParse(t, args)

	for _, line := range []string{"foo", "bar", "foobar"} {
		if !Evaluate(n, line, args).Matched {
			t.Errorf("%q: expected match", line)
		}
	}
	if Evaluate(n, "baz", args).Matched {
		t.Errorf("baz: expected reject")
	}

	foobar := Evaluate(n, "foobar", args)
	foo := Evaluate(mustParse(t, defaultArgs("foo")), "foobar", args)
	bar := Evaluate(mustParse(t, defaultArgs("bar")), "foobar", args)
	want := foo.Score
	if bar.Score > want {
		want = bar.Score
	}
	if foobar.Score != want {
		t.Errorf("foobar score %v, want max(foo,bar)=%v", foobar.Score, want)
	}
}

func TestPreserveOrderScenario(t *testing.T) {
	args := defaultArgs("ab cd")
	args.PreserveOrder = true
	n := mustParse(t, args)

	cases := map[string]bool{"abcd": true, "cdab": false, "a_b_c_d": true}
	for line, want := range cases {
		got := Evaluate(n, line, args).Matched
		if got != want {
			t.Errorf("%q: got matched=%v want %v", line, got, want)
		}
	}
}

func TestDoubleNegationIsIdentity(t *testing.T) {
	args := defaultArgs("!!cat")
	n := mustParse(t, args)
	plain := mustParse(t, defaultArgs("cat"))

	for _, line := range []string{"cat", "dog", "concatenate"} {
		a := Evaluate(n, line, args)
		b := Evaluate(plain, line, args)
		if a.Matched != b.Matched {
			t.Errorf("%q: !!atom matched=%v, atom matched=%v", line, a.Matched, b.Matched)
		}
		if a.Matched && a.Score != b.Score {
			t.Errorf("%q: !!atom score %v != atom score %v", line, a.Score, b.Score)
		}
	}
}

func TestEmptyAtomAcceptsEverythingWithZeroScore(t *testing.T) {
	args := defaultArgs("")
	n := Node{Kind: NodeAtom, Atom: Atom{Fuzzy: true, Text: ""}}
	res := Evaluate(n, "anything at all", args)
	if !res.Matched || res.Score != 0 {
		t.Fatalf("expected (0,[]) for empty atom, got %+v", res)
	}
}
