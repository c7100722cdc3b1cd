package cli

import (
	"testing"

	"github.com/kk-code-lab/fzline/internal/search"
)

func TestParseArgsFlagTable(t *testing.T) {
	o, err := ParseArgs([]string{
		"-k", "5", "-p", "-o", "--batch-size", "50", "-s", "3", "-g", "log",
		"-d", " ", "-C", "-S", "-c", "-l", "-t", "abc", "one.txt", "two.txt",
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if o.TopK != 5 || !o.Parallel || !o.PreserveOrder || o.BatchSize != 50 {
		t.Fatalf("unexpected options: %+v", o)
	}
	if o.MaxSymbolGap != 3 || o.GapPenalty != "log" || o.WordDelims != " " {
		t.Fatalf("unexpected scoring options: %+v", o)
	}
	if !o.NoColor || !o.NoScore || !o.NoCount || !o.NoLine || !o.TrimEmptyName {
		t.Fatalf("unexpected presentation flags: %+v", o)
	}
	if o.Query != "abc" {
		t.Fatalf("query = %q, want abc", o.Query)
	}
	if len(o.Files) != 2 || o.Files[0] != "one.txt" || o.Files[1] != "two.txt" {
		t.Fatalf("files = %v", o.Files)
	}
}

func TestParseArgsMissingQuery(t *testing.T) {
	_, err := ParseArgs(nil)
	if err == nil {
		t.Fatalf("expected missing-query error")
	}
	if _, ok := err.(*ArgumentError); !ok {
		t.Fatalf("expected *ArgumentError, got %T", err)
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"--definitely-not-a-flag", "abc"})
	if err == nil {
		t.Fatalf("expected unknown-flag error")
	}
	if _, ok := err.(*ArgumentError); !ok {
		t.Fatalf("expected *ArgumentError, got %T", err)
	}
}

func TestToSearchArgsRejectsBadGapPenalty(t *testing.T) {
	o := Options{Query: "abc", GapPenalty: "cubic", TopK: 10, BatchSize: 1}
	if _, err := o.ToSearchArgs(); err == nil {
		t.Fatalf("expected invalid gap-penalty error")
	}
}

func TestToSearchArgsCaseResolution(t *testing.T) {
	cases := []struct {
		name             string
		ignore, noIgnore bool
		wantIgnore       bool
		wantSmart        bool
	}{
		{"default smart-case", false, false, true, true},
		{"-i forces insensitive", true, false, true, false},
		{"-I forces sensitive", false, true, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Options{Query: "abc", IgnoreCase: tc.ignore, NoIgnoreCase: tc.noIgnore, TopK: 10, BatchSize: 1}
			args, err := o.ToSearchArgs()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if args.IgnoreCase != tc.wantIgnore || args.SmartCase != tc.wantSmart {
				t.Fatalf("got ignore=%v smart=%v, want %v/%v",
					args.IgnoreCase, args.SmartCase, tc.wantIgnore, tc.wantSmart)
			}
		})
	}
}

func TestToSearchArgsUnboundedGap(t *testing.T) {
	o := Options{Query: "abc", MaxSymbolGap: -1, TopK: 10, BatchSize: 1}
	args, err := o.ToSearchArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.MaxSymbolDist != search.Unbounded {
		t.Fatalf("N<=0 should map to the unbounded sentinel, got %d", args.MaxSymbolDist)
	}
}
