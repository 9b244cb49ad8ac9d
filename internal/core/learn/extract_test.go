package learn

import (
	"reflect"
	"testing"

	"scribe/internal/core/tokenize"
)

func TestExtract_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		edited string
		want   []Emitted
	}{
		{name: "identical", raw: "hello world", edited: "hello world", want: nil},
		{name: "identical after trim", raw: "  hello world\n", edited: "hello world", want: nil},
		{name: "case only", raw: "hello world", edited: "Hello World", want: nil},
		{name: "punctuation only", raw: "hello world", edited: "hello, world.", want: nil},
		{name: "empty raw", raw: "", edited: "something", want: nil},
		{name: "empty edit", raw: "something", edited: "   ", want: nil},
		{
			name:   "single substitution",
			raw:    "meet me at the pub",
			edited: "meet me at the office",
			want:   []Emitted{{Original: "pub", Corrected: "office", Kind: KindWord}},
		},
		{
			name:   "substitution keeps surface case without edge punctuation",
			raw:    "Send it to Jon.",
			edited: "Send it to John.",
			want:   []Emitted{{Original: "Jon", Corrected: "John", Kind: KindWord}},
		},
		{
			name:   "phrase replacement",
			raw:    "let us go",
			edited: "let's go",
			want:   []Emitted{{Original: "let us", Corrected: "let's", Kind: KindPhrase}},
		},
		{
			name:   "pure insertion ignored",
			raw:    "i went home",
			edited: "i quickly went home",
			want:   nil,
		},
		{
			name:   "pure deletion ignored",
			raw:    "i um went home",
			edited: "i went home",
			want:   nil,
		},
		{
			name:   "two word substitutions in one region",
			raw:    "call bob smyth now",
			edited: "call rob smith now",
			want: []Emitted{
				{Original: "bob", Corrected: "rob", Kind: KindWord},
				{Original: "smyth", Corrected: "smith", Kind: KindWord},
			},
		},
		{
			name:   "leading and interior regions",
			raw:    "teh cat sat on teh mat",
			edited: "the cat sat on the mat",
			want: []Emitted{
				{Original: "teh", Corrected: "the", Kind: KindWord},
				{Original: "teh", Corrected: "the", Kind: KindWord},
			},
		},
		{
			name:   "phrase expansion",
			raw:    "see you at nyc tomorrow",
			edited: "see you at New York City tomorrow",
			want:   []Emitted{{Original: "nyc", Corrected: "New York City", Kind: KindPhrase}},
		},
		{
			name:   "punctuation token replaced by words",
			raw:    "yes , sir",
			edited: "yes indeed my sir",
			want:   nil,
		},
		{
			name:   "ellipsis replaced by words",
			raw:    "wait ... then go",
			edited: "wait and then then go",
			want:   nil,
		},
		{
			name:   "words replaced by punctuation",
			raw:    "stop um er now",
			edited: "stop ... now",
			want:   nil,
		},
		{
			name:   "everything replaced",
			raw:    "alpha beta",
			edited: "gamma",
			want:   []Emitted{{Original: "alpha beta", Corrected: "gamma", Kind: KindPhrase}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.raw, tc.edited)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract(%q, %q)\n got: %#v\nwant: %#v", tc.raw, tc.edited, got, tc.want)
			}
		})
	}
}

func TestExtract_EmittedInvariants(t *testing.T) {
	t.Parallel()

	edits := [][2]string{
		{"the quick brown fox", "a quick red fox jumps"},
		{"Hello, my name is Jon.", "Hello, my name's John!"},
		{"one two three four five", "five four three two one"},
		{"  gonna wanna  ", "going to want to"},
		{"hold on ... yes , sir", "hold on and yes indeed my sir"},
	}
	for _, e := range edits {
		for _, c := range Extract(e[0], e[1]) {
			if tokenize.NormalizeText(c.Original) == "" || tokenize.NormalizeText(c.Corrected) == "" {
				t.Fatalf("empty side in %#v from %q", c, e)
			}
			if c.Kind != KindWord && c.Kind != KindPhrase {
				t.Fatalf("bad kind %q", c.Kind)
			}
		}
	}
}
