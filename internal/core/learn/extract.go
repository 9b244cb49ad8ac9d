package learn

import (
	"strings"

	"scribe/internal/core/align"
	"scribe/internal/core/tokenize"
)

// Extract compares the raw transcript with the user's edited text and returns
// the corrections the edit implies, in left-to-right order.
//
// Regions between consecutive aligned tokens are examined. A region empty on
// either side is a pure insertion or deletion and yields nothing. Regions of
// equal length are compared word by word; other regions become one phrase
// correction built from the space-joined surface tokens. A side made only of
// punctuation never yields a correction.
func Extract(raw, edited string) []Emitted {
	if strings.TrimSpace(raw) == strings.TrimSpace(edited) {
		return nil
	}

	a := tokenize.Tokens(raw)
	b := tokenize.Tokens(edited)
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	pairs := align.LCS(tokenize.Norms(a), tokenize.Norms(b))

	// sentinels bracket the match list so the leading and trailing
	// regions are handled like any other gap
	anchors := make([]align.Pair, 0, len(pairs)+2)
	anchors = append(anchors, align.Pair{A: -1, B: -1})
	anchors = append(anchors, pairs...)
	anchors = append(anchors, align.Pair{A: len(a), B: len(b)})

	var out []Emitted
	for k := 1; k < len(anchors); k++ {
		prev, next := anchors[k-1], anchors[k]
		ra := a[prev.A+1 : next.A]
		rb := b[prev.B+1 : next.B]
		if len(ra) == 0 || len(rb) == 0 {
			continue
		}
		if len(ra) == len(rb) {
			out = appendWords(out, ra, rb)
			continue
		}
		if e, ok := phrase(ra, rb); ok {
			out = append(out, e)
		}
	}
	return out
}

func appendWords(out []Emitted, ra, rb []tokenize.Token) []Emitted {
	for i := range ra {
		orig := tokenize.StripEdgePunctuation(ra[i].Surface)
		corr := tokenize.StripEdgePunctuation(rb[i].Surface)
		if orig == "" || corr == "" || strings.EqualFold(orig, corr) {
			continue
		}
		if tokenize.Normalize(orig) == tokenize.Normalize(corr) {
			continue
		}
		out = append(out, Emitted{Original: orig, Corrected: corr, Kind: KindWord})
	}
	return out
}

func phrase(ra, rb []tokenize.Token) (Emitted, bool) {
	orig := strings.Join(tokenize.Surfaces(ra), " ")
	corr := strings.Join(tokenize.Surfaces(rb), " ")
	no, nc := tokenize.NormalizeText(orig), tokenize.NormalizeText(corr)
	if no == "" || nc == "" || no == nc {
		return Emitted{}, false
	}
	return Emitted{Original: orig, Corrected: corr, Kind: KindPhrase}, true
}
