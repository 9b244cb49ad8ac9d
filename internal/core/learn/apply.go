package learn

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"scribe/internal/core/tokenize"
)

// DefaultMinCount is the number of observations before a correction is applied
const DefaultMinCount = 2

// Eligible returns the rules Apply would use at minCount, longest original
// first. Ties keep their input order. The second value counts rules dropped
// for a blank corrected side or an original that is punctuation only.
func Eligible(rules []Rule, minCount int) ([]Rule, int) {
	live := lo.Filter(rules, func(r Rule, _ int) bool {
		return !r.Disabled && r.Count >= minCount
	})
	ok := lo.Filter(live, func(r Rule, _ int) bool {
		return tokenize.NormalizeText(r.Original) != "" && strings.TrimSpace(r.Corrected) != ""
	})
	slices.SortStableFunc(ok, func(x, y Rule) int {
		return len(y.Original) - len(x.Original)
	})
	return ok, len(live) - len(ok)
}

// Apply rewrites text with every eligible rule. Matching is case-insensitive
// and both ends of a match must sit on a word boundary. Rules run one after
// another over the running result, longest original first.
func Apply(text string, rules []Rule, minCount int) Result {
	res := Result{Text: text}
	if text == "" || len(rules) == 0 {
		return res
	}

	eligible, skipped := Eligible(rules, minCount)
	res.Skipped = skipped
	for _, r := range eligible {
		out, n := ReplaceWord(res.Text, r.Original, r.Corrected)
		if n == 0 {
			continue
		}
		res.Text = out
		res.Applied = append(res.Applied, Hit{Original: r.Original, Corrected: r.Corrected, Count: n})
	}
	return res
}

// ReplaceWord replaces every word-bounded, case-insensitive occurrence of old
// in s with repl and reports how many were replaced. A single space in old
// matches any run of whitespace in s. Replaced text is not rescanned.
func ReplaceWord(s, old, repl string) (string, int) {
	old = strings.Join(strings.Fields(old), " ")
	if s == "" || old == "" {
		return s, 0
	}

	var b strings.Builder
	n, last, i := 0, 0, 0
	for i < len(s) {
		if boundary(s, i) {
			if j, ok := matchFold(s, i, old); ok && boundary(s, j) {
				if n == 0 {
					b.Grow(len(s))
				}
				b.WriteString(s[last:i])
				b.WriteString(repl)
				n++
				last, i = j, j
				continue
			}
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
	}
	if n == 0 {
		return s, 0
	}
	b.WriteString(s[last:])
	return b.String(), n
}

// boundary reports whether byte offset p of s is a word boundary: the string
// start or end, or a change between word and non-word runes
func boundary(s string, p int) bool {
	if p == 0 || p == len(s) {
		return true
	}
	before, _ := utf8.DecodeLastRuneInString(s[:p])
	after, _ := utf8.DecodeRuneInString(s[p:])
	return tokenize.IsWord(before) != tokenize.IsWord(after)
}

// matchFold reports whether pat matches s at byte offset i under simple case
// folding and returns the end offset of the match
func matchFold(s string, i int, pat string) (int, bool) {
	for _, pr := range pat {
		if i >= len(s) {
			return 0, false
		}
		sr, sz := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(pr) {
			if !unicode.IsSpace(sr) {
				return 0, false
			}
			for i < len(s) {
				sr, sz = utf8.DecodeRuneInString(s[i:])
				if !unicode.IsSpace(sr) {
					break
				}
				i += sz
			}
			continue
		}
		if !foldEq(sr, pr) {
			return 0, false
		}
		i += sz
	}
	return i, true
}

func foldEq(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
