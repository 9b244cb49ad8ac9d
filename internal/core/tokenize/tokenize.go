// Package tokenize splits transcript text into whitespace tokens and derives
// the comparison forms used by the aligner and the applier.
//
// A token is a maximal run of non-whitespace. Punctuation stays attached to
// the surface form; the normalized form drops it and lower-cases the rest.
package tokenize

import (
	"strings"
	"unicode"
)

// punct is the punctuation class ignored when comparing tokens
const punct = `.,!?;:'"`

// Token is one whitespace-delimited unit with its comparison form
type Token struct {
	Surface string
	Norm    string
}

// Tokenize trims s and splits it on whitespace runs. Empty input yields nil
func Tokenize(s string) []string {
	out := strings.FieldsFunc(s, unicode.IsSpace)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Tokens is Tokenize with the normalized form attached to every token
func Tokens(s string) []Token {
	raw := Tokenize(s)
	if len(raw) == 0 {
		return nil
	}
	out := make([]Token, len(raw))
	for i, w := range raw {
		out[i] = Token{Surface: w, Norm: Normalize(w)}
	}
	return out
}

// Norms returns the normalized forms of toks in order
func Norms(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Norm
	}
	return out
}

// Surfaces returns the surface forms of toks in order
func Surfaces(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Surface
	}
	return out
}

// Normalize lower-cases tok and removes every punctuation rune of the class.
// The result may be empty when tok is punctuation only
func Normalize(tok string) string {
	if tok == "" {
		return ""
	}
	tok = strings.ToLower(tok)
	if !strings.ContainsAny(tok, punct) {
		return tok
	}
	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		if IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripEdgePunctuation removes punctuation runs from both ends of tok.
// Interior punctuation is kept, so "let's" survives intact
func StripEdgePunctuation(tok string) string {
	return strings.Trim(tok, punct)
}

// NormalizeText normalizes every token of s and joins them with single spaces
func NormalizeText(s string) string {
	toks := Tokenize(s)
	for i, t := range toks {
		toks[i] = Normalize(t)
	}
	return strings.Join(toks, " ")
}

// IsPunct reports whether r belongs to the ignored punctuation class
func IsPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '\'', '"':
		return true
	}
	return false
}

// IsWord reports whether r is a word character for boundary checks.
// Only ASCII letters, digits and underscore count; apostrophes and hyphens do not
func IsWord(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}
