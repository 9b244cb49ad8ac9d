// Package textclean prepares transcript text for storage.
// Pipeline order
// 1 drop invalid UTF-8, NUL, C0 controls other than tab and newlines, DEL, C1 controls
// 2 Unicode NFC composition
// 3 remove format chars (zero-width space, joiners, BOM)
// 4 fold horizontal whitespace runs to one space, keep line breaks, trim edges
//
// Case and punctuation are never touched; the learner needs the user's surface text.
package textclean

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chains are stateful, so each caller borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Clean runs the full pipeline over s
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = StripControls(s)

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}

	return foldSpaces(out)
}

// StripControls removes bytes we never want in a transcript: invalid UTF-8,
// ASCII controls other than '\t' '\n' '\r', DEL and C1 controls.
// It returns s unchanged when nothing needs removing.
func StripControls(s string) string {
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if dropRune(r, size) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !dropRune(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func dropRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return true
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// foldSpaces collapses each whitespace run to a single space, or to a single
// newline when the run contained one, and trims the result
func foldSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := rune(0)
	for _, r := range s {
		if unicode.IsSpace(r) {
			if r == '\n' || r == '\r' {
				pending = '\n'
			} else if pending == 0 {
				pending = ' '
			}
			continue
		}
		if pending != 0 && b.Len() > 0 {
			b.WriteRune(pending)
		}
		pending = 0
		b.WriteRune(r)
	}
	return b.String()
}
