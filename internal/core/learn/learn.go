// Package learn turns user edits into correction pairs and replays learned
// corrections over fresh transcripts.
//
// Both halves are pure: no I/O, no errors, no shared state. Persistence and
// thresholds live in the services that call them.
package learn

// Kind says whether a correction came from a word-level or a phrase-level region
type Kind string

const (
	KindWord   Kind = "word"
	KindPhrase Kind = "phrase"
)

// Emitted is one correction observed in a single edit, before it is stored
type Emitted struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Kind      Kind   `json:"kind"`
}

// Rule is a stored correction as seen by the applier
type Rule struct {
	Original  string
	Corrected string
	Count     int
	Disabled  bool
}

// Hit records how many times one rule rewrote the text
type Hit struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Count     int    `json:"count"`
}

// Result is the outcome of one Apply call
type Result struct {
	Text    string `json:"text"`
	Applied []Hit  `json:"applied,omitempty"`
	// Skipped counts eligible rules dropped for a blank or punctuation-only side
	Skipped int `json:"skipped,omitempty"`
}
