package raw

import "testing"

func TestEnv(t *testing.T) {
	t.Parallel()

	e := FromMap(map[string]string{
		"LOG_LEVEL":  " info ",
		"LOG_CALLER": "true",
		"LOG_BAD":    "maybe",
		"LOG_BLANK":  "   ",
	}).Prefix("LOG_")

	if e.Key("LEVEL") != "LOG_LEVEL" {
		t.Fatalf("Key = %q", e.Key("LEVEL"))
	}
	if got := e.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q", got)
	}
	if got := e.Get("BLANK", "x"); got != "x" {
		t.Fatalf("blank Get = %q", got)
	}
	if !e.GetBool("CALLER", false) || !e.GetBool("BAD", true) || e.GetBool("MISSING", false) {
		t.Fatalf("GetBool mismatch")
	}
	if _, ok := (Env{}).Lookup("X"); ok {
		t.Fatalf("zero Env resolves nothing")
	}
}

func TestNewReadsProcessEnv(t *testing.T) {
	t.Setenv("RAWTEST_FORMAT", "json")
	if got := New().Prefix("RAWTEST_").Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get = %q", got)
	}
}
