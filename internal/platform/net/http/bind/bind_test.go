package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "scribe/internal/platform/errors"
)

type createBody struct {
	Title    string `json:"title,omitempty" validate:"omitempty,notblank,max=10"`
	RawText  string `json:"raw_text" validate:"required"`
	MinCount int    `json:"min_count,omitempty" validate:"omitempty,min=1"`
	Internal int    `json:"-" validate:"max=5"`
	Plain    int    `validate:"max=5"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/transcripts", strings.NewReader(body))
}

func fieldOf(t *testing.T, err error) (perr.Code, string, string) {
	t.Helper()
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("uncoded error %v", err)
	}
	return e.Code(), e.Field(), e.Message()
}

func TestParseJSON_OK(t *testing.T) {
	t.Parallel()

	in, err := ParseJSON[createBody](post(`{"title":"notes","raw_text":"meet me at the pub","min_count":2}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if in.Title != "notes" || in.RawText != "meet me at the pub" || in.MinCount != 2 {
		t.Fatalf("in = %+v", in)
	}
}

func TestParseJSON_BadJSON(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":    ``,
		"syntax":   `{"raw_text":`,
		"unknown":  `{"raw_text":"x","speaker":"bob"}`,
		"trailing": `{"raw_text":"x"} {"raw_text":"y"}`,
		"type":     `{"raw_text":42}`,
	}
	for name, body := range cases {
		if _, err := ParseJSON[createBody](post(body)); !perr.IsCode(err, perr.CodeBadJSON) {
			t.Fatalf("%s: err = %v, want bad json", name, err)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/transcripts", nil)
	if _, err := ParseJSON[createBody](r); !perr.IsCode(err, perr.CodeBadJSON) {
		t.Fatalf("nil body err = %v", err)
	}
}

func TestParseJSON_TooLarge(t *testing.T) {
	t.Parallel()

	big := `{"raw_text":"` + strings.Repeat("a", MaxBody) + `"}`
	if _, err := ParseJSON[createBody](post(big)); !perr.IsCode(err, perr.CodeBadJSON) {
		t.Fatalf("err = %v, want bad json for oversized body", err)
	}
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    createBody
		field string
		msg   string
	}{
		{createBody{}, "raw_text", "raw_text is a required field"},
		{createBody{RawText: "x", Title: "   "}, "title", "title must not be blank"},
		{createBody{RawText: "x", Title: "a very long title"}, "title", "title must be at most 10"},
		{createBody{RawText: "x", MinCount: -1}, "min_count", "min_count must be at least 1"},
		{createBody{RawText: "x", Internal: 9}, "Internal", "Internal must be at most 5"},
		{createBody{RawText: "x", Plain: 9}, "Plain", "Plain must be at most 5"},
	}
	for _, c := range cases {
		code, field, msg := fieldOf(t, Validate(c.in))
		if code != perr.CodeValidation || field != c.field || msg != c.msg {
			t.Fatalf("%+v: got %s/%q/%q want %q/%q", c.in, code, field, msg, c.field, c.msg)
		}
	}
}

func TestValidate_PassesAndMisuse(t *testing.T) {
	t.Parallel()

	if err := Validate(createBody{RawText: "x"}); err != nil {
		t.Fatalf("valid body: %v", err)
	}
	if err := Validate(42); !perr.IsCode(err, perr.CodeInternal) {
		t.Fatalf("non-struct err = %v", err)
	}
}
