// Package bind decodes request bodies and validates them with struct tags
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "scribe/internal/platform/errors"
	"scribe/internal/platform/logger"
)

// MaxBody caps decoded request bodies. Transcripts are long but not that long
const MaxBody = 1 << 20

type checker struct {
	v  *validator.Validate
	tr ut.Translator
}

var instance = sync.OnceValue(func() *checker {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, tr)
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	for tag, text := range map[string]string{
		"min":      "{0} must be at least {1}",
		"max":      "{0} must be at most {1}",
		"notblank": "{0} must not be blank",
	} {
		translate(v, tr, tag, text)
	}
	return &checker{v: v, tr: tr}
})

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func translate(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes one JSON object into T and validates it. Unknown
// fields, trailing data and empty bodies are rejected as bad json
func ParseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil || r.Body == http.NoBody {
		return v, perr.BadJSONf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, perr.BadJSONf("request body is empty")
		}
		return v, perr.BadJSONf("invalid json: %v", err)
	}
	if dec.More() {
		return v, perr.BadJSONf("unexpected data after json body")
	}
	return v, Validate(v)
}

// Validate checks v's struct tags. The first failing field is reported on
// the returned error
func Validate(v any) error {
	c := instance()
	err := c.v.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		logger.Named("bind").Error().Err(err).Msg("validator misuse")
		return perr.New(perr.CodeInternal, "validation failed")
	}
	fe := fields[0]
	return perr.WithField(perr.New(perr.CodeValidation, fe.Translate(c.tr)), fe.Field())
}
