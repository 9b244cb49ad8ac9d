package http

import (
	"net/http"

	"scribe/internal/platform/net/http/bind"
)

// Endpoint turns a return-style handler into a Handler answering with status
func Endpoint(status int, fn func(*http.Request) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r)
		if err != nil {
			Fail(w, r, err)
			return
		}
		Write(w, r, status, out)
	}
}

// BodyEndpoint decodes and validates a JSON body of type T before calling fn
func BodyEndpoint[T any](status int, fn func(*http.Request, T) (any, error)) Handler {
	return Endpoint(status, func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}
