// Package httpkit is what service http packages register routes with
package httpkit

import (
	"net/http"

	phttp "scribe/internal/platform/net/http"
)

// Router is the platform router
type Router = phttp.Router

// Get answers GET path with fn's result under 200
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, phttp.Endpoint(http.StatusOK, fn))
}

// Post answers a body-less POST under 200
func Post(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Post(path, phttp.Endpoint(http.StatusOK, fn))
}

// Delete answers DELETE path under 200
func Delete(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Delete(path, phttp.Endpoint(http.StatusOK, fn))
}

// PostJSON decodes and validates T, answering 200
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.BodyEndpoint(http.StatusOK, fn))
}

// Create decodes and validates T, answering 201
func Create[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.BodyEndpoint(http.StatusCreated, fn))
}

// PutJSON decodes and validates T, answering 200
func PutJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.BodyEndpoint(http.StatusOK, fn))
}
