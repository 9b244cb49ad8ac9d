package net

import (
	"net/http"

	perr "scribe/internal/platform/errors"
)

// Envelope is the JSON body every endpoint answers with
type Envelope struct {
	StatusCode int       `json:"status_code"`
	Status     string    `json:"status"`
	Code       perr.Code `json:"code,omitempty"`
	Error      string    `json:"error,omitempty"`
	Field      string    `json:"field,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Data       any       `json:"data,omitempty"`
}

// Success wraps data under status
func Success(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err to its status and code. Messages of uncoded errors are
// replaced so driver detail never reaches clients
func Failure(err error, reqID string) Envelope {
	status := perr.HTTPStatus(err)
	env := Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       perr.CodeOf(err),
		RequestID:  reqID,
	}
	if e, ok := perr.As(err); ok {
		env.Error = e.Message()
		env.Field = e.Field()
	} else {
		env.Error = "internal error"
	}
	return env
}
