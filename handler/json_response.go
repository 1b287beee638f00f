package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v in the data envelope.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error envelope with the status derived
// from it.
func JSONError(err error, opts ...JSONOption) Response {
	info := classifyError(err)
	r := &jsonResponse{
		status: info.StatusCode,
		body:   JSONResponse{Error: &ErrorDetail{Code: info.Code, Message: info.Message}},
	}
	if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
		r.body.Error.Details = verrs.Map()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// wantsJSON reports whether the client asked for JSON explicitly.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
