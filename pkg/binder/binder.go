package binder

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
)

// Path binds `path:"name"` fields from chi URL parameters.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindTagged(v, "path", func(name string) []string {
			if p := chi.URLParam(r, name); p != "" {
				return []string{p}
			}
			return nil
		}, nil, ErrFailedToParsePath)
	}
}

// Query binds `query:"name"` fields from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindTagged(v, "query", func(name string) []string { return q[name] }, q, ErrFailedToParseQuery)
	}
}

// Form binds `form:"name"` fields from an urlencoded or multipart body.
// A url.Values field tagged `form:"*"` receives every posted value.
// Other content types are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrFailedToParseForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				return errors.Join(ErrFailedToParseForm, err)
			}
		default:
			return ErrBinderNotApplicable
		}
		return bindTagged(v, "form", func(name string) []string { return r.PostForm[name] }, r.PostForm, ErrFailedToParseForm)
	}
}

// Signals decodes the DataStar signals of the request into v using its
// json tags. Requests not sent by the DataStar client are not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Header.Get("Datastar-Request") == "" && !r.URL.Query().Has("datastar") {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrFailedToParseSignals, err)
		}
		return nil
	}
}
