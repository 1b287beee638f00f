package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Stream sends patches and signals over an open DataStar SSE connection.
type Stream struct {
	ctx context.Context
	sse *datastar.ServerSentEventGenerator
}

// Context is done when the client disconnects.
func (s *Stream) Context() context.Context { return s.ctx }

func (s *Stream) SendComponent(component templ.Component, opts ...TemplOption) error {
	return s.sse.PatchElementTempl(component, opts...)
}

func (s *Stream) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := s.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stream) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return s.sse.PatchSignals(data)
}

// SSEHandler runs for the lifetime of one streamed response.
type SSEHandler func(stream *Stream) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, ErrNotDataStar.Error())
	}
	return s.handler(&Stream{ctx: r.Context(), sse: datastar.NewSSE(w, r)})
}

// SSE streams several updates in one response, e.g. a "checking" state
// followed by the result of an async check.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
