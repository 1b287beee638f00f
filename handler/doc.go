// Package handler provides typed HTTP handlers and the responses the demo
// site renders.
//
// A HandlerFunc receives a bound request value and returns a Response:
//
//	type fieldRequest struct {
//		Example string `path:"example"`
//		Field   string `path:"field"`
//	}
//
//	h := handler.Wrap(func(ctx handler.Context, req fieldRequest) handler.Response {
//		return handler.Templ(views.Field(req.Example, req.Field), handler.WithTarget("#field"))
//	}, handler.WithBinders[handler.Context, fieldRequest](binder.Path()))
//
// Templ responses are sent as DataStar element patches over SSE when the
// request comes from the DataStar client and as plain HTML otherwise. SSE
// streams several patches in one response. NewErrorHandler maps
// validator.ValidationErrors to 422 and HTTPError to its status.
package handler
