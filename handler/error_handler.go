package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ErrorPageParams is passed to the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is passed to the toast component sent to DataStar clients.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Type       string
	LogLevel   slog.Level
}

// classifyError maps validation errors to 422, HTTPError to its own status
// and everything else to 500.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServerError.Key,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		info.Message = httpErr.Key
	}

	if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Code = "validation_error"
		info.Message = formatValidationErrors(verrs)
	}

	info.Type = "error"
	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewErrorHandler logs the error and responds in the client's format: a
// toast patch for DataStar, the JSON envelope for JSON clients, an error
// page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(
				cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID}),
				WithTarget(cfg.ToastTarget),
				WithPatchMode(cfg.ToastMode),
			)
		case wantsJSON(r):
			resp = JSONError(err)
		case cfg.ErrorPage != nil:
			resp = TemplWithStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				Error:      info.Message,
				StatusCode: info.StatusCode,
				RequestID:  reqID,
				RetryURL:   r.URL.Path,
			}))
		default:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		if rerr := resp.Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(rerr),
				logger.Event("render_error"),
			)
		}
	}
}
