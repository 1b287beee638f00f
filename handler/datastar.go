package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is sent by the DataStar client on every action.
	DataStarRequestHeader = "Datastar-Request"
	// DataStarQueryParam carries signals on GET actions.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether the request comes from the DataStar client and
// expects an SSE response.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) != "" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}
