// Package binder fills request structs from the parts of an HTTP request.
//
// Each binder only touches fields carrying its own tag, so several binders
// can be applied to one struct:
//
//	type submitRequest struct {
//		Example string                    `path:"example"`
//		Forms   map[string]map[string]any `json:"forms"`
//		Posted  url.Values                `form:"*"`
//	}
//
// Path reads chi URL parameters, Query the query string, Form urlencoded and
// multipart bodies, and Signals the DataStar signal payload. Form and Signals
// return ErrBinderNotApplicable for requests they do not understand.
package binder
