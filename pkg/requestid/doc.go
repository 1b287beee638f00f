// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware accepts a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], and generates a UUID otherwise. The ID is
// stored in the request context, echoed in the response and added to log
// records through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	http.ListenAndServe(":8080", requestid.Middleware(mux))
package requestid
