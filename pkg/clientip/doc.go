// Package clientip resolves the originating client address of a request.
//
// A Resolver is configured with the proxy headers it may trust. Headers are
// checked in order and comma separated values yield their first valid
// address; RemoteAddr is the fallback. Addresses are validated with
// net/netip and IPv4-mapped IPv6 forms are unmapped.
//
//	ips := clientip.New(clientip.DefaultHeaders...)
//	r.Use(ips.Middleware)
//
// Middleware stores the address in the request context, where FromContext
// and LoggerExtractor read it.
package clientip
