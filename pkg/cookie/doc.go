// Package cookie sets and reads HTTP cookies with shared defaults and
// optional HMAC signing.
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
//	m.SetSigned(w, "visitor", id)
//	id, err := m.GetSigned(r, "visitor") // ErrInvalidSignature when tampered
//
// Several secrets may be configured: the first signs new cookies and every
// secret is accepted when verifying.
package cookie
