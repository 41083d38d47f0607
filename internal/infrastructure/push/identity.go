package push

import (
	"fmt"
	"net"
	"net/http"
)

// Identity pairs the remote endpoint of a streaming connection with the
// local endpoint it arrived on. It is immutable and addresses exactly one
// connection for that connection's lifetime. Equality is by remote address:
// one streaming connection per remote endpoint at a time.
type Identity struct {
	RemoteAddr string
	LocalAddr  string
	Secure     bool
}

// IdentityFromRequest derives the identity of an incoming streaming request.
// The local address is populated by net/http on the request context; the
// remote address must be a valid host:port or admission is refused.
func IdentityFromRequest(r *http.Request) (Identity, error) {
	if r.RemoteAddr == "" {
		return Identity{}, fmt.Errorf("%w: no remote address", ErrInvalidIdentity)
	}
	if _, _, err := net.SplitHostPort(r.RemoteAddr); err != nil {
		return Identity{}, fmt.Errorf("%w: malformed remote address %q", ErrInvalidIdentity, r.RemoteAddr)
	}

	var local string
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		local = addr.String()
	}

	return Identity{
		RemoteAddr: r.RemoteAddr,
		LocalAddr:  local,
		Secure:     r.TLS != nil,
	}, nil
}

// Key is the registry key for this identity.
func (id Identity) Key() string {
	return id.RemoteAddr
}

func (id Identity) String() string {
	scheme := "http"
	if id.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s[%s->%s]", scheme, id.RemoteAddr, id.LocalAddr)
}
