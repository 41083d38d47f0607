package push

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = "203.0.113.7:54321"

	local := &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 8080}
	ctx := context.WithValue(req.Context(), http.LocalAddrContextKey, net.Addr(local))
	req = req.WithContext(ctx)

	id, err := IdentityFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7:54321", id.RemoteAddr)
	assert.Equal(t, "10.0.0.1:8080", id.LocalAddr)
	assert.False(t, id.Secure)
	assert.Equal(t, "203.0.113.7:54321", id.Key())
}

func TestIdentityFromRequest_Secure(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	req.TLS = &tls.ConnectionState{}

	id, err := IdentityFromRequest(req)
	require.NoError(t, err)
	assert.True(t, id.Secure)
}

func TestIdentityFromRequest_RejectsMissingOrMalformedRemote(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = ""
	_, err := IdentityFromRequest(req)
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	req = httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = "not-an-address"
	_, err = IdentityFromRequest(req)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestIdentityString(t *testing.T) {
	id := Identity{RemoteAddr: "1.2.3.4:1000", LocalAddr: "10.0.0.1:8080", Secure: true}
	assert.Equal(t, "https[1.2.3.4:1000->10.0.0.1:8080]", id.String())
}
