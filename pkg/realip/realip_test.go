package realip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(remote, xff string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	return req
}

func trust(t *testing.T, list ...string) {
	t.Helper()
	require.NoError(t, SetTrustedProxies(list))
	t.Cleanup(func() { _ = SetTrustedProxies(nil) })
}

func TestForwardedForIgnoredWithoutTrustedProxy(t *testing.T) {
	assert.Equal(t, "9.9.9.9", FromRequest(request("9.9.9.9:4000", "1.2.3.4")))
	assert.Equal(t, "9.9.9.9", FromRequest(request("9.9.9.9:4000", "")))
}

func TestForwardedForFromTrustedProxy(t *testing.T) {
	trust(t, "10.0.0.0/8", "192.0.2.1")

	assert.Equal(t, "1.2.3.4", FromRequest(request("10.1.1.1:80", "1.2.3.4")))
	// A spoofed left-most entry does not win over the hop the proxy appended.
	assert.Equal(t, "5.6.7.8", FromRequest(request("192.0.2.1:80", "1.2.3.4, 5.6.7.8, 10.0.0.7")))
	// Untrusted peers are taken at face value even with the header.
	assert.Equal(t, "8.8.8.8", FromRequest(request("8.8.8.8:80", "1.2.3.4")))

	req := request("10.1.1.1:80", "")
	req.Header.Set("X-Real-Ip", "4.4.4.4")
	assert.Equal(t, "4.4.4.4", FromRequest(req))
	assert.Equal(t, "10.1.1.1", FromRequest(request("10.1.1.1:80", "")))
}

func TestIPv6AndMappedPeers(t *testing.T) {
	trust(t, "::1", "127.0.0.1")

	assert.Equal(t, "2001:db8::1", FromRequest(request("[::1]:80", "2001:db8::1")))
	assert.Equal(t, "1.2.3.4", FromRequest(request("[::ffff:127.0.0.1]:80", "1.2.3.4")))
}

func TestSetTrustedProxiesRejectsGarbage(t *testing.T) {
	t.Cleanup(func() { _ = SetTrustedProxies(nil) })
	assert.Error(t, SetTrustedProxies([]string{"not-an-ip"}))
	assert.Error(t, SetTrustedProxies([]string{"10.0.0.0/99"}))
	assert.NoError(t, SetTrustedProxies([]string{" ", "10.0.0.0/8"}))
}
