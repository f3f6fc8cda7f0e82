package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewHttpClient returns a client whose transport has no dial or header timeouts of
// its own: every request is bounded by its context deadline, and by clientTimeout
// when that is non-zero.
func NewHttpClient(clientTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   clientTimeout,
	}
}
