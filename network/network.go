// Package network holds the HTTP client used for release lookups.
package network

import (
	"net/http"
	"time"

	"github.com/squiggle-cli/squiggle/constant"
)

// UserAgent is sent with every request made through Client.
var UserAgent = constant.Squiggle + "/" + constant.Version

// Client is shared by everything that talks HTTP. Lookups are advisory, so it gives up quickly.
var Client = &http.Client{
	Timeout:   3 * time.Second,
	Transport: &agentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 3 * time.Second
	return t
}

type agentTransport struct {
	base http.RoundTripper
}

func (t *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(req)
}
