// Package network holds the HTTP client used for release checks.
package network

import (
	"net/http"
	"time"
)

// Client is shared by every outgoing request.
var Client = &http.Client{
	Timeout:   5 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}
