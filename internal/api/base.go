package api

import "time"

// DefaultBaseURL is the platform address used when none is configured.
const DefaultBaseURL = "http://localhost:9999"

// NewDefaultClient builds a client pointed at the default platform URL.
func NewDefaultClient(token string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, token, timeout...)
}
