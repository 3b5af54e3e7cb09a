package repository

import "net/http"

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// FailingTransport fails every request with Err, the way an unreachable
// upstream does.
type FailingTransport struct {
	Err error
}

func (t FailingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, t.Err
}
