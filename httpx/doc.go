// Package httpx performs single HTTP exchanges for the Megam client:
// - one request, one connection: keep-alives are off and idle connections are closed by Reset
// - request building against a base URL with default headers (caller headers win)
// - the response body is read in full; non-2xx becomes *Error with a bounded copy of the body
// - before/after hooks, RoundTripper middleware and an optional rate limit
// - no retries; the caller decides what a failure means
package httpx
