package httpx

import (
	"context"
	"net/http"
	"time"
)

// RateLimiter blocks until a request may be sent or ctx is done.
// *rate.Limiter from golang.org/x/time/rate satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// BeforeHook runs once the request is fully built. Returning an error aborts the exchange.
type BeforeHook func(req *http.Request) error

// AfterHook observes every exchange. resp is nil on transport failures.
type AfterHook func(req *http.Request, resp *Response, err error, dur time.Duration)

type Middleware func(next http.RoundTripper) http.RoundTripper

func chain(rt http.RoundTripper, mws []Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		rt = mws[i](rt)
	}
	return rt
}

// RoundTripperFunc lets a plain function serve as middleware output or a test transport.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
