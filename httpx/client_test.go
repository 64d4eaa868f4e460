package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolveURL_BaseURLAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/v2/domains?x=1",
		Query:  map[string][]string{"y": {"2"}},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := string(resp.Body)
	if !strings.HasPrefix(got, "/v2/domains?") || !strings.Contains(got, "x=1") || !strings.Contains(got, "y=2") {
		t.Fatalf("unexpected path/query: %q", got)
	}
}

func TestResolveURL_BaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL + "/api"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/v2/accounts"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotPath != "/api/v2/accounts" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	if _, err := New(WithBaseURL("localhost:9000")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDo_HeadersCallerWins(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL),
		WithDefaultHeader("Accept", "application/json"),
		WithDefaultHeader("X-Megam-ORG", "ORG1"),
		WithUserAgent("megam-api/test"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/",
		Header: http.Header{"X-Megam-Org": {"ORG2"}},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Get("X-Megam-ORG") != "ORG2" {
		t.Fatalf("caller header lost: %q", got.Get("X-Megam-ORG"))
	}
	if got.Get("Accept") != "application/json" || got.Get("User-Agent") != "megam-api/test" {
		t.Fatalf("defaults missing: %v", got)
	}
	if got.Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestDo_NoRetryOn5xx(t *testing.T) {
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&n, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"msg":"down"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	if !IsHTTPStatus(err, http.StatusServiceUnavailable) {
		t.Fatalf("expected 503 error, got %v", err)
	}
	if resp == nil || string(resp.Body) != `{"msg":"down"}` {
		t.Fatalf("expected response alongside error, got %+v", resp)
	}
	if got := atomic.LoadInt32(&n); got != 1 {
		t.Fatalf("expected 1 attempt, got %d", got)
	}
}

func TestDo_ErrorBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL), WithMaxErrorBodyBytes(10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/", Body: []byte(`{}`)})
	he, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *httpx.Error, got %T", err)
	}
	if len(he.RawBody) != 10 {
		t.Fatalf("expected RawBody len=10, got %d", len(he.RawBody))
	}
}

func TestDo_TransportErrorHasNoStatus(t *testing.T) {
	boom := errors.New("connection refused")
	c, err := New(
		WithBaseURL("http://megam.invalid"),
		WithTransport(RoundTripperFunc(func(*http.Request) (*http.Response, error) { return nil, boom })),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	if resp != nil {
		t.Fatalf("expected nil response")
	}
	he, ok := AsError(err)
	if !ok || he.StatusCode != 0 || !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"}); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestHooksAndMiddleware(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.Header.Get("X-Signed"))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL), WithRateLimit(1000, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var mwCalls, afterCalls int32
	c.WithMiddleware(func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			atomic.AddInt32(&mwCalls, 1)
			return next.RoundTrip(r)
		})
	}).WithHooks(
		[]BeforeHook{func(req *http.Request) error {
			req.Header.Set("X-Signed", "yes")
			return nil
		}},
		[]AfterHook{func(req *http.Request, resp *Response, err error, dur time.Duration) {
			if resp != nil && resp.StatusCode == http.StatusOK {
				atomic.AddInt32(&afterCalls, 1)
			}
		}},
	)

	resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(resp.Body) != "yes" {
		t.Fatalf("before hook not applied: %q", resp.Body)
	}
	if mwCalls != 1 || afterCalls != 1 {
		t.Fatalf("middleware=%d after=%d", mwCalls, afterCalls)
	}
	c.Reset()
}

func TestBeforeHookAborts(t *testing.T) {
	c, err := New(WithBaseURL("http://megam.invalid"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stop := errors.New("stop")
	c.WithHooks([]BeforeHook{func(*http.Request) error { return stop }}, nil)
	if _, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"}); !errors.Is(err, stop) {
		t.Fatalf("expected hook error, got %v", err)
	}
}

func TestDo_RedirectNotFollowed(t *testing.T) {
	var elsewhere int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&elsewhere, 1)
	}))
	t.Cleanup(other.Close)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, other.URL+"/v2/accounts", http.StatusFound)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/v2/accounts",
		Header: http.Header{"X-Megam-HMAC": []string{"a@b.com:sig"}},
	})
	if !IsHTTPStatus(err, http.StatusFound) {
		t.Fatalf("expected 302 error, got %v", err)
	}
	if resp == nil || resp.Header.Get("Location") == "" {
		t.Fatalf("expected the 302 response with Location, got %+v", resp)
	}
	if n := atomic.LoadInt32(&elsewhere); n != 0 {
		t.Fatalf("redirect target contacted %d times", n)
	}
}

func TestDo_ErrorBodyReadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"msg":"cut`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	he, ok := AsError(err)
	if !ok || he.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %v", err)
	}
	if he.BodyErr == nil || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected body read error to be recorded, got BodyErr=%v err=%v", he.BodyErr, err)
	}
	if string(he.RawBody) != `{"msg":"cut` {
		t.Fatalf("unexpected partial body: %q", he.RawBody)
	}
}

type idleCounter struct {
	http.RoundTripper
	closed int32
}

func (c *idleCounter) CloseIdleConnections() { atomic.AddInt32(&c.closed, 1) }

func TestReset_ReachesBaseTransportBehindMiddleware(t *testing.T) {
	base := &idleCounter{RoundTripper: NewTransport(TransportConfig{KeepAlive: true})}
	c, err := New(WithBaseURL("http://megam.invalid"), WithTransport(base))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.WithMiddleware(func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(next.RoundTrip)
	})

	c.Reset()
	if n := atomic.LoadInt32(&base.closed); n != 1 {
		t.Fatalf("expected base transport reset once, got %d", n)
	}
}
