package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient *http.Client
	// base is the unwrapped transport; Reset closes its idle connections even
	// after middleware replaced httpClient.Transport.
	base http.RoundTripper

	baseURL *url.URL

	timeout        time.Duration
	defaultHeaders http.Header
	userAgent      string
	maxErrBody     int64

	requestID RequestIDConfig

	rateLimiter RateLimiter
	before      []BeforeHook
	after       []AfterHook
}

// New constructs a Client from DefaultConfig() plus the provided options.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Client, error) {
	var bu *url.URL
	if s := strings.TrimSpace(cfg.BaseURL); s != "" {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, &url.Error{Op: "parse", URL: cfg.BaseURL, Err: errors.New("base url must be absolute")}
		}
		// Treat the BaseURL path as a prefix.
		if u.Path != "" && !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		bu = u
	}

	rt := cfg.Transport
	if rt == nil {
		rt = DefaultTransport()
	}

	maxErrBody := cfg.MaxErrorBodyBytes
	if maxErrBody == 0 {
		maxErrBody = DefaultMaxErrorBodyBytes
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: rt,
			// A 3xx is returned as is; headers never follow Location to another host.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base:           rt,
		baseURL:        bu,
		timeout:        cfg.Timeout,
		defaultHeaders: cfg.DefaultHeaders.Clone(),
		userAgent:      cfg.UserAgent,
		maxErrBody:     maxErrBody,
		requestID:      cfg.RequestID,
	}
	if c.defaultHeaders == nil {
		c.defaultHeaders = make(http.Header)
	}
	if c.requestID.New == nil && c.requestID.Header != "" {
		c.requestID.New = DefaultRequestID
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// WithMiddleware wraps the underlying RoundTripper with middleware.
// Call this during initialization (before the client is used concurrently).
func (c *Client) WithMiddleware(mws ...Middleware) *Client {
	if len(mws) == 0 {
		return c
	}
	c.httpClient.Transport = chain(c.httpClient.Transport, mws)
	return c
}

// WithRateLimiter replaces the client-wide rate limiter.
func (c *Client) WithRateLimiter(rl RateLimiter) *Client {
	c.rateLimiter = rl
	return c
}

// WithHooks adds hooks executed around every exchange.
func (c *Client) WithHooks(before []BeforeHook, after []AfterHook) *Client {
	c.before = append(c.before, before...)
	c.after = append(c.after, after...)
	return c
}

// BaseURL returns the configured base URL, or nil.
func (c *Client) BaseURL() *url.URL {
	if c.baseURL == nil {
		return nil
	}
	u := *c.baseURL
	return &u
}

// Do performs a single exchange. Transport failures return a nil Response and an
// *Error with StatusCode 0. Non-2xx responses return both the Response (Body
// limited to MaxErrorBodyBytes) and an *Error. Redirects are not
// followed and nothing is retried.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	if r == nil {
		return nil, errors.New("nil request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newHTTPRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	for _, h := range c.before {
		if h == nil {
			continue
		}
		if err := h(req); err != nil {
			return nil, err
		}
	}

	t0 := time.Now()
	resp, err := c.httpClient.Do(req)
	var out *Response
	if err == nil {
		out, err = c.readResponse(req, resp)
	}
	dur := time.Since(t0)

	for _, h := range c.after {
		if h != nil {
			h(req, out, err, dur)
		}
	}

	if err != nil {
		var he *Error
		if errors.As(err, &he) {
			return out, err
		}
		return nil, &Error{
			Method:    req.Method,
			URL:       req.URL.String(),
			RequestID: strings.TrimSpace(req.Header.Get(c.requestID.Header)),
			Cause:     err,
		}
	}
	return out, nil
}

func (c *Client) readResponse(req *http.Request, resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		URL:        req.URL.String(),
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		out.Body = b
		return out, nil
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxErrBody))
	out.Body = raw

	rid := ""
	if c.requestID.Header != "" {
		rid = strings.TrimSpace(resp.Header.Get(c.requestID.Header))
		if rid == "" {
			rid = strings.TrimSpace(req.Header.Get(c.requestID.Header))
		}
	}
	return out, &Error{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		RequestID:  rid,
		Header:     resp.Header,
		RawBody:    raw,
		BodyErr:    readErr,
		Cause:      statusCause(resp.StatusCode, readErr),
	}
}

func statusCause(code int, readErr error) error {
	text := http.StatusText(code)
	if text == "" {
		text = "status " + strconv.Itoa(code)
	}
	if readErr != nil {
		return fmt.Errorf("%s: read body: %w", text, readErr)
	}
	return errors.New(text)
}

// Reset drops idle connections so the next exchange dials afresh.
func (c *Client) Reset() {
	if ci, ok := c.base.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
		return
	}
	c.httpClient.CloseIdleConnections()
}
