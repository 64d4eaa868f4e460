// Package api is a client for the Megam gateway. Every call is one signed
// round-trip whose JSON answer is inflated into models via jsoncompat.
package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/rajesh-rajagopal/megam-api/config"
	"github.com/rajesh-rajagopal/megam-api/httpx"
	"github.com/rajesh-rajagopal/megam-api/jsoncompat"
	"github.com/rajesh-rajagopal/megam-api/version"
)

const (
	// APIVersion prefixes every request path.
	APIVersion = "/v2"

	// DefaultHTTPPort is used for plain http when no port is configured.
	DefaultHTTPPort = 9000

	// EnvAPIKey is consulted when no api key is configured.
	EnvAPIKey = "MEGAM_API_KEY"
)

const (
	HeaderHMAC      = "X-Megam-HMAC"
	HeaderDate      = "X-Megam-DATE"
	HeaderOrg       = "X-Megam-ORG"
	HeaderPuttusavi = "X-Megam-PUTTUSAVI"
	HeaderOttai     = "X-Megam-OTTAI"
)

// AltDecoder decodes bodies of responses that carry X-Megam-OTTAI.
type AltDecoder func(data []byte) (any, error)

// Params describe one call. Path is relative to the API version, e.g. "/accounts/a@b.io".
type Params struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header
}

// Response is a successful answer. Raw holds the body after gzip inflation and
// Value the decoded form, nil for an empty body.
type Response struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Value      any
	Duration   time.Duration
}

type Client struct {
	transport *httpx.Client
	creds     Credentials
	orgID     string
	headers   http.Header
	logger    hclog.Logger
	registry  *jsoncompat.Registry
	alt       AltDecoder
	signer    Signer

	mu   sync.Mutex
	last *Response
}

// New builds a client. It fails with ErrAuthKeysMissing unless an email and
// either an api key or a password are available, or WithResetFlag is given.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.apiKey == "" {
		o.apiKey = os.Getenv(EnvAPIKey)
	}
	if !o.resetFlag && (o.email == "" || (o.apiKey == "" && o.password == "")) {
		return nil, ErrAuthKeysMissing
	}

	logger := o.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	transport := o.transport
	if transport == nil {
		var err error
		transport, err = newTransport(o)
		if err != nil {
			return nil, err
		}
		transport.WithHooks(nil, o.after)
	} else if len(o.after) > 0 {
		logger.Warn("after hooks ignored: attach them to the transport passed with WithTransport")
	}

	registry := o.registry
	if registry == nil {
		registry = jsoncompat.DefaultRegistry()
	}
	alt := o.alt
	if alt == nil {
		alt = jsoncompat.Plain
	}

	return &Client{
		transport: transport,
		creds:     Credentials{Email: o.email, APIKey: o.apiKey, Password: o.password},
		orgID:     o.orgID,
		headers:   o.headers.Clone(),
		logger:    logger,
		registry:  registry,
		alt:       alt,
		signer:    Signer{Now: o.now},
	}, nil
}

// NewFromSettings builds a client from loaded settings; opts are applied after them.
func NewFromSettings(s config.Settings, opts ...Option) (*Client, error) {
	base := []Option{
		WithHost(s.Host),
		WithScheme(s.Scheme),
		WithPort(s.Port),
		WithEmail(s.Email),
		WithAPIKey(s.APIKey),
		WithPassword(s.Password),
		WithOrgID(s.OrgID),
		WithRateLimit(s.RateLimit),
	}
	if s.Timeout > 0 {
		base = append(base, WithTimeout(s.Timeout))
	}
	if s.Insecure {
		base = append(base, WithInsecureTLS())
	}
	for k, v := range s.Headers {
		base = append(base, WithHeader(k, v))
	}
	return New(append(base, opts...)...)
}

func baseURL(scheme, host string, port int) string {
	if port == 0 && scheme == "http" {
		port = DefaultHTTPPort
	}
	if port > 0 {
		host = net.JoinHostPort(host, strconv.Itoa(port))
	}
	return scheme + "://" + host
}

func newTransport(o options) (*httpx.Client, error) {
	defaults := make(http.Header)
	defaults.Set("Accept", "application/json")
	defaults.Set("Accept-Encoding", "gzip")
	defaults.Set("X-Go-Version", runtime.Version())
	defaults.Set("X-Go-Platform", runtime.GOOS+"/"+runtime.GOARCH)

	httpOpts := []httpx.Option{
		httpx.WithBaseURL(baseURL(o.scheme, o.host, o.port)),
		httpx.WithTimeout(o.timeout),
		httpx.WithUserAgent(version.Get().UserAgent()),
		httpx.WithDefaultHeaders(defaults),
		httpx.WithTransport(httpx.NewTransport(httpx.TransportConfig{
			InsecureSkipVerify: o.insecure,
		})),
	}
	if o.rateLimit > 0 {
		httpOpts = append(httpOpts, httpx.WithRateLimit(o.rateLimit, 1))
	}
	c, err := httpx.New(append(httpOpts, o.httpOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("megam: build transport: %w", err)
	}
	return c, nil
}

// Request signs and sends one call and decodes its answer. Non-2xx answers come
// back as *Error. Nothing is retried.
func (c *Client) Request(ctx context.Context, p Params) (*Response, error) {
	start := time.Now()
	method := strings.ToUpper(p.Method)
	if method == "" {
		method = http.MethodGet
	}
	path := APIVersion + p.Path

	c.logger.Debug("START", "method", method, "path", path)

	signed, err := c.signer.Sign(c.creds, path, p.Body)
	if err != nil {
		return nil, fmt.Errorf("megam: sign %s: %w", path, err)
	}

	hdr := make(http.Header)
	hdr.Set(HeaderHMAC, signed.HMAC)
	hdr.Set(HeaderDate, signed.Date)
	hdr.Set(HeaderOrg, c.orgID)
	if c.creds.KeySource() == KeyPassword {
		hdr.Set(HeaderPuttusavi, "true")
	}
	overlay(hdr, c.headers)
	overlay(hdr, p.Header)

	c.logger.Debug("request data", "headers", redact(hdr), "body_bytes", len(p.Body))

	defer c.transport.Reset()
	resp, err := c.transport.Do(ctx, &httpx.Request{
		Method: method,
		Path:   path,
		Header: hdr,
		Body:   p.Body,
	})
	if err != nil {
		return nil, c.classify(err)
	}

	c.logger.Debug("response", "status", resp.StatusCode, "headers", redact(resp.Header))

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(resp.Body) > 0 {
		raw, err := inflate(resp.Header, resp.Body)
		if err != nil {
			c.logger.Error("inflate response", "path", path, "error", err)
			return nil, err
		}
		out.Raw = raw
		c.logger.Trace("response body", "body", string(raw))

		if _, ottai := resp.Header[http.CanonicalHeaderKey(HeaderOttai)]; ottai {
			out.Value, err = c.alt(bytes.TrimRight(raw, "\r\n"))
		} else {
			out.Value, err = jsoncompat.Decode(raw, jsoncompat.WithRegistry(c.registry))
		}
		if err != nil {
			c.logger.Error("decode response", "path", path, "error", err)
			return nil, err
		}
	}
	out.Duration = time.Since(start)

	c.mu.Lock()
	c.last = out
	c.mu.Unlock()

	c.logger.Debug("END", "duration", out.Duration)
	return out, nil
}

// classify turns transport failures into *Error. Errors raised before the exchange
// (context, rate limiter, hooks) pass through unchanged.
func (c *Client) classify(err error) error {
	he, ok := httpx.AsError(err)
	if !ok {
		return err
	}
	if he.StatusCode == 0 {
		c.logger.Debug("transport failure", "error", err)
		return &Error{Kind: KindErrorWithResponse, Cause: he}
	}

	e := &Error{
		Kind:       KindForStatus(he.StatusCode),
		StatusCode: he.StatusCode,
		Cause:      he,
	}
	if he.BodyErr != nil {
		c.logger.Warn("error body incomplete, not decoding", "status", he.StatusCode, "error", he.BodyErr)
		e.Raw = he.RawBody
		if len(he.RawBody) > 0 {
			e.Body = strings.TrimRight(string(he.RawBody), "\r\n")
		}
		return e
	}

	raw, ierr := inflate(he.Header, he.RawBody)
	if ierr != nil {
		raw = he.RawBody
	}
	e.Raw = raw
	c.logger.Debug("response error", "status", he.StatusCode, "body", string(raw))

	if len(bytes.TrimSpace(raw)) > 0 {
		body, derr := jsoncompat.Decode(raw, jsoncompat.WithRegistry(c.registry))
		if derr != nil {
			c.logger.Error("decode error body", "status", he.StatusCode, "error", derr)
			e.Body = strings.TrimRight(string(raw), "\r\n")
		} else {
			e.Body = body
		}
	}
	return e
}

// LastResponse returns the most recent successful response, or nil.
func (c *Client) LastResponse() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, Params{Method: http.MethodGet, Path: path})
}

// Post encodes body with jsoncompat unless it already is []byte.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, Params{Method: http.MethodDelete, Path: path})
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*Response, error) {
	var b []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		enc, err := jsoncompat.Encode(v)
		if err != nil {
			return nil, err
		}
		b = enc
	}
	p := Params{Method: method, Path: path, Body: b}
	if b != nil {
		p.Header = http.Header{"Content-Type": []string{"application/json"}}
	}
	return c.Request(ctx, p)
}

func inflate(h http.Header, body []byte) ([]byte, error) {
	if len(body) == 0 || !strings.EqualFold(strings.TrimSpace(h.Get("Content-Encoding")), "gzip") {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("megam: gzip body: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("megam: gzip body: %w", err)
	}
	return out, nil
}

func overlay(dst, src http.Header) {
	for k, vv := range src {
		dst.Del(k)
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

func redact(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		v := strings.Join(vv, ", ")
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(HeaderHMAC) && v != "" {
			if i := strings.IndexByte(v, ':'); i >= 0 {
				v = v[:i+1] + "****"
			} else {
				v = "****"
			}
		}
		out[k] = v
	}
	return out
}
