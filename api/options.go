package api

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/rajesh-rajagopal/megam-api/httpx"
	"github.com/rajesh-rajagopal/megam-api/jsoncompat"
)

type options struct {
	email    string
	apiKey   string
	password string
	orgID    string

	host     string
	scheme   string
	port     int
	headers  http.Header
	insecure bool

	timeout   time.Duration
	rateLimit float64

	resetFlag bool

	logger    hclog.Logger
	transport *httpx.Client
	httpOpts  []httpx.Option
	after     []httpx.AfterHook
	registry  *jsoncompat.Registry
	alt       AltDecoder
	now       func() time.Time
}

func defaultOptions() options {
	return options{
		host:    "127.0.0.1",
		scheme:  "http",
		headers: make(http.Header),
		timeout: 30 * time.Second,
	}
}

type Option func(*options)

func WithEmail(email string) Option { return func(o *options) { o.email = email } }

// WithAPIKey sets the api key. Without it MEGAM_API_KEY is consulted.
func WithAPIKey(key string) Option { return func(o *options) { o.apiKey = key } }

// WithPassword sets the base64-encoded password used as HMAC key when no api key is configured.
func WithPassword(password string) Option { return func(o *options) { o.password = password } }

func WithOrgID(id string) Option { return func(o *options) { o.orgID = id } }

func WithHost(host string) Option { return func(o *options) { o.host = host } }

func WithScheme(scheme string) Option { return func(o *options) { o.scheme = scheme } }

// WithPort overrides the scheme default (9000 for http, none for https).
func WithPort(port int) Option { return func(o *options) { o.port = port } }

// WithHeader adds a header sent on every request; it overrides the signature
// headers and is itself overridden by Params.Header.
func WithHeader(key, value string) Option {
	return func(o *options) { o.headers.Set(key, value) }
}

func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64) Option { return func(o *options) { o.rateLimit = perSecond } }

// WithInsecureTLS skips certificate verification.
func WithInsecureTLS() Option { return func(o *options) { o.insecure = true } }

// WithResetFlag skips the credential check in New, for calls that create accounts
// or reset passwords.
func WithResetFlag() Option { return func(o *options) { o.resetFlag = true } }

func WithLogger(l hclog.Logger) Option { return func(o *options) { o.logger = l } }

// WithTransport replaces the transport. Its BaseURL must point at the gateway.
// New leaves it untouched: options that configure the built transport
// (WithHTTPOptions, WithAfterHook, timeouts, rate limit) do not apply.
func WithTransport(c *httpx.Client) Option { return func(o *options) { o.transport = c } }

// WithHTTPOptions passes options to the transport built by New.
func WithHTTPOptions(opts ...httpx.Option) Option {
	return func(o *options) { o.httpOpts = append(o.httpOpts, opts...) }
}

// WithAfterHook observes every exchange of the transport New builds, e.g.
// metrics.Metrics.AfterHook().
func WithAfterHook(h httpx.AfterHook) Option {
	return func(o *options) { o.after = append(o.after, h) }
}

func WithRegistry(r *jsoncompat.Registry) Option { return func(o *options) { o.registry = r } }

// WithAltDecoder replaces the decoder used for responses flagged with X-Megam-OTTAI.
func WithAltDecoder(d AltDecoder) Option { return func(o *options) { o.alt = d } }

// WithClock replaces time.Now for signing.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }
