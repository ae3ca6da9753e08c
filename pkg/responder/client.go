// Package responder is a client for the Responder email-marketing API
// (lists, subscribers and personal fields), signed with two-legged OAuth1.
package responder

import (
	"strings"
	"time"

	"github.com/samvad-hq/responder-client/pkg/httpclient"
)

const (
	// DefaultBaseURL is the Responder API host.
	DefaultBaseURL = "http://api.responder.co.il"

	apiPrefix      = "/v1.0/lists"
	defaultTimeout = 30 * time.Second
)

// Args is an arbitrary JSON-compatible payload. Batch endpoints expect
// string keys "0", "1", ... mapping to one record each.
type Args map[string]any

// Client is the Responder API client. It is immutable after New and safe for concurrent use.
type Client struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	encoding  Encoding
	consumer  httpclient.Credentials
	token     httpclient.Credentials
	http      httpclient.Client
	log       Logger
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the API host.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent of the default transport.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the default signing transport. The supplied
// client is responsible for OAuth1 signing.
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithBodyEncoding selects how request bodies are put on the wire.
func WithBodyEncoding(enc Encoding) Option {
	return func(c *Client) {
		c.encoding = enc
	}
}

// New builds a client from the consumer (application) key pair and the
// pre-issued user access token pair. It performs no network I/O and does
// not validate the credentials; bad credentials surface as an
// authentication failure on the first request.
func New(consumerKey, consumerSecret, userKey, userSecret string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		timeout:  defaultTimeout,
		encoding: EncodingJSON,
		consumer: httpclient.Credentials{Key: consumerKey, Secret: consumerSecret},
		token:    httpclient.Credentials{Key: userKey, Secret: userSecret},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(strings.TrimSpace(c.baseURL), "/")
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	c.log = ensureLogger(c.log)
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout,
			httpclient.WithSigner(httpclient.NewOAuth1Signer(c.consumer, c.token)),
			httpclient.WithUserAgent(c.userAgent),
		)
	}

	return c
}

// BaseURL returns the API host the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }
