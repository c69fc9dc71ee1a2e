package luno

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API origin. Override it with
	// WithBaseURL to point the client at a sandbox or test server.
	DefaultBaseURL = "https://api.mybitx.com/api/1"

	userAgent = "luno-go/1.0"
)

// Client is the entry point for the API. It holds the credentials, the URL
// builder and an HTTP transport handle, all read-only after construction,
// so a single Client is safe for concurrent use.
type Client struct {
	credentials Credentials
	urls        *urlBuilder
	httpClient  *http.Client
	log         logrus.FieldLogger
}

// Option configures a Client during construction.
type Option func(*Client) error

// WithBaseURL points the client at a different API origin. The URL must be
// absolute; a malformed value fails NewClient with a config error.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		urls, err := newURLBuilder(raw)
		if err != nil {
			return err
		}
		c.urls = urls
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. Use this to control
// timeouts, proxies and connection pooling.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithLogger enables debug logging of requests and responses. Credentials
// are masked before anything is written.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// NewClient returns a client authenticating every request with the given
// API key id and secret over HTTP Basic auth.
func NewClient(key, secret string, opts ...Option) (*Client, error) {
	urls, err := newURLBuilder(DefaultBaseURL)
	if err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		credentials: NewCredentials(key, secret),
		urls:        urls,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         discard,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// apiError is the error payload the exchange embeds in response bodies,
// sometimes under a 200 status.
type apiError struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

func (c *Client) get(u *url.URL, result interface{}) error {
	return c.do(http.MethodGet, u, nil, result)
}

func (c *Client) postForm(u *url.URL, form url.Values, result interface{}) error {
	return c.do(http.MethodPost, u, form, result)
}

func (c *Client) putForm(u *url.URL, form url.Values, result interface{}) error {
	return c.do(http.MethodPut, u, form, result)
}

func (c *Client) delete(u *url.URL, result interface{}) error {
	return c.do(http.MethodDelete, u, nil, result)
}

// do performs exactly one authenticated HTTP exchange. A non-nil form is
// sent as an application/x-www-form-urlencoded body.
func (c *Client) do(method string, u *url.URL, form url.Values, result interface{}) error {
	endpoint := u.Path

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return &Error{Kind: KindEncode, Endpoint: endpoint, Message: "building request", Err: err}
	}
	req.SetBasicAuth(c.credentials.Key(), c.credentials.Secret())
	req.Header.Set("User-Agent", userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    maskURL(u),
	}).Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Endpoint: endpoint, Message: "reading response body", Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    maskURL(u),
		"status": resp.StatusCode,
		"body":   truncateBody(respBody),
	}).Debug("received response")

	// The exchange reports rejections both as non-2xx statuses and as 2xx
	// bodies carrying an error field, so the body is inspected either way.
	var remote apiError
	if err := json.Unmarshal(respBody, &remote); err == nil && remote.Error != "" {
		return &Error{
			Kind:     KindRemote,
			Endpoint: endpoint,
			Code:     remote.ErrorCode,
			Message:  remote.Error,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:     KindRemote,
			Endpoint: endpoint,
			Message:  resp.Status + ": " + truncateBody(respBody),
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &Error{Kind: KindDecode, Endpoint: endpoint, Message: "unexpected response shape", Err: err}
	}
	return nil
}
