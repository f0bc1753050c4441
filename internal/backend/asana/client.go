// Package asana implements the service.Service interface using the Asana REST API.
package asana

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"asana/internal/config"
	"asana/internal/service"
)

const (
	// MaxAttempts bounds the tries of one request. Only transport failures are retried.
	MaxAttempts = 2

	// authURL completes the OAuth endpoint; refreshes only use the token URL.
	authURL = "https://app.asana.com/-/oauth_authorize"
)

// Client implements service.Service using the Asana API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string // empty when bearer auth is used
	timeout time.Duration
	backoff gax.Backoff
	log     *zap.Logger
}

// New creates a new Asana client from cfg.
// An API key uses HTTP Basic auth; an access token or complete OAuth refresh
// credentials use bearer auth.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}

	base := &http.Client{
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}

	c := &Client{
		http:    base,
		baseURL: cfg.BaseURL,
		timeout: cfg.RequestTimeout(),
		backoff: gax.Backoff{Initial: 200 * time.Millisecond, Max: 2 * time.Second, Multiplier: 2},
		log:     log,
	}

	// oauth2 wraps the transport of the client stored in the context and
	// fetches tokens with that client, so its timeout bounds each refresh.
	tokenClient := &http.Client{Transport: base.Transport, Timeout: c.timeout}
	oauthCtx := context.WithValue(ctx, oauth2.HTTPClient, tokenClient)
	switch {
	case cfg.OAuth.Complete():
		tokenURL := cfg.OAuth.TokenURL
		if tokenURL == "" {
			tokenURL = config.DefaultTokenURL
		}
		oc := &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			Endpoint:     oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL},
		}
		c.http = oauth2.NewClient(oauthCtx, oc.TokenSource(oauthCtx, &oauth2.Token{RefreshToken: cfg.OAuth.RefreshToken}))
		log.Debug("auth", zap.String("mode", "oauth-refresh"))
	case cfg.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		c.http = oauth2.NewClient(oauthCtx, ts)
		log.Debug("auth", zap.String("mode", "bearer"))
	default:
		c.apiKey = cfg.APIKey
		log.Debug("auth", zap.String("mode", "basic"))
	}

	return c, nil
}

// Get performs a GET request and returns the JSON response body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a form-encoded POST request and returns the JSON response body.
func (c *Client) Post(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, form)
}

// Put performs a form-encoded PUT request and returns the JSON response body.
func (c *Client) Put(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, form)
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (json.RawMessage, error) {
	var body json.RawMessage
	attempt := 0
	err := gax.Invoke(ctx, func(ctx context.Context, _ gax.CallSettings) error {
		attempt++
		var err error
		body, err = c.roundTrip(ctx, method, path, form, attempt)
		return err
	}, gax.WithRetry(func() gax.Retryer {
		return &transportRetryer{backoff: c.backoff, max: MaxAttempts}
	}))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// roundTrip performs one attempt bounded by the request timeout.
func (c *Client) roundTrip(ctx context.Context, method, path string, form url.Values, attempt int) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, "")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return nil, &service.TransportError{Err: err}
	}
	defer res.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Int("attempt", attempt),
		zap.Duration("took", time.Since(start)))

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, remoteError(res.StatusCode, err)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &service.TransportError{Err: err}
	}
	if !json.Valid(data) {
		return nil, &service.DecodeError{Err: fmt.Errorf("%s %s: malformed JSON body", method, path)}
	}
	return data, nil
}

// transportRetryer allows up to max attempts, and only for transport failures.
type transportRetryer struct {
	backoff  gax.Backoff
	attempts int
	max      int
}

func (r *transportRetryer) Retry(err error) (time.Duration, bool) {
	r.attempts++
	if r.attempts >= r.max {
		return 0, false
	}
	var te *service.TransportError
	if !errors.As(err, &te) || errors.Is(err, context.Canceled) {
		return 0, false
	}
	return r.backoff.Pause(), true
}

// remoteError converts a failed status check into a service.RemoteError.
func remoteError(status int, err error) error {
	re := &service.RemoteError{Status: status}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		re.Body = gerr.Body
	}
	re.Message = envelopeMessage(re.Body)
	return re
}

// envelopeMessage extracts the first message of an Asana error body:
// {"errors": [{"message": "..."}]}.
func envelopeMessage(body string) string {
	var env struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ""
	}
	for _, e := range env.Errors {
		if e.Message != "" {
			return e.Message
		}
	}
	return ""
}
