// Package notion is the request dispatcher for the Notion REST API
// Every call carries the bearer credential and a pinned Notion-Version header.
// Non-2xx answers are classified into the platform error taxonomy; nothing is retried here
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"caserelay/internal/adapters/credential"
	"caserelay/internal/core/sniff"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://api.notion.com/v1"
	versionDefault = "2025-09-03"
	defaultTimeout = 30 * time.Second
	defaultUA      = "caserelay/1.0"

	// DefaultRatePerSec matches the average request rate the upstream allows per integration
	DefaultRatePerSec = 3.0

	// a 100 record query page with long rich text runs to several MiB
	maxBody      = 32 << 20
	maxErrorBody = 1 << 20
	excerptSize  = 512
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Version   string
	UserAgent string
	Timeout   time.Duration

	// RatePerSec paces outgoing calls client side; 0 uses the default, negative disables
	RatePerSec float64
}

// Dispatcher performs one authenticated call and decodes a 2xx body into out
// Implemented by *Client; services depend on this seam so tests can count calls
type Dispatcher interface {
	Dispatch(ctx context.Context, method, path string, body, out any) error
}

// Client is a minimal Notion REST client
type Client struct {
	http    *http.Client
	opts    Options
	creds   credential.Provider
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options, creds credential.Provider) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Version == "" {
		o.Version = versionDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RatePerSec == 0 {
		o.RatePerSec = DefaultRatePerSec
	}
	var lim *rate.Limiter
	if o.RatePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), 1)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout, CheckRedirect: noRedirects},
		opts:    o,
		creds:   creds,
		limiter: lim,
		log:     *logger.Named("notion"),
		now:     time.Now,
	}
}

// noRedirects hands a 3xx back to classify. Following it would resend
// non-idempotent calls such as POST /pages.
func noRedirects(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

// bodyLimit is the largest body read for status
func bodyLimit(status int) int {
	if status >= 200 && status < 300 {
		return maxBody
	}
	return maxErrorBody
}

// Version returns the pinned Notion-Version header value
func (c *Client) Version() string { return c.opts.Version }

// Dispatch issues method against path (relative to BaseURL) with an optional JSON body
func (c *Client) Dispatch(ctx context.Context, method, path string, body, out any) error {
	endpoint := endpointLabel(path)
	op := "notion " + method + " " + endpoint

	cred, err := c.creds.Credential(ctx)
	if err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.WithOp(perr.Wrap(err, perr.ErrorCodeValidation, "Invalid request data: body is not encodable"), op)
		}
		rdr = bytes.NewReader(b)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			observe(method, endpoint, outcomeOf(transportErr(err)), 0)
			return perr.WithOp(transportErr(err), op)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, rdr)
	if err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnknown, "notion new request failed"), op)
	}
	req.Header.Set("Authorization", "Bearer "+cred.Value())
	req.Header.Set("Notion-Version", c.opts.Version)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		cerr := transportErr(err)
		observe(method, endpoint, outcomeOf(cerr), lat)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Dur("latency", lat).Msg("notion transport error")
		return perr.WithOp(cerr, op)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, int64(bodyLimit(resp.StatusCode))+1))
	if err != nil {
		cerr := transportErr(err)
		observe(method, endpoint, outcomeOf(cerr), lat)
		return perr.WithOp(cerr, op)
	}

	// Always log lightweight response metadata
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Str("request_id", resp.Header.Get("X-Request-Id")).
		Str("token", cred.String()).
		Msg("notion http response")

	cerr := classify(resp.StatusCode, resp.Header, raw, out)
	observe(method, endpoint, outcomeOf(cerr), lat)
	if cerr != nil {
		return perr.WithOp(cerr, op)
	}
	return nil
}

// classify maps a complete response onto the error taxonomy and decodes 2xx bodies into out
func classify(status int, h http.Header, raw []byte, out any) error {
	if limit := bodyLimit(status); len(raw) > limit {
		return perr.WithDetail(perr.Malformedf("Notion API response exceeded %d bytes (status %d)", limit, status), sniff.Excerpt(raw, excerptSize))
	}
	if sniff.IsMarkup(raw, h.Get("Content-Type")) {
		return perr.WithDetail(
			perr.Malformedf("Notion API returned an HTML page instead of JSON (status %d)", status),
			sniff.Excerpt(raw, excerptSize),
		)
	}

	if status >= 200 && status < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return perr.WithDetail(perr.Wrap(err, perr.ErrorCodeMalformedResponse, "Notion API returned a body that is not valid JSON"), sniff.Excerpt(raw, excerptSize))
		}
		return nil
	}

	apiErr := parseAPIError(status, raw)
	msg := apiErr.Message
	var err error
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		err = perr.Wrap(apiErr, perr.ErrorCodeUnauthorized, msg)
	case http.StatusNotFound:
		err = perr.Wrap(apiErr, perr.ErrorCodeNotFound, msg)
	case http.StatusBadRequest:
		err = perr.Wrap(apiErr, perr.ErrorCodeValidation, msg)
	case http.StatusTooManyRequests:
		if ra, convErr := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After"))); convErr == nil && ra > 0 {
			apiErr.RetryAfter = ra
			msg += " (retry after " + strconv.Itoa(ra) + "s)"
		}
		err = perr.Wrap(apiErr, perr.ErrorCodeTooManyRequests, msg)
	default:
		err = perr.Wrap(apiErr, perr.ErrorCodeUpstream, msg)
	}
	return perr.WithDetail(err, sniff.Excerpt(raw, excerptSize))
}

// transportErr classifies failures where no HTTP response was read
func transportErr(err error) error {
	var ne net.Error
	switch {
	case stderrs.Is(err, context.DeadlineExceeded), stderrs.As(err, &ne) && ne.Timeout():
		return perr.Wrap(err, perr.ErrorCodeTimeout, "Notion API request timed out")
	case stderrs.Is(err, context.Canceled):
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "Notion API request was canceled")
	default:
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "Network error while calling Notion API")
	}
}
