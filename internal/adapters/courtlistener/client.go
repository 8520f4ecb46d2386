// Package courtlistener searches published opinions on CourtListener
package courtlistener

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"caserelay/internal/core/sniff"
	perr "caserelay/internal/platform/errors"
	"caserelay/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://www.courtlistener.com/api/rest/v4"
	defaultTimeout = 15 * time.Second
	defaultLimit   = 5
	maxLimit       = 20
	maxBody        = 1 << 20
	excerptSize    = 256
)

var searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "caserelay_courtlistener_searches_total",
	Help: "CourtListener searches by outcome",
}, []string{"outcome"})

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
	// RatePerSec paces searches; 0 or negative disables pacing
	RatePerSec float64
}

// Opinion is one search hit reduced to the fields exports keep
type Opinion struct {
	CaseName     string `json:"case_name"`
	DateFiled    string `json:"date_filed,omitempty"`
	Court        string `json:"court,omitempty"`
	DocketNumber string `json:"docket_number,omitempty"`
	URL          string `json:"absolute_url,omitempty"`
	ClusterID    int64  `json:"cluster_id,omitempty"`
}

// SearchResult is one page of opinion hits for a query
type SearchResult struct {
	Query      string    `json:"search_query"`
	Total      int       `json:"total_results"`
	Results    []Opinion `json:"results"`
	SearchedAt time.Time `json:"searched_at"`
}

// Client is a minimal CourtListener search client
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
}

// NewClient creates a Client; an empty APIKey yields a disabled client
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = "caserelay/1.0"
	}
	var lim *rate.Limiter
	if o.RatePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), 1)
	}
	return &Client{
		http: &http.Client{
			Timeout: o.Timeout,
			// a 3xx is classified, not followed
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("courtlistener"),
		now:     time.Now,
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool { return c != nil && c.opts.APIKey != "" }

// raw hit shape; court is a name string in v4 and an object in v3
type hit struct {
	CaseName     string          `json:"caseName"`
	DateFiled    string          `json:"dateFiled"`
	Court        json.RawMessage `json:"court"`
	DocketNumber string          `json:"docketNumber"`
	AbsoluteURL  string          `json:"absolute_url"`
	ClusterID    int64           `json:"cluster_id"`
}

type searchResponse struct {
	Count   int   `json:"count"`
	Results []hit `json:"results"`
}

// Search looks up opinions matching caseName; limit is clamped to 1..20
func (c *Client) Search(ctx context.Context, caseName string, limit int) (SearchResult, error) {
	const op = "courtlistener.search"
	q := strings.TrimSpace(caseName)
	if q == "" {
		return SearchResult{}, perr.WithOp(perr.Validationf("case name is required"), op)
	}
	if !c.Enabled() {
		return SearchResult{}, perr.WithOp(perr.Configf("COURTLISTENER_API_KEY is not set"), op)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return SearchResult{}, c.fail(op, transportErr(err))
		}
	}

	v := url.Values{}
	v.Set("q", q)
	v.Set("type", "o")
	v.Set("format", "json")
	v.Set("page_size", strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/search/?"+v.Encode(), nil)
	if err != nil {
		return SearchResult{}, c.fail(op, perr.Wrap(err, perr.ErrorCodeUnknown, "courtlistener new request failed"))
	}
	req.Header.Set("Authorization", "Token "+c.opts.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("query", q).Msg("courtlistener transport error")
		return SearchResult{}, c.fail(op, transportErr(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return SearchResult{}, c.fail(op, transportErr(err))
	}
	c.log.Debug().Int("status", resp.StatusCode).Dur("latency", c.now().Sub(start)).Str("query", q).Msg("courtlistener response")

	var sr searchResponse
	if err := classify(resp.StatusCode, resp.Header.Get("Content-Type"), raw, &sr); err != nil {
		return SearchResult{}, c.fail(op, err)
	}
	searchesTotal.WithLabelValues("ok").Inc()

	out := SearchResult{Query: q, Total: sr.Count, Results: make([]Opinion, 0, len(sr.Results)), SearchedAt: c.now().UTC()}
	for _, h := range sr.Results {
		out.Results = append(out.Results, Opinion{
			CaseName:     h.CaseName,
			DateFiled:    h.DateFiled,
			Court:        courtName(h.Court),
			DocketNumber: h.DocketNumber,
			URL:          h.AbsoluteURL,
			ClusterID:    h.ClusterID,
		})
	}
	return out, nil
}

func (c *Client) fail(op string, err error) error {
	searchesTotal.WithLabelValues(perr.CodeOf(err).String()).Inc()
	return perr.WithOp(err, op)
}

func courtName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		FullName string `json:"full_name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.FullName
	}
	return ""
}

func classify(status int, contentType string, raw []byte, out any) error {
	if len(raw) > maxBody {
		return perr.Malformedf("CourtListener response exceeded %d bytes", maxBody)
	}
	if sniff.IsMarkup(raw, contentType) {
		return perr.WithDetail(perr.Malformedf("CourtListener returned an HTML page instead of JSON (status %d)", status), sniff.Excerpt(raw, excerptSize))
	}
	switch {
	case status >= 200 && status < 300:
		if err := json.Unmarshal(raw, out); err != nil {
			return perr.WithDetail(perr.Wrap(err, perr.ErrorCodeMalformedResponse, "CourtListener returned a body that is not valid JSON"), sniff.Excerpt(raw, excerptSize))
		}
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return perr.Unauthorizedf("CourtListener rejected the API key")
	case status == http.StatusNotFound:
		return perr.NotFoundf("CourtListener search endpoint not found")
	case status == http.StatusTooManyRequests:
		return perr.Newf(perr.ErrorCodeTooManyRequests, "CourtListener rate limit exceeded")
	case status == http.StatusBadRequest:
		return perr.WithDetail(perr.Validationf("CourtListener rejected the query"), sniff.Excerpt(raw, excerptSize))
	default:
		return perr.WithDetail(perr.Upstreamf("CourtListener returned status %d", status), sniff.Excerpt(raw, excerptSize))
	}
}

func transportErr(err error) error {
	var ne net.Error
	switch {
	case stderrs.Is(err, context.DeadlineExceeded), stderrs.As(err, &ne) && ne.Timeout():
		return perr.Wrap(err, perr.ErrorCodeTimeout, "CourtListener request timed out")
	default:
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "Network error while calling CourtListener")
	}
}
