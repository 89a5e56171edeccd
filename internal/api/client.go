package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/rs/zerolog"
)

// DefaultPageSize is the number of sessions requested per GetSessions page.
const DefaultPageSize = 100

const maxErrorBody = 64 << 10

// Options configures a Client. Zero values fall back to the defaults below.
type Options struct {
	HTTPClient        *http.Client
	UserAgent         string
	Timeout           time.Duration
	RateLimit         float64
	RateBurst         int
	DegradedThreshold int
	Logger            zerolog.Logger
}

// Client issues the Panopto JSON requests. Each call is attempted exactly
// once; there is no retry.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *rateLimiter
	health    *serverHealth
	log       zerolog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		jar, _ := cookiejar.New(nil)
		hc = &http.Client{Jar: jar, Timeout: timeout}
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.RateBurst < 1 {
		opts.RateBurst = 10
	}
	if opts.DegradedThreshold < 1 {
		opts.DegradedThreshold = 5
	}
	return &Client{
		http:      hc,
		userAgent: opts.UserAgent,
		limiter:   newRateLimiter(opts.RateLimit, opts.RateBurst),
		health:    newServerHealth(opts.DegradedThreshold),
		log:       opts.Logger,
	}
}

// Get sends one GET for a resource outside the JSON API, such as an HLS
// playlist on the CDN, through the same limiter and request log.
// The caller closes the returned response body.
func (c *Client) Get(ctx context.Context, label, rawURL string) (*http.Response, error) {
	return c.do(ctx, label, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
}

// do is the single gateway for every outbound request. It waits on the
// rate limiter, sends the request exactly once, tracks consecutive
// server-side failures and logs the outcome. label names the endpoint in
// log entries. The caller closes the returned response body.
func (c *Client) do(ctx context.Context, label string, makeReq func() (*http.Request, error)) (*http.Response, error) {
	waited, err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate limiter cancelled for %s: %w", label, err)
	}
	if waited > time.Millisecond {
		c.logRateLimitWait(label, waited)
	}

	req, err := makeReq()
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		// Network errors say nothing about server health.
		c.logRequest(label, 0, duration, c.health.State().String(), err)
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		prev, next := c.health.RecordFailure()
		if prev != next {
			c.logServerStateChange(EventServerDegraded, label, prev, next)
		}
		c.logRequest(label, resp.StatusCode, duration, next.String(), fmt.Errorf("HTTP %s", resp.Status))
		return resp, nil
	}

	if prev := c.health.RecordSuccess(); prev != serverHealthy {
		c.logServerStateChange(EventServerRecovered, label, prev, serverHealthy)
	}
	c.logRequest(label, resp.StatusCode, duration, serverHealthy.String(), nil)
	return resp, nil
}

// fetchJSON performs one request and decodes the JSON body into out.
// A non-200 response is still handed back when its body carries an error
// envelope, so the classifier can report the server's own message.
func (c *Client) fetchJSON(ctx context.Context, label string, makeReq func() (*http.Request, error), out model.Enveloped) error {
	resp, err := c.do(ctx, label, makeReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(body, out) == nil && out.Envelope().HasErrorCode() {
			return nil
		}
		return fmt.Errorf("API %s failed: %s", label, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("API %s: decode response: %w", label, err)
	}
	return nil
}

// DeliveryInfo fetches the raw delivery payload for one session.
func (c *Client) DeliveryInfo(ctx context.Context, v *VideoURL) (*model.DeliveryInfoResponse, error) {
	form := url.Values{}
	form.Set("deliveryId", v.ID)
	form.Set("responseType", "json")
	encoded := form.Encode()
	endpoint := v.DeliveryInfoURL()

	var obj model.DeliveryInfoResponse
	err := c.fetchJSON(ctx, "delivery.info", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, &obj)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// FolderInfo fetches a folder's display name.
func (c *Client) FolderInfo(ctx context.Context, f *FolderURL) (*model.FolderInfoResponse, error) {
	body, err := json.Marshal(map[string]string{"folderID": f.ID})
	if err != nil {
		return nil, err
	}
	var obj model.FolderInfoResponse
	if err := c.postJSON(ctx, "folder.info", f.FolderInfoURL(), body, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

type sessionsQuery struct {
	FolderID         string `json:"folderID"`
	Page             int    `json:"page"`
	MaxResults       int    `json:"maxResults"`
	IncludePlaylists bool   `json:"includePlaylists"`
	GetFolderData    bool   `json:"getFolderData"`
	ResponseType     string `json:"responseType"`
}

// Sessions fetches one zero-based page of a folder's sessions.
func (c *Client) Sessions(ctx context.Context, f *FolderURL, page, pageSize int) (*model.SessionsResponse, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	body, err := json.Marshal(map[string]sessionsQuery{
		"queryParameters": {
			FolderID:         f.ID,
			Page:             page,
			MaxResults:       pageSize,
			IncludePlaylists: true,
			GetFolderData:    true,
			ResponseType:     "json",
		},
	})
	if err != nil {
		return nil, err
	}
	var obj model.SessionsResponse
	if err := c.postJSON(ctx, "folder.sessions#"+strconv.Itoa(page), f.SessionsURL(), body, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (c *Client) postJSON(ctx context.Context, label, endpoint string, body []byte, out model.Enveloped) error {
	return c.fetchJSON(ctx, label, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, out)
}
