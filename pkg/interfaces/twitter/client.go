package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ClientOption allows for customization of the client
type ClientOption func(*TwitterClient)

// WithRateLimiter replaces the limiter built from the config.
func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *TwitterClient) {
		c.limiter = limiter
	}
}

// WithNow replaces the clock used when a rate limit reset is missing.
func WithNow(now func() time.Time) ClientOption {
	return func(c *TwitterClient) {
		c.now = now
	}
}

type TwitterClient struct {
	config  *TwitterConfig
	auth    *Authenticator
	logger  *logrus.Logger
	limiter *rate.Limiter
	now     func() time.Time
}

// NewTwitterClient creates a new Twitter API client
func NewTwitterClient(config *TwitterConfig, opts ...ClientOption) (*TwitterClient, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	auth, err := NewAuthenticator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	client := &TwitterClient{
		config:  config,
		auth:    auth,
		logger:  config.Logger,
		limiter: rate.NewLimiter(rate.Every(config.RequestInterval()), 1),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// handleResponse turns non-2xx answers into an *APIError, or a
// *RateLimitError on 429.
func (c *TwitterClient) handleResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    defaultErrorMessage,
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case len(errResp.Errors) > 0:
			apiErr.Code = errResp.Errors[0].Code
			apiErr.Message = errResp.Errors[0].Message
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		}
	}

	c.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"error_code":  apiErr.Code,
		"message":     apiErr.Message,
	}).Debug("Twitter API error")

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			APIError: apiErr,
			Reset:    c.rateLimitReset(resp.Header),
		}
	}
	return apiErr
}

// rateLimitReset reads the epoch seconds of the x-rate-limit-reset header,
// falling back to one full rate window from now.
func (c *TwitterClient) rateLimitReset(header http.Header) time.Time {
	if v := header.Get("x-rate-limit-reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0)
		}
	}
	return c.now().Add(time.Duration(c.config.RateWindow) * time.Minute)
}

// makeRequest sends params as the query string of GET requests and as a
// form body otherwise. The response is decoded into out when not nil.
func (c *TwitterClient) makeRequest(ctx context.Context, method, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	fullURL := c.config.GetEndpoint(endpoint)
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			fullURL += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	// OAuth 1.0a client will handle the authentication headers
	resp, err := c.auth.GetClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.handleResponse(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
