package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-querystring/query"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxAttempts   = 4
	defaultRetryInterval = 500 * time.Millisecond
	defaultMaxInterval   = 5 * time.Second

	userAgent   = "golf-backend/1.0"
	snippetSize = 240
)

// ErrUnavailable is matched (errors.Is) by every *Error produced after the
// retry budget was spent on transient failures.
var ErrUnavailable = errors.New("upstream unavailable")

// Error is the terminal result of a failed Gateway call.
type Error struct {
	Provider   string
	Path       string
	StatusCode int
	Attempts   int
	Exhausted  bool
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed after %d attempt(s)", e.Provider, e.Path, e.Attempts)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Exhausted {
		return []error{ErrUnavailable, e.Err}
	}
	return []error{e.Err}
}

type Options struct {
	Name          string
	BaseURL       string
	Header        http.Header
	Query         url.Values
	Timeout       time.Duration
	MaxAttempts   int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	HTTPClient    *http.Client
}

// Gateway performs JSON GET requests against one provider with a bounded
// exponential-backoff retry policy.
type Gateway struct {
	name          string
	baseURL       string
	header        http.Header
	query         url.Values
	client        *http.Client
	maxAttempts   int
	retryInterval time.Duration
	maxInterval   time.Duration
}

func NewGateway(opts Options) *Gateway {
	g := &Gateway{
		name:          opts.Name,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		header:        opts.Header.Clone(),
		query:         opts.Query,
		client:        opts.HTTPClient,
		maxAttempts:   opts.MaxAttempts,
		retryInterval: opts.RetryInterval,
		maxInterval:   opts.MaxInterval,
	}
	if g.header == nil {
		g.header = http.Header{}
	}
	if g.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		g.client = &http.Client{Timeout: timeout}
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = defaultMaxAttempts
	}
	if g.retryInterval <= 0 {
		g.retryInterval = defaultRetryInterval
	}
	if g.maxInterval < g.retryInterval {
		g.maxInterval = defaultMaxInterval
		if g.maxInterval < g.retryInterval {
			g.maxInterval = g.retryInterval
		}
	}
	if g.name == "" {
		g.name = g.baseURL
	}
	return g
}

// attemptError describes one failed attempt; transient ones are retried.
type attemptError struct {
	status    int
	transient bool
	err       error
}

func (e *attemptError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("status %d: %v", e.status, e.err)
	}
	return e.err.Error()
}

func (e *attemptError) Unwrap() error { return e.err }

// Get requests path with params and decodes the JSON body into out. params may
// be nil, url.Values, map[string]string, or a struct with `url` tags.
func (g *Gateway) Get(ctx context.Context, path string, params any, out any) error {
	reqURL, err := g.buildURL(path, params)
	if err != nil {
		return &Error{Provider: g.name, Path: path, Err: err}
	}

	attempts := 0
	operation := func() error {
		attempts++
		err := g.do(ctx, reqURL, out)
		if err == nil {
			return nil
		}
		var ae *attemptError
		if errors.As(err, &ae) && ae.transient {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.retryInterval
	policy.MaxInterval = g.maxInterval
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		log.Printf("[upstream] %s %s attempt %d/%d failed: %v (retrying in %s)",
			g.name, path, attempts, g.maxAttempts, err, wait.Round(time.Millisecond))
	}

	err = backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(g.maxAttempts-1)), ctx),
		notify,
	)
	if err == nil {
		return nil
	}

	result := &Error{Provider: g.name, Path: path, Attempts: attempts, Err: err}
	var ae *attemptError
	if errors.As(err, &ae) {
		result.StatusCode = ae.status
		result.Exhausted = ae.transient
	}
	log.Printf("[upstream] %v", result)
	return result
}

func (g *Gateway) do(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for k, vs := range g.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &attemptError{transient: true, err: err}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, snippetSize))
		return &attemptError{
			status:    resp.StatusCode,
			transient: isTransientStatus(resp.StatusCode),
			err:       fmt.Errorf("body=%q", string(b)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isTransientStatus(status int) bool {
	return status >= 500 || status == http.StatusRequestTimeout || status == http.StatusTooManyRequests
}

func (g *Gateway) buildURL(path string, params any) (string, error) {
	u, err := url.Parse(g.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid upstream url: %w", err)
	}

	extra, err := encodeParams(params)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for k, vs := range g.query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	for k, vs := range extra {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func encodeParams(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		v := make(url.Values, len(p))
		for k, s := range p {
			v.Set(k, s)
		}
		return v, nil
	default:
		v, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query params: %w", err)
		}
		return v, nil
	}
}
