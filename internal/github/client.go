package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

type Client struct {
	Client *github.Client
	HTTP   *http.Client
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr) so
	// structured output on stdout stays clean and tests can capture logs.
	writer io.Writer
	// maxRetryAfter bounds how long the retry transport is willing to sleep when
	// the API answers with a Retry-After header.
	maxRetryAfter time.Duration
	sleep         func(context.Context, time.Duration) error
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// WithMaxRetryAfter caps the Retry-After delay the client will honor.
func WithMaxRetryAfter(d time.Duration) Option {
	return func(o *options) {
		o.maxRetryAfter = d
	}
}

// withSleep is a test seam for the retry transport.
func withSleep(fn func(context.Context, time.Duration) error) Option {
	return func(o *options) {
		o.sleep = fn
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// retryAfterRoundTripper retries a request exactly once when the API responds
// 403 or 429 with a Retry-After header. A second rate-limited response is
// returned as-is and surfaces as a normal request failure.
type retryAfterRoundTripper struct {
	base     http.RoundTripper
	maxDelay time.Duration
	sleep    func(context.Context, time.Duration) error
}

func (t *retryAfterRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	delay, ok := retryAfterDelay(resp)
	if !ok || delay > t.maxDelay {
		return resp, nil
	}

	// Only idempotent reads are retried; everything this tool issues is a GET,
	// but guard anyway.
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return resp, nil
	}

	// Drain and release the throttled response before reissuing.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if err := t.sleep(req.Context(), delay); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

func retryAfterDelay(resp *http.Response) (time.Duration, bool) {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return 0, false
	}
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0, false
	}
	// +1s of slack so the retry lands after the window actually reopens.
	return time.Duration(seconds+1) * time.Second, true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{
		maxRetryAfter: 2 * time.Minute,
		sleep:         sleepCtx,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	transport = &retryAfterRoundTripper{base: transport, maxDelay: o.maxRetryAfter, sleep: o.sleep}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	// Always provide an http.Client so verbose logging works even without a token.
	tc := &http.Client{Transport: transport}

	return &Client{
		Client: github.NewClient(tc),
		HTTP:   tc,
	}, nil
}
