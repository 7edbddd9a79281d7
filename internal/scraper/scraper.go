package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/akulij/zkparser/internal/logger"
	"github.com/akulij/zkparser/internal/network"
)

const (
	UserAgent          = "zkparser/1.0"
	Timeout            = 20 * time.Second
	DefaultMaxAttempts = 5
)

var tracer = otel.Tracer("zkparser/internal/scraper")

// RetryPolicy decides how often and on which errors a fetch is repeated
type RetryPolicy struct {
	// MaxAttempts counts the first request; zero selects DefaultMaxAttempts
	// and negative values mean a single attempt.
	MaxAttempts int
	// Wait is the pause between attempts.
	Wait time.Duration
	// Retryable reports whether a failed attempt may be repeated.
	Retryable func(error) bool
}

// DefaultRetryPolicy retries read timeouts up to five attempts with no delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Retryable:   IsTimeout,
	}
}

// IsTimeout reports whether err is a network or client timeout
func IsTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Options configures a Scraper. Zero values select the defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Retry     RetryPolicy
	// Transport replaces the HTTP transport, mainly for tests.
	Transport http.RoundTripper
	Logger    *logger.Logger
	Metrics   *logger.Metrics
}

// Scraper fetches report pages for one checker site
type Scraper struct {
	client  *resty.Client
	baseURL string
	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates a Scraper
func New(opts Options) *Scraper {
	if opts.BaseURL == "" {
		opts.BaseURL = network.DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	switch {
	case opts.Retry.MaxAttempts == 0:
		opts.Retry.MaxAttempts = DefaultMaxAttempts
	case opts.Retry.MaxAttempts < 1:
		opts.Retry.MaxAttempts = 1
	}
	if opts.Retry.Retryable == nil {
		opts.Retry.Retryable = IsTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = logger.DefaultMetrics()
	}

	s := &Scraper{
		baseURL: opts.BaseURL,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}

	client := resty.New()
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	client.SetLogger(opts.Logger)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetRetryCount(opts.Retry.MaxAttempts - 1)
	client.SetRetryWaitTime(opts.Retry.Wait)
	client.SetRetryMaxWaitTime(opts.Retry.Wait)

	retryable := opts.Retry.Retryable
	client.AddRetryCondition(func(_ *resty.Response, err error) bool {
		return err != nil && retryable(err)
	})
	client.OnBeforeRequest(s.onBeforeRequest)

	s.client = client
	return s
}

func (s *Scraper) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	s.metrics.IncrCounter("fetch.attempts")
	if req.Attempt > 1 {
		s.metrics.IncrCounter("fetch.retries")
	}
	s.log.Debug("requesting report page", logger.Fields{
		"url":     req.URL,
		"attempt": req.Attempt,
	})
	return nil
}

// Fetch returns the raw report page for wallet on network n.
//
// The status code is not inspected. After the last failed attempt the
// underlying error is returned wrapped, so IsTimeout still recognises it.
func (s *Scraper) Fetch(ctx context.Context, wallet, accessCode string, n network.Network) (string, error) {
	url, err := network.URLFor(s.baseURL, wallet, accessCode, n)
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "scraper.Fetch", trace.WithAttributes(
		attribute.String("network", n.String()),
	))
	defer span.End()

	start := time.Now()
	res, err := s.client.R().SetContext(ctx).Get(url)
	s.metrics.RecordTiming("fetch."+n.String(), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch report page")
		s.log.Error("fetching report page failed", logger.Fields{
			"network": n.String(),
			"timeout": IsTimeout(err),
		}, err)
		return "", fmt.Errorf("fetching %s page: %w", n, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if !res.IsSuccess() {
		s.log.Warn("report page returned non-2xx status", logger.Fields{
			"network": n.String(),
			"status":  res.StatusCode(),
		})
	}

	return string(res.Body()), nil
}

// Close releases idle connections held by the client
func (s *Scraper) Close() {
	s.client.GetClient().CloseIdleConnections()
}
