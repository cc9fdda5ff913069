// Package vetting fetches threat-intelligence data from the upstream
// providers and joins it into domain and email check results.
package vetting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
)

// Status is the per-source availability reported to callers.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnavailable Status = "unavailable"
)

// Result is what every adapter returns instead of an error. Data is the
// zero value whenever Available is false.
type Result[T any] struct {
	Data      T
	Available bool
}

func (r Result[T]) Status() Status {
	if r.Available {
		return StatusOK
	}
	return StatusUnavailable
}

func available[T any](data T) Result[T] { return Result[T]{Data: data, Available: true} }

func unavailable[T any]() Result[T] { return Result[T]{} }

// UpstreamRecorder observes the outcome of every upstream call.
type UpstreamRecorder interface {
	ObserveUpstream(source string, status Status)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(string, Status) {}

// Option configures an adapter.
type Option func(*options)

type options struct {
	log       logging.Logger
	recorder  UpstreamRecorder
	userAgent string
	client    *http.Client
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func WithRecorder(r UpstreamRecorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithHTTPClient overrides the HTTP client. Its Timeout is replaced by the
// adapter's configured timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

const defaultUserAgent = "CyberOmegaGuardian/1.0"

func buildOptions(timeout time.Duration, opts []Option) options {
	o := options{
		log:       logging.Default(),
		recorder:  nopRecorder{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	client := &http.Client{}
	if o.client != nil {
		c := *o.client
		client = &c
	}
	client.Timeout = timeout
	o.client = client
	return o
}

var (
	errMissingAPIKey = errors.New("api key not configured")
	errRateLimited   = errors.New("rate limited")
)

// statusError is a non-2xx upstream response other than 404.
type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("unexpected status %d", e.code) }

// getJSON issues a GET and decodes a 2xx body into out. It reports found=false
// with a nil error on 404 and leaves out untouched.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, out any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, errRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

// report records the outcome and logs failures without the queried value.
func (o options) report(source string, err error) {
	if err == nil {
		o.recorder.ObserveUpstream(source, StatusOK)
		return
	}
	o.recorder.ObserveUpstream(source, StatusUnavailable)
	o.log.Warn("upstream unavailable", logging.String("source", source), logging.Err(err))
}
