// Package httpx contains the http plumbing shared by market data providers.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Options configure a Client. Zero values use the defaults.
type Options struct {
	RateLimit float64       // requests per second, 5 by default
	Timeout   time.Duration // per request, 10s by default
	Failures  uint32        // consecutive failures that open the circuit, 3 by default
	Cooldown  time.Duration // time the circuit stays open, 30s by default
}

func (o Options) withDefaults() Options {
	if o.RateLimit <= 0 {
		o.RateLimit = 5
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.Failures == 0 {
		o.Failures = 3
	}
	if o.Cooldown <= 0 {
		o.Cooldown = 30 * time.Second
	}
	return o
}

// StatusError is returned for a non 200 http response.
type StatusError struct {
	Code   int
	Status string
	Host   string
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v%v: %v", e.Host, e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 http response.
func IsNotFound(err error) bool {
	var s *StatusError
	return errors.As(err, &s) && s.Code == http.StatusNotFound
}

// Client performs rate limited GET requests behind a circuit breaker.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New creates a Client, name identifies the remote service in logs.
func New(name string, opts Options) *Client {
	opts = opts.withDefaults()
	st := gobreaker.Settings{Name: name, Timeout: opts.Cooldown}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= opts.Failures }
	// Client errors and calls abandoned by the caller say nothing about the
	// health of the service.
	st.IsSuccessful = func(err error) bool {
		var s *StatusError
		var a abandonedError
		return err == nil || errors.As(err, &a) ||
			errors.As(err, &s) && s.Code < 500 && s.Code != http.StatusTooManyRequests
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("service", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// Get performs an http GET request and returns the response body.
func (c *Client) Get(ctx context.Context, addr string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, abandoned(ctx, err)
		}
		defer resp.Body.Close()
		log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
		if resp.StatusCode != http.StatusOK {
			return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Host: req.URL.Host, Path: req.URL.Path}
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return nil, abandoned(ctx, err)
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// abandonedError wraps the error of a request whose context is done.
type abandonedError struct{ err error }

func (e abandonedError) Error() string { return e.err.Error() }
func (e abandonedError) Unwrap() error { return e.err }

// abandoned marks err as caused by the caller when ctx is done. A client
// timeout with a live ctx stays a failure of the service.
func abandoned(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return abandonedError{err}
	}
	return err
}

// GetJSON performs an http GET request and unmarshals the JSON response into data.
func (c *Client) GetJSON(ctx context.Context, addr string, data interface{}) error {
	body, err := c.Get(ctx, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
