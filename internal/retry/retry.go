// Package retry provides bounded retry with exponential backoff.
// It is the only place in the pipeline allowed to sleep for wall-clock
// delay; every caller gets its own independent budget.
package retry

import (
	"errors"
	"fmt"
	"time"
)

// Default retry configuration values.
const (
	DefaultMaxAttempts       = 3
	DefaultInitialDelay      = 1 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Config bounds a retried operation.
type Config struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	BackoffMultiplier float64

	sleep func(time.Duration)
}

// DefaultConfig returns the standard retry budget.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       DefaultMaxAttempts,
		InitialDelay:      DefaultInitialDelay,
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// WithSleep returns a copy of cfg that sleeps through fn instead of
// time.Sleep. Test hook.
func (c Config) WithSleep(fn func(time.Duration)) Config {
	c.sleep = fn
	return c
}

// ErrExhausted marks a retry budget that ran out.
var ErrExhausted = errors.New("retry budget exhausted")

// ExhaustedError reports which operation ran out of attempts and carries
// the last underlying error.
type ExhaustedError struct {
	Op       string
	Attempts int
	cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to %s after %d attempts: %v", e.Op, e.Attempts, e.cause)
}

func (e *ExhaustedError) Unwrap() error { return e.cause }

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Do runs op up to cfg.MaxAttempts times. Between failed attempts it
// sleeps for a delay starting at cfg.InitialDelay and multiplied by
// cfg.BackoffMultiplier after each failure; it never sleeps after the
// last attempt. Every error from op counts as a retryable failure. If
// all attempts fail, Do returns an *ExhaustedError naming op.
func Do[T any](op func() (T, error), cfg Config, name string) (T, error) {
	sleep := cfg.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	delay := cfg.InitialDelay
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		v, err := op()
		if err == nil {
			return v, nil
		}
		lastErr = err
		if attempt < cfg.MaxAttempts {
			sleep(delay)
			delay = time.Duration(float64(delay) * cfg.BackoffMultiplier)
		}
	}

	var zero T
	return zero, &ExhaustedError{Op: name, Attempts: cfg.MaxAttempts, cause: lastErr}
}
