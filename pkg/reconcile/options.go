package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/costops/fleetbook/internal/matcher"
	"github.com/costops/fleetbook/pkg/errors"
)

// options configures a Reconciler.
type options struct {
	threshold   int
	excludePool bool
	logger      *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		threshold:   matcher.DefaultThreshold,
		excludePool: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithThreshold sets the minimum fuzzy match score (1..100).
func WithThreshold(threshold int) Option {
	return func(o *options) error {
		if threshold < 1 || threshold > 100 {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   threshold,
				Message: "must be between 1 and 100",
			}
		}
		o.threshold = threshold
		return nil
	}
}

// WithExcludePool controls whether pool vehicles are kept out of the
// missing-in-HR report. Pool cars have no HR record on purpose.
func WithExcludePool(exclude bool) Option {
	return func(o *options) error {
		o.excludePool = exclude
		return nil
	}
}

// WithLogger sets a fixed logger, overriding the one from the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "must not be nil"}
		}
		o.logger = logger
		return nil
	}
}
