// SPDX-License-Identifier: MIT

// Package service runs calculator requests under the application's
// resource policy: a per-request deadline, a worker goroutine per
// calculation and bounded concurrency for batches.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/internal/config"
)

// tracerName names the OpenTelemetry tracer of this package.
const tracerName = "matcalc/service"

var (
	// ErrEmptyBatch is returned for a batch without requests.
	ErrEmptyBatch = errors.New("batch contains no requests")
	// ErrBatchTooLarge is returned when a batch exceeds the configured maximum.
	ErrBatchTooLarge = errors.New("batch exceeds the maximum size")
)

// Service is the calculation API used by the HTTP server and the CLI.
type Service interface {
	// Calculate runs one request under the configured timeout.
	Calculate(ctx context.Context, req calc.Request) (*calc.Result, error)

	// CalculateBatch decodes and runs every request concurrently. Item
	// failures are reported per item; the error covers the batch itself.
	CalculateBatch(ctx context.Context, reqs []calc.WireRequest) ([]Outcome, error)
}

// Outcome is the result of one batch item. Exactly one of Result and Err is set.
type Outcome struct {
	Index    int
	Result   *calc.Result
	Err      error
	Duration time.Duration
}

// Observer is notified after every calculation, successful or not.
// It must be safe for concurrent use.
type Observer func(op calc.Operation, d time.Duration, res *calc.Result, err error)

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithObserver registers an observer for completed calculations.
func WithObserver(o Observer) Option {
	return func(s *CalculatorService) { s.observer = o }
}

// CalculatorService implements Service on top of calc.Dispatcher.
type CalculatorService struct {
	dispatcher  *calc.Dispatcher
	timeout     time.Duration
	concurrency int
	maxBatch    int
	observer    Observer
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService builds the service from a validated configuration.
func NewCalculatorService(cfg config.AppConfig, opts ...Option) *CalculatorService {
	s := &CalculatorService{
		dispatcher:  calc.NewDispatcher(cfg.DispatcherOptions()...),
		timeout:     cfg.Timeout,
		concurrency: cfg.BatchConcurrency,
		maxBatch:    cfg.MaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Calculate runs req on its own goroutine and waits for the result or the
// deadline, whichever comes first. On timeout it returns
// context.DeadlineExceeded; the eigen solver observes the same context and
// stops at its next iteration.
func (s *CalculatorService) Calculate(ctx context.Context, req calc.Request) (*calc.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Calculate")
	defer span.End()
	span.SetAttributes(attribute.String("matcalc.operation", string(req.Operation)))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type reply struct {
		res *calc.Result
		err error
	}
	var (
		start = time.Now()
		done  = make(chan reply, 1)
	)
	go func() {
		res, err := s.dispatcher.Dispatch(ctx, req)
		done <- reply{res: res, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		r = reply{err: ctx.Err()}
	}
	if s.observer != nil {
		s.observer(req.Operation, time.Since(start), r.res, r.err)
	}
	if r.err != nil {
		span.RecordError(r.err)
		span.SetStatus(codes.Error, r.err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("matcalc.steps", len(r.res.Steps)),
			attribute.Bool("matcalc.approximate", r.res.Approximate),
		)
	}

	return r.res, r.err
}

// CalculateBatch runs up to the configured concurrency of items at once.
// Outcomes keep the order of reqs.
func (s *CalculatorService) CalculateBatch(ctx context.Context, reqs []calc.WireRequest) ([]Outcome, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if s.maxBatch > 0 && len(reqs) > s.maxBatch {
		return nil, ErrBatchTooLarge
	}

	var (
		g        errgroup.Group
		outcomes = make([]Outcome, len(reqs))
	)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i := range reqs {
		idx := i
		g.Go(func() error {
			start := time.Now()
			out := Outcome{Index: idx}
			req, err := reqs[idx].Decode()
			if err == nil {
				out.Result, out.Err = s.Calculate(ctx, req)
			} else {
				out.Err = err
			}
			out.Duration = time.Since(start)
			outcomes[idx] = out
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, nil
}

// MaxDimension reports the operand size bound of the underlying dispatcher.
func (s *CalculatorService) MaxDimension() int { return s.dispatcher.MaxDimension() }
