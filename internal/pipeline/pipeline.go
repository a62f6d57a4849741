// Package pipeline sequences one run of the daily mentor flow: generate a
// quote, validate it, deliver it. Both provider calls are wrapped in the
// retry executor; no step is skipped or reordered.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dailymentor/dailymentor/internal/errs"
	"github.com/dailymentor/dailymentor/internal/retry"
)

// State identifies where a run is in the flow. A run moves strictly
// Idle → Generating → Validating → Delivering → Done, with Failed reachable
// from Generating, Validating, and Delivering.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateValidating State = "validating"
	StateDelivering State = "delivering"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Generator produces one short quote per call.
type Generator interface {
	GenerateQuote(ctx context.Context) (string, error)
}

// Deliverer sends one text message per call to the configured destination.
type Deliverer interface {
	SendQuote(ctx context.Context, text string) error
}

// Outcome describes the result of a single run. It exists only for the
// duration of one invocation and is consumed by logging and the exit code.
type Outcome struct {
	State     State
	Quote     string
	Delivered bool
	Err       error
}

// Pipeline orchestrates the generate → validate → deliver flow. It holds
// no per-run state, so the same instance can be reused across scheduled
// runs.
type Pipeline struct {
	generator Generator
	deliverer Deliverer
	policy    retry.Policy
	log       *slog.Logger
}

// New creates a pipeline using the given clients and retry policy for both
// I/O steps.
func New(generator Generator, deliverer Deliverer, policy retry.Policy, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		generator: generator,
		deliverer: deliverer,
		policy:    policy,
		log:       log.With("component", "pipeline"),
	}
}

// Run executes one full pipeline run. On success the returned outcome is in
// StateDone with the delivered quote; on any terminal failure it is in
// StateFailed with Err set, and the same error is returned.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	state := StateIdle

	state = p.transition(ctx, state, StateGenerating)
	quote, err := retry.Do(ctx, p.policy, p.log, "generate_quote", func(ctx context.Context) (string, error) {
		return p.generator.GenerateQuote(ctx)
	})
	if err != nil {
		return p.fail(ctx, state, "", err)
	}

	state = p.transition(ctx, state, StateValidating)
	quote = strings.TrimSpace(quote)
	if quote == "" {
		return p.fail(ctx, state, "", errs.NewEmptyResponseError("generated quote is empty", nil))
	}

	state = p.transition(ctx, state, StateDelivering)

	// The send runs on its own goroutine and is awaited before the run
	// completes: a single call with a single result, never concurrent
	// with any other step.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := retry.Do(gctx, p.policy, p.log, "deliver_quote", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.deliverer.SendQuote(ctx, quote)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return p.fail(ctx, state, quote, err)
	}

	state = p.transition(ctx, state, StateDone)
	p.log.InfoContext(ctx, "run finished", "state", state, "delivered", true, "quote_length", len(quote))
	return &Outcome{State: StateDone, Quote: quote, Delivered: true}, nil
}

func (p *Pipeline) transition(ctx context.Context, from, to State) State {
	p.log.InfoContext(ctx, "state transition", "from", from, "to", to)
	return to
}

func (p *Pipeline) fail(ctx context.Context, from State, quote string, err error) (*Outcome, error) {
	p.log.ErrorContext(ctx, "run failed",
		"from", from,
		"error", err,
		"error_code", errs.Code(err))
	p.transition(ctx, from, StateFailed)
	return &Outcome{State: StateFailed, Quote: quote, Err: err}, err
}
