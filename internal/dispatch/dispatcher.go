// Package dispatch implements the resilient generation dispatcher: it tries
// every credential against every model, skipping rate-limited or unavailable
// models and abandoning rejected credentials, and backs off exponentially
// between attempt cycles.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hpn/studyhub/internal/adapter"
	"github.com/hpn/studyhub/internal/domain"
	"github.com/hpn/studyhub/internal/metrics"
)

const (
	// DefaultMaxAttempts is the number of full credential × model cycles.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the first cooldown; cycle n waits BaseDelay * 2^n.
	DefaultBaseDelay = 2 * time.Second

	// MaxBackoff caps a single cooldown.
	MaxBackoff = 10 * time.Minute
)

// Settings is the immutable retry policy of a Dispatcher.
type Settings struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultSettings returns the 3-attempt, 2s/4s/8s policy.
func DefaultSettings() Settings {
	return Settings{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// Backoff returns the cooldown after attempt cycle n (0-based), capped at
// MaxBackoff.
func (s Settings) Backoff(n int) time.Duration {
	if s.BaseDelay <= 0 {
		return 0
	}
	if s.BaseDelay >= MaxBackoff {
		return MaxBackoff
	}
	d := s.BaseDelay
	for i := 0; i < n; i++ {
		d *= 2
		if d >= MaxBackoff {
			return MaxBackoff
		}
	}
	return d
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Dispatcher turns a prompt into generated text against a pool of
// credentials and a roster of models.
//
// A Dispatcher holds no mutable state; concurrent Dispatch calls are
// independent.
type Dispatcher struct {
	pool     *domain.CredentialPool
	roster   *domain.ModelRoster
	factory  adapter.Factory
	settings Settings
	logger   *slog.Logger
	metrics  *metrics.DispatchMetrics
	sleep    SleepFunc
}

// Option is a functional option for configuring Dispatcher.
type Option func(*Dispatcher)

// WithSettings overrides the retry policy. Non-positive fields keep their
// defaults.
func WithSettings(s Settings) Option {
	return func(d *Dispatcher) {
		if s.MaxAttempts > 0 {
			d.settings.MaxAttempts = s.MaxAttempts
		}
		if s.BaseDelay > 0 {
			d.settings.BaseDelay = s.BaseDelay
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records dispatch activity on m.
func WithMetrics(m *metrics.DispatchMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithSleep overrides how cooldown waits are performed (useful for tests).
func WithSleep(fn SleepFunc) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.sleep = fn
		}
	}
}

// New creates a Dispatcher. factory builds a fresh backend client for each
// credential on every attempt cycle.
func New(pool *domain.CredentialPool, roster *domain.ModelRoster, factory adapter.Factory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		pool:     pool,
		roster:   roster,
		factory:  factory,
		settings: DefaultSettings(),
		logger:   slog.Default(),
		sleep:    sleepContext,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Settings returns the retry policy in effect.
func (d *Dispatcher) Settings() Settings {
	return d.settings
}

// CredentialCount returns the number of credentials in the pool.
func (d *Dispatcher) CredentialCount() int {
	return d.pool.Len()
}

// dispatchRun carries the per-call bookkeeping of one Dispatch.
type dispatchRun struct {
	logger  *slog.Logger
	prompt  string
	models  []string
	calls   int
	lastErr error
}

// Dispatch generates text for prompt.
//
// It returns a *DispatchError when the pool is empty (no call is made), the
// prompt is blank, the context is done, or every attempt cycle failed.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	run := &dispatchRun{
		logger: d.logger.With(slog.String("dispatch_id", uuid.NewString())),
		prompt: prompt,
	}

	text, err := d.dispatch(ctx, run)

	result := "success"
	if err != nil {
		result = KindOf(err).String()
	}
	d.metrics.ObserveCall(result, time.Since(start))

	return text, err
}

func (d *Dispatcher) dispatch(ctx context.Context, run *dispatchRun) (string, error) {
	if d.pool.IsEmpty() {
		run.logger.Warn("no API keys configured, skipping generation")
		return "", newDispatchError(KindNoCredentials, 0, nil, ErrNoCredentials)
	}
	if strings.TrimSpace(run.prompt) == "" {
		return "", newDispatchError(KindEmptyPrompt, 0, nil, ErrEmptyPrompt)
	}

	// One shuffle per dispatch call spreads concurrent callers across models.
	run.models = d.roster.Shuffled()
	credentials := d.pool.Available()

	for attempt := 0; attempt < d.settings.MaxAttempts; attempt++ {
		for _, cred := range credentials {
			text, ok, err := d.tryCredential(ctx, run, attempt, cred)
			if err != nil {
				return "", err
			}
			if ok {
				return text, nil
			}
		}

		wait := d.settings.Backoff(attempt)
		run.logger.Warn("all keys and models failed, backing off",
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
		)
		d.metrics.ObserveBackoff(wait)

		if err := d.sleep(ctx, wait); err != nil {
			return "", newDispatchError(KindCanceled, run.calls, run.lastErr, err)
		}
	}

	run.logger.Error("retry budget exhausted",
		slog.Int("max_attempts", d.settings.MaxAttempts),
		slog.Int("calls", run.calls),
	)
	return "", newDispatchError(KindRetryBudgetExhausted, run.calls, run.lastErr, ErrRetryBudgetExhausted)
}

// tryCredential walks the shuffled models under one credential. It returns
// ok=true with the generated text on the first success, and a non-nil error
// only when the context is done.
func (d *Dispatcher) tryCredential(ctx context.Context, run *dispatchRun, attempt int, cred domain.Credential) (string, bool, error) {
	logger := run.logger.With(
		slog.Int("attempt", attempt+1),
		slog.String("key_name", cred.Name),
	)

	gen, err := d.factory(ctx, cred)
	if err != nil {
		logger.Warn("could not create client, switching to next key",
			slog.String("error", err.Error()),
		)
		d.metrics.ObserveAbandon(cred.Name)
		run.lastErr = err
		return "", false, nil
	}

	for _, model := range run.models {
		if err := ctx.Err(); err != nil {
			return "", false, newDispatchError(KindCanceled, run.calls, run.lastErr, err)
		}

		run.calls++
		text, err := gen.Generate(ctx, model, run.prompt)
		if err == nil {
			d.metrics.ObserveAttempt(model, domain.OutcomeSuccess.String())
			logger.Info("generation succeeded",
				slog.String("model", model),
				slog.Int("calls", run.calls),
			)
			return text, true, nil
		}

		run.lastErr = err
		kind := domain.Classify(domain.SignalFromError(err))
		d.metrics.ObserveAttempt(model, kind.String())

		if kind.AbandonsCredential() {
			logger.Warn("API key is invalid, switching to next key",
				slog.String("model", model),
			)
			d.metrics.ObserveAbandon(cred.Name)
			return "", false, nil
		}

		logger.Warn("model failed, skipping",
			slog.String("model", model),
			slog.String("outcome", kind.String()),
			slog.String("error", err.Error()),
		)
	}

	logger.Warn("all models failed for key, switching to next key if available")
	return "", false, nil
}

// sleepContext waits for d unless ctx is done first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
