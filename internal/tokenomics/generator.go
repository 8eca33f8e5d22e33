package tokenomics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/tokenomics-studio/internal/models"
	"go.uber.org/zap"
)

// DefaultModelTimeout bounds the single model call of a generation
const DefaultModelTimeout = 90 * time.Second

// Model is the generative model capability used by the Generator
type Model interface {
	// Complete sends one instruction and returns the raw text answer
	Complete(ctx context.Context, sessionID, instruction string) (string, error)
}

// Observer receives the source and duration of every finished generation
type Observer interface {
	ObserveGeneration(source string, elapsed time.Duration)
}

type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Generator turns a request into a finalized design. It asks the model once
// and falls back to the fixed template on any failure, so Generate never
// returns an error. A Generator holds no per-request state and is safe for
// concurrent use.
type Generator struct {
	model    Model
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer
	newID    func() string
	now      func() time.Time
}

type Option func(*Generator)

func WithTimeout(timeout time.Duration) Option {
	return func(g *Generator) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(g *Generator) {
		g.observer = observer
	}
}

// WithClock replaces the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDGenerator replaces the identity source used when finalizing
func WithIDGenerator(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// NewGenerator creates a Generator. A nil model makes every generation take
// the fallback path.
func NewGenerator(model Model, opts ...Option) *Generator {
	g := &Generator{
		model:   model,
		timeout: DefaultModelTimeout,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// outcome is the result of the request and parse steps: a parsed design or
// the reason the model path failed.
type outcome struct {
	project *models.TokenomicsProject
	reason  error
}

func parsed(project *models.TokenomicsProject) outcome {
	return outcome{project: project}
}

func failed(reason error) outcome {
	return outcome{reason: reason}
}

// Generate produces a finalized design for the request
func (g *Generator) Generate(ctx context.Context, request models.TokenomicsRequest) *models.TokenomicsProject {
	start := time.Now()
	sessionID := newSessionID()
	logger := g.logger.With(zap.String("session_id", sessionID), zap.String("project_type", request.ProjectType))

	result := g.request(ctx, sessionID, BuildPrompt(request), request)

	source := SourceModel
	project := result.project
	if result.reason != nil {
		logger.Warn("model generation failed, using fallback design", zap.Error(result.reason))
		source = SourceFallback
		project = Fallback(request)
	} else if warnings := CheckAllocationSums(project); len(warnings) > 0 {
		logger.Warn("model design drifts from allocation sums", zap.Strings("warnings", warnings))
	}

	g.finalize(project)
	logger.Info("tokenomics design generated",
		zap.String("project_id", project.ID),
		zap.String("source", string(source)),
		zap.Int("allocations", len(project.Allocations)),
	)
	if g.observer != nil {
		g.observer.ObserveGeneration(string(source), time.Since(start))
	}
	return project
}

type completion struct {
	text string
	err  error
}

func (g *Generator) request(ctx context.Context, sessionID, prompt string, request models.TokenomicsRequest) outcome {
	if g.model == nil {
		return failed(fmt.Errorf("%w: no model configured", ErrModelUnavailable))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// the channel is buffered so a model that ignores cancellation can still
	// finish without blocking
	done := make(chan completion, 1)
	go func() {
		text, err := g.model.Complete(callCtx, sessionID, prompt)
		done <- completion{text: text, err: err}
	}()

	var answer completion
	select {
	case answer = <-done:
	case <-callCtx.Done():
		return failed(classifyModelError(callCtx.Err()))
	}
	if answer.err != nil {
		return failed(classifyModelError(answer.err))
	}

	project, err := ParseResponse(answer.text, request)
	if err != nil {
		return failed(err)
	}
	return parsed(project)
}

func (g *Generator) finalize(project *models.TokenomicsProject) {
	project.ID = g.newID()
	project.CreatedAt = g.now().UTC()
	project.PDFGenerated = false
	project.PaymentStatus = models.PaymentStatusPending
}

func classifyModelError(err error) error {
	switch {
	case errors.Is(err, ErrModelTimeout), errors.Is(err, ErrModelUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrModelTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
}

func newSessionID() string {
	return "tokenomics_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
