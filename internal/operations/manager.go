package operations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"franvarocli/internal/infrastructure"
)

// TracerName names the tracer used for step spans
const TracerName = "franvarocli.operation"

// Manager runs registered steps one after another
type Manager struct {
	steps   []Step
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewManager creates a manager. A nil tracer disables spans and nil metrics
// disable step metrics.
func NewManager(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(TracerName)
	}
	return &Manager{
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Register appends a step. Steps run in registration order.
func (m *Manager) Register(step Step) error {
	for _, s := range m.steps {
		if s.ID() == step.ID() {
			return fmt.Errorf("step %s already registered", step.ID())
		}
	}
	m.steps = append(m.steps, step)
	return nil
}

// Steps returns the registered steps in execution order
func (m *Manager) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Execute runs every registered step against state. The first failing step
// fails the operation; the steps after it are marked skipped and not run.
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	for _, step := range m.steps {
		if state.GetStage(step.ID()) == nil {
			state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
		}
	}

	state.Start()
	m.logger.InfoContext(ctx, "sequential_execution_start",
		slog.String("operation_id", state.ID),
		slog.Int("stage_count", len(m.steps)))

	for i, step := range m.steps {
		m.logger.InfoContext(ctx, "executing_stage",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(m.steps)))

		if err := m.executeStage(ctx, state, step); err != nil {
			m.logger.ErrorContext(ctx, "stage_failed",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			m.skipRemaining(state, i+1, step.ID())
			state.Fail(err)
			return err
		}

		m.logger.InfoContext(ctx, "stage_completed_successfully",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", state.GetStage(step.ID()).Duration()))
	}

	state.Complete()
	m.logger.InfoContext(ctx, "all_stages_completed",
		slog.String("operation_id", state.ID),
		slog.Int("stage_count", len(m.steps)))
	return nil
}

// executeStage runs one step inside its own span and records its duration
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	ctx, span := m.tracer.Start(ctx, "operation.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
	defer span.End()

	stepState := state.GetStage(step.ID())
	stepState.Start()

	err := step.Execute(ctx, state)
	if err != nil {
		stepState.Fail(err)
		infrastructure.RecordError(ctx, err)
	} else {
		stepState.Complete()
		span.SetStatus(codes.Ok, "step completed")
	}

	m.metrics.RecordStep(ctx, step.ID(), stepState.Duration(), err)
	return err
}

func (m *Manager) skipRemaining(state *OperationState, from int, failed string) {
	for _, step := range m.steps[from:] {
		state.GetStage(step.ID()).Skip(fmt.Sprintf("previous step %s failed", failed))
	}
}
