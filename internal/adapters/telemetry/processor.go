package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/fusionary/internal/core/ports"
)

// LogProcessor implements sdktrace.SpanProcessor by reporting ended spans
// as debug log lines.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor returns a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// NewProvider creates a TracerProvider whose spans end up in the debug log.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogProcessor(logger)))
}

// OnStart is a no-op.
func (p *LogProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name and duration.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)
	msg := fmt.Sprintf("%s finished in %s", s.Name(), elapsed)
	if status := s.Status(); status.Code == codes.Error {
		msg = fmt.Sprintf("%s failed after %s: %s", s.Name(), elapsed, status.Description)
	}
	p.logger.Debug(msg)
}

// Shutdown is a no-op.
func (p *LogProcessor) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush is a no-op.
func (p *LogProcessor) ForceFlush(_ context.Context) error {
	return nil
}
