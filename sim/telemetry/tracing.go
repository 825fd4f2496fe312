// Package telemetry wraps OpenTelemetry tracing for simulator runs. Each run
// becomes one span; completions and preemptions are recorded as span events.
// When no provider has been installed every call is a no-op.
package telemetry

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "schedsim"
	ServiceVersion = "0.1.0"
	tracerName     = "github.com/inference-sim/schedsim"
)

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
	output       io.Closer
)

// Init installs the stdout exporter writing to outputFile, or os.Stdout when
// outputFile is empty. The first initialisation wins: once a provider is
// installed, later calls neither create nor truncate outputFile.
func Init(outputFile string) error {
	return installProvider(func() (sdktrace.SpanExporter, io.Closer, error) {
		var w io.Writer = os.Stdout
		var closer io.Closer
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return nil, nil, err
			}
			w, closer = f, f
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, nil, err
		}
		return exporter, closer, nil
	})
}

// InitWithExporter installs exporter as the global span exporter.
func InitWithExporter(exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	return installProvider(func() (sdktrace.SpanExporter, io.Closer, error) {
		return exporter, nil, nil
	})
}

// installProvider builds the exporter and the global provider exactly once.
// newExporter is only called on the first installation.
func installProvider(newExporter func() (sdktrace.SpanExporter, io.Closer, error)) error {
	providerOnce.Do(func() {
		exporter, closer, err := newExporter()
		if err != nil {
			providerErr = err
			return
		}
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", ServiceName),
				attribute.String("service.version", ServiceVersion),
			),
		)
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			providerErr = err
			return
		}

		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		output = closer
		otel.SetTracerProvider(provider)
	})
	return providerErr
}

// Shutdown flushes the installed provider and closes the output file, if any.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if output != nil {
		if cerr := output.Close(); err == nil {
			err = cerr
		}
		output = nil
	}
	return err
}

// Span wraps an OpenTelemetry span so callers do not import the upstream package.
type Span struct {
	span trace.Span
}

// StartSpan starts an internal span named name as a child of any span in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// WithAttributes attaches attrs to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.SetAttributes(kvs...)
	return s
}

// SetInt attaches an integer attribute to the span.
func (s *Span) SetInt(key string, value int64) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Int64(key, value))
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
}

// End finalises the span, recording err as its status.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	s.SetStatus(err)
	s.span.End()
}
