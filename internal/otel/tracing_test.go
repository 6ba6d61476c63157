package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want trace.Sampler
	}{
		{"always_on", "", trace.AlwaysSample()},
		{"always_off", "", trace.NeverSample()},
		{"traceidratio", "0.25", trace.TraceIDRatioBased(0.25)},
		{"traceidratio", "bogus", trace.TraceIDRatioBased(1.0)},
		{"parentbased_always_off", "", trace.ParentBased(trace.NeverSample())},
		{"parentbased_traceidratio", "0.5", trace.ParentBased(trace.TraceIDRatioBased(0.5))},
		{"", "", trace.ParentBased(trace.AlwaysSample())},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want.Description(), samplerFor(tt.name, tt.arg).Description())
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	shutdown, err := Init(context.Background())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
