package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/file-parser/internal/config"
)

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(config.Config{OTLPEndpoint: ""})
	require.NoError(t, err)
	require.Nil(t, shutdown)
}

func TestSetupTracing_WithEndpoint(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	// The gRPC exporter dials lazily, so no collector is needed here.
	shutdown, err := SetupTracing(config.Config{
		AppEnv:          "prod",
		OTLPEndpoint:    "localhost:4317",
		OTELServiceName: "file-parser-test",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
