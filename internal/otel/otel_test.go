package otel

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpoint(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("otel.exporter.otlp.endpoint", "")

	shutdown, err := Init()
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// With no endpoint configured, the providers run without exporters and
	// shut down cleanly.
	assert.NoError(t, shutdown(context.Background()))
}
