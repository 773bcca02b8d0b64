package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLambdaWritesJSON(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Str("pipeline", "site-cicd-pipeline").Msg("hello")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "site-cicd-pipeline", entry["pipeline"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNewHonoursLogLevel(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	logger := New(&buf)
	logger.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
}
