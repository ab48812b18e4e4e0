package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		env, level string
		want       zerolog.Level
	}{
		{"development", "", zerolog.DebugLevel},
		{"production", "", zerolog.InfoLevel},
		{"production", "warn", zerolog.WarnLevel},
		{"development", "nonsense", zerolog.DebugLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := SetupWithWriter(tt.env, tt.level, &buf)
		assert.Equal(t, tt.want, logger.GetLevel(), "%s/%s", tt.env, tt.level)
	}
}

func TestProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWithWriter("production", "", &buf)
	logger.Info().Str("op", "MovePattern").Msg("hello")
	assert.Contains(t, buf.String(), `"op":"MovePattern"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	buf.Reset()
	logger = SetupWithWriter("development", "", &buf)
	logger.Info().Str("op", "MovePattern").Msg("hello")
	assert.Contains(t, buf.String(), "op=MovePattern")
	assert.NotContains(t, buf.String(), "{")
}
