package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("test")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, DefaultPipelineConfig(), cfg.PipelineCfg)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Positive(t, cfg.ShutdownTimeout)
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{name: "zero call timeout", key: "PIPELINE_CALL_TIMEOUT", value: "0s", message: "PIPELINE_CALL_TIMEOUT"},
		{name: "negative call timeout", key: "PIPELINE_CALL_TIMEOUT", value: "-1s", message: "PIPELINE_CALL_TIMEOUT"},
		{name: "threshold above 100", key: "PIPELINE_SCORE_THRESHOLD", value: "101", message: "PIPELINE_SCORE_THRESHOLD"},
		{name: "boost below one", key: "PIPELINE_SECTION_BOOST", value: "0.5", message: "PIPELINE_SECTION_BOOST"},
		{name: "zero request timeout", key: "REQUEST_TIMEOUT", value: "0s", message: "REQUEST_TIMEOUT"},
		{name: "zero shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "0s", message: "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Parse("test")

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
