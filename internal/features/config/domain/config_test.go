package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*AppConfig)
		errMsg string
	}{
		{"defaults", func(*AppConfig) {}, ""},
		{"one field", func(c *AppConfig) { c.MaxFields = 1 }, ""},
		{"zero fields", func(c *AppConfig) { c.MaxFields = 0 }, "max_fields"},
		{"too many fields", func(c *AppConfig) { c.MaxFields = 9 }, "max_fields"},
		{"hot temperature", func(c *AppConfig) { c.ModelParams.Temperature = 2.5 }, "temperature"},
		{"negative tokens", func(c *AppConfig) { c.ModelParams.MaxTokens = -1 }, "max_tokens"},
		{"negative timeout", func(c *AppConfig) { c.ModelParams.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"too many retries", func(c *AppConfig) { c.Retry.MaxRetries = 6 }, "max_retries"},
		{"negative delay", func(c *AppConfig) { c.Retry.DelayMS = -5 }, "delay_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultAppConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	c := DefaultAppConfig()
	c.MaxFields = 0
	c.Retry.DelayMS = -1

	err := c.Validate()
	assert.ErrorContains(t, err, "max_fields")
	assert.ErrorContains(t, err, "delay_ms")
}
