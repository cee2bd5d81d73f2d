package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	got := filterSensitiveHeaders(map[string]string{
		"authorization": "Bearer abc",
		"x-user-email":  "someone@example.com",
		"content-type":  "application/json",
	})
	assert.Equal(t, "[REDACTED]", got["authorization"])
	assert.Equal(t, "[REDACTED]", got["x-user-email"])
	assert.Equal(t, "application/json", got["content-type"])
}
