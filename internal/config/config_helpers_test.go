package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	const key = "LOOTVAULT_TEST_INT"

	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{name: "unset returns default", want: 25},
		{name: "valid integer", value: "100", set: true, want: 100},
		{name: "negative integer", value: "-3", set: true, want: -3},
		{name: "zero", value: "0", set: true, want: 0},
		{name: "non-numeric returns default", value: "many", set: true, want: 25},
		{name: "float returns default", value: "12.5", set: true, want: 25},
		{name: "empty string returns default", value: "", set: true, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(key, tt.value)
			} else {
				os.Unsetenv(key)
			}
			assert.Equal(t, tt.want, getEnvAsInt(key, 25))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	const key = "LOOTVAULT_TEST_DURATION"
	def := DefaultTradeExpiryInterval

	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{name: "unset returns default", want: def},
		{name: "minutes", value: "10m", set: true, want: 10 * time.Minute},
		{name: "seconds", value: "45s", set: true, want: 45 * time.Second},
		{name: "compound", value: "1h30m", set: true, want: 90 * time.Minute},
		{name: "milliseconds", value: "250ms", set: true, want: 250 * time.Millisecond},
		{name: "bare number returns default", value: "300", set: true, want: def},
		{name: "garbage returns default", value: "soonish", set: true, want: def},
		{name: "empty string returns default", value: "", set: true, want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(key, tt.value)
			} else {
				os.Unsetenv(key)
			}
			assert.Equal(t, tt.want, getEnvAsDuration(key, def))
		})
	}
}

func TestGetEnv(t *testing.T) {
	const key = "LOOTVAULT_TEST_STRING"

	t.Run("unset returns default", func(t *testing.T) {
		os.Unsetenv(key)
		assert.Equal(t, "fallback", getEnv(key, "fallback"))
	})

	t.Run("set value wins, even when empty", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Equal(t, "", getEnv(key, "fallback"))
	})
}
