package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets every variable ValidateEnv demands, then applies
// overrides. An empty override value unsets the variable.
func setRequiredEnv(t *testing.T, overrides map[string]string) {
	t.Helper()

	values := map[string]string{
		"ENV_SCHEMA_VERSION": ExpectedEnvSchemaVersion,
		"DB_USER":            "vault",
		"DB_PASSWORD":        "vault-secret",
		"DB_HOST":            "localhost",
		"DB_PORT":            "5432",
		"DB_NAME":            "lootvault",
		"API_KEY":            "vault-test-key",
	}
	for k, v := range overrides {
		values[k] = v
	}

	for k, v := range values {
		if v == "" {
			t.Setenv(k, "")
			os.Unsetenv(k)
			continue
		}
		t.Setenv(k, v)
	}
}

func TestValidateEnv(t *testing.T) {
	t.Run("complete environment passes", func(t *testing.T) {
		setRequiredEnv(t, nil)
		assert.NoError(t, ValidateEnv())
	})

	t.Run("unset schema version", func(t *testing.T) {
		setRequiredEnv(t, map[string]string{"ENV_SCHEMA_VERSION": ""})

		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
	})

	t.Run("outdated schema version", func(t *testing.T) {
		setRequiredEnv(t, map[string]string{"ENV_SCHEMA_VERSION": "0.9"})

		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
		assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
	})

	t.Run("missing variables are all named", func(t *testing.T) {
		setRequiredEnv(t, map[string]string{"DB_PASSWORD": "", "API_KEY": ""})

		err := ValidateEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required environment variables")
		assert.Contains(t, err.Error(), "DB_PASSWORD")
		assert.Contains(t, err.Error(), "API_KEY")
	})
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Run("example credentials produce warnings, not errors", func(t *testing.T) {
		setRequiredEnv(t, map[string]string{
			"DB_PASSWORD": "change_this_secure_password",
			"API_KEY":     "generate_with_openssl_rand_hex_32",
		})

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "DB_PASSWORD")
		assert.Contains(t, warnings[1], "API_KEY")
	})

	t.Run("real credentials produce no warnings", func(t *testing.T) {
		setRequiredEnv(t, nil)

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("critical failures short-circuit", func(t *testing.T) {
		setRequiredEnv(t, map[string]string{"API_KEY": ""})

		warnings, err := ValidateEnvWithWarnings()
		assert.Error(t, err)
		assert.Nil(t, warnings)
	})
}
