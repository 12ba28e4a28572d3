package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

func writeCredentialsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileCredentialsProvider(t *testing.T) {
	env := map[string]string{
		ports.CredentialOpenWeatherMap: "owm-env",
		ports.CredentialStormGlass:     "sg-env",
	}

	t.Run("MissingFileUsesEnvironment", func(t *testing.T) {
		provider := NewFileCredentialsProvider(env, filepath.Join(t.TempDir(), "absent.json"))

		creds, err := provider.Credentials(context.Background())
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			ports.CredentialOpenWeatherMap: "owm-env",
			ports.CredentialStormGlass:     "sg-env",
			ports.CredentialVisualCrossing: "",
			ports.CredentialWolfram:        "",
		}, creds)
	})

	t.Run("FileOverridesNonEmptyKeys", func(t *testing.T) {
		path := writeCredentialsFile(t, `{
  "openweathermap": "owm-file",
  "stormglass": "",
  "visualcrossing": "vc-file",
  "unrelated": "ignored"
}`)
		provider := NewFileCredentialsProvider(env, path)

		creds, err := provider.Credentials(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "owm-file", creds[ports.CredentialOpenWeatherMap])
		assert.Equal(t, "sg-env", creds[ports.CredentialStormGlass], "empty file value keeps the environment key")
		assert.Equal(t, "vc-file", creds[ports.CredentialVisualCrossing])
		assert.Empty(t, creds[ports.CredentialWolfram])
		assert.NotContains(t, creds, "unrelated")
	})

	t.Run("FileChangesApplyOnNextCall", func(t *testing.T) {
		path := writeCredentialsFile(t, `{"wolfram": "first"}`)
		provider := NewFileCredentialsProvider(nil, path)

		creds, err := provider.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first", creds[ports.CredentialWolfram])

		require.NoError(t, os.WriteFile(path, []byte(`{"wolfram": "second"}`), 0600))
		creds, err = provider.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "second", creds[ports.CredentialWolfram])
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeCredentialsFile(t, `{"openweathermap": `)
		provider := NewFileCredentialsProvider(env, path)

		creds, err := provider.Credentials(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Equal(t, "owm-env", creds[ports.CredentialOpenWeatherMap], "environment keys still returned")
	})

	t.Run("NoPath", func(t *testing.T) {
		provider := NewFileCredentialsProvider(env, "")

		creds, err := provider.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "sg-env", creds[ports.CredentialStormGlass])
	})

	t.Run("DefaultsAreCopied", func(t *testing.T) {
		defaults := map[string]string{ports.CredentialWolfram: "w"}
		provider := NewFileCredentialsProvider(defaults, "")
		defaults[ports.CredentialWolfram] = "changed"

		creds, err := provider.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "w", creds[ports.CredentialWolfram])
	})
}
