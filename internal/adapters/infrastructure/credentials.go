package infrastructure

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

var credentialKeys = []string{
	ports.CredentialOpenWeatherMap,
	ports.CredentialStormGlass,
	ports.CredentialVisualCrossing,
	ports.CredentialWolfram,
}

// FileCredentialsProvider layers the JSON credentials file over the
// environment-supplied keys. The file is re-read on every call so edits
// apply to the next collection without a restart.
type FileCredentialsProvider struct {
	defaults map[string]string
	path     string
}

// NewFileCredentialsProvider creates a provider; path may be empty
func NewFileCredentialsProvider(defaults map[string]string, path string) *FileCredentialsProvider {
	copied := make(map[string]string, len(defaults))
	for k, v := range defaults {
		copied[k] = v
	}
	return &FileCredentialsProvider{defaults: copied, path: path}
}

// Credentials returns every known credential; a missing file is not an error
func (p *FileCredentialsProvider) Credentials(ctx context.Context) (map[string]string, error) {
	result := make(map[string]string, len(credentialKeys))
	for _, key := range credentialKeys {
		result[key] = p.defaults[key]
	}

	if p.path == "" {
		return result, nil
	}
	if _, err := os.Stat(p.path); err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, errors.NewConfigurationError(fmt.Sprintf("cannot access credentials file %s", p.path), err)
	}

	v := viper.New()
	v.SetConfigFile(p.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return result, errors.NewConfigurationError(fmt.Sprintf("failed to read credentials file %s", p.path), err)
	}

	for _, key := range credentialKeys {
		if value := v.GetString(key); value != "" {
			result[key] = value
		}
	}
	return result, nil
}
