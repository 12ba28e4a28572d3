package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherhistory.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "sqlite", config.Database.Driver)
		assert.Equal(t, "data/collections.db", config.Database.SQLitePath)
		assert.Equal(t, -24.73, config.Collector.DefaultLatitude)
		assert.Equal(t, -53.74, config.Collector.DefaultLongitude)
		assert.Equal(t, "America/Sao_Paulo", config.Collector.Timezone)
		assert.Equal(t, 7, config.Collector.OWMChunkDays)
		assert.Equal(t, time.Second, config.Collector.OWMChunkDelay())
		assert.Equal(t, 20*time.Second, config.Collector.HTTPTimeout())
		assert.Equal(t, 12*time.Hour, config.Collector.QuotaCooldown())
		assert.Equal(t, 100.0, config.Collector.StationRadiusKM)
		assert.Equal(t, CacheTypeFile, config.Cache.Type)
		assert.Equal(t, "cache", config.Cache.Dir)
		assert.Equal(t, "api_config.json", config.Providers.CredentialsFile)
		assert.False(t, config.Providers.OpenMeteoEnabled)
		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DEFAULT_LATITUDE", "-25.5")
		t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
		t.Setenv("WOLFRAM_API_KEY", "wolf-key")
		t.Setenv("CACHE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("OPENMETEO_ENABLED", "true")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "postgres", config.Database.Driver)
		assert.Equal(t, "db.internal", config.Database.Host)
		assert.Equal(t, -25.5, config.Collector.DefaultLatitude)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.Redis.Addr)
		assert.True(t, config.Providers.OpenMeteoEnabled)
		assert.Equal(t, map[string]string{
			"openweathermap": "owm-key",
			"stormglass":     "",
			"visualcrossing": "",
			"wolfram":        "wolf-key",
		}, config.Providers.Credentials())
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		t.Setenv("CACHE_TYPE", "memcached")

		config, err := LoadConfig()

		assert.Nil(t, config)
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "CACHE_TYPE must be one of: file, memory, redis")
	})

	t.Run("UnknownTimezone", func(t *testing.T) {
		t.Setenv("COLLECTION_TIMEZONE", "Mars/Olympus")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown COLLECTION_TIMEZONE")
	})

	t.Run("GetDSN", func(t *testing.T) {
		dbConfig := DatabaseConfig{
			Host:     "test-host",
			Port:     5432,
			User:     "test-user",
			Password: "test-password",
			Name:     "test-db",
			SSLMode:  "prefer",
		}

		expectedDSN := "host=test-host port=5432 user=test-user password=test-password dbname=test-db sslmode=prefer"
		assert.Equal(t, expectedDSN, dbConfig.GetDSN())
	})
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "sqlite", SQLitePath: "test.db"},
			Collector: CollectorConfig{
				DefaultLatitude:    -24.73,
				DefaultLongitude:   -53.74,
				OutputDir:          ".",
				Timezone:           "UTC",
				HTTPTimeoutSeconds: 20,
				StationRadiusKM:    100,
				OWMChunkDays:       7,
				OWMChunkDelayMS:    1000,
				MaxYears:           20,
				QueueSize:          4,
			},
			Providers: ProvidersConfig{
				INMETStationsURL:      "https://stations.test",
				INMETDataURL:          "https://data.test",
				OpenWeatherMapBaseURL: "https://owm.test",
				StormGlassBaseURL:     "https://sg.test",
				VisualCrossingBaseURL: "https://vc.test",
				WolframBaseURL:        "https://wolfram.test",
				OpenMeteoBaseURL:      "https://om.test",
				NominatimBaseURL:      "https://nominatim.test",
				NominatimUserAgent:    "tests",
			},
			Cache:   CacheConfig{Type: CacheTypeMemory},
			Logging: LoggingConfig{Level: "debug"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"BadPort", func(c *Config) { c.Server.Port = 0 }, "SERVER_PORT must be between 1 and 65535"},
		{"BadDriver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER must be one of"},
		{"PostgresSSL", func(c *Config) {
			c.Database = DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", Name: "n", SSLMode: "bogus"}
		}, "DB_SSL_MODE must be one of"},
		{"Latitude", func(c *Config) { c.Collector.DefaultLatitude = 91 }, "DEFAULT_LATITUDE"},
		{"Years", func(c *Config) { c.Collector.MaxYears = 21 }, "MAX_YEARS must be between 1 and 20"},
		{"ChunkDays", func(c *Config) { c.Collector.OWMChunkDays = 0 }, "OWM_CHUNK_DAYS"},
		{"BaseURL", func(c *Config) { c.Providers.StormGlassBaseURL = "ftp://sg" }, "STORMGLASS_BASE_URL must start with"},
		{"FileCacheDir", func(c *Config) { c.Cache = CacheConfig{Type: CacheTypeFile} }, "CACHE_DIR cannot be empty"},
		{"RedisDB", func(c *Config) {
			c.Cache = CacheConfig{Type: CacheTypeRedis, Redis: RedisConfig{Addr: "x", DB: 16, DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1}}
		}, "REDIS_DB must be between 0 and 15"},
		{"LogLevel", func(c *Config) { c.Logging.Level = "trace" }, "LOG_LEVEL must be one of"},
		{"LogFile", func(c *Config) { c.Logging.ToFile = true }, "LOG_FILE_PATH cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestCacheType(t *testing.T) {
	for _, name := range []string{"file", "memory", "redis"} {
		ct := CacheTypeFromString(name)
		assert.True(t, ct.IsValid())
		assert.Equal(t, name, ct.String())

		text, err := ct.MarshalText()
		require.NoError(t, err)

		var parsed CacheType
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, ct, parsed)
	}

	assert.False(t, CacheTypeFromString("disk").IsValid())
	assert.Equal(t, "unknown", CacheTypeUnknown.String())
}

func TestCollectorConfigLocation(t *testing.T) {
	loc, err := CollectorConfig{Timezone: "America/Sao_Paulo"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	_, offset := time.Date(2024, 7, 20, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -3*60*60, offset)

	_, err = CollectorConfig{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.True(t, errors.IsConfigurationError(err))
}
