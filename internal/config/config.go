package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"weatherhistory.app/pkg/errors"
)

const (
	maxRedisDB     = 15
	maxPortNumber  = 65535
	maxYears       = 20
	maxChunkDays   = 31
	maxStationKM   = 1000
	maxHTTPTimeout = 300
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Collector CollectorConfig `split_words:"true"`
	Providers ProvidersConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Logging   LoggingConfig   `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"data/collections.db"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"weatherhistory"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// CollectorConfig drives the collection pipeline itself
type CollectorConfig struct {
	DefaultLatitude      float64 `envconfig:"DEFAULT_LATITUDE" default:"-24.73"`
	DefaultLongitude     float64 `envconfig:"DEFAULT_LONGITUDE" default:"-53.74"`
	OutputDir            string  `envconfig:"OUTPUT_DIR" default:"."`
	Timezone             string  `envconfig:"COLLECTION_TIMEZONE" default:"America/Sao_Paulo"`
	HTTPTimeoutSeconds   int     `envconfig:"HTTP_TIMEOUT_SECONDS" default:"20"`
	StationRadiusKM      float64 `envconfig:"STATION_RADIUS_KM" default:"100"`
	OWMChunkDays         int     `envconfig:"OWM_CHUNK_DAYS" default:"7"`
	OWMChunkDelayMS      int     `envconfig:"OWM_CHUNK_DELAY_MS" default:"1000"`
	QuotaCooldownMinutes int     `envconfig:"QUOTA_COOLDOWN_MINUTES" default:"720"`
	MaxYears             int     `envconfig:"MAX_YEARS" default:"20"`
	QueueSize            int     `envconfig:"QUEUE_SIZE" default:"16"`
	EnableReport         bool    `envconfig:"ENABLE_REPORT" default:"true"`
}

// Location loads the configured collection time zone
func (c CollectorConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unknown COLLECTION_TIMEZONE %q", c.Timezone), err)
	}
	return loc, nil
}

func (c CollectorConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c CollectorConfig) OWMChunkDelay() time.Duration {
	return time.Duration(c.OWMChunkDelayMS) * time.Millisecond
}

func (c CollectorConfig) QuotaCooldown() time.Duration {
	return time.Duration(c.QuotaCooldownMinutes) * time.Minute
}

// ProvidersConfig holds credentials and upstream endpoints
type ProvidersConfig struct {
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY"`
	StormGlassKey         string `envconfig:"STORMGLASS_API_KEY"`
	VisualCrossingKey     string `envconfig:"VISUALCROSSING_API_KEY"`
	WolframKey            string `envconfig:"WOLFRAM_API_KEY"`
	CredentialsFile       string `envconfig:"API_CONFIG_FILE" default:"api_config.json"`
	INMETStationsURL      string `envconfig:"INMET_STATIONS_URL" default:"https://apimapas.inmet.gov.br/estacoes"`
	INMETDataURL          string `envconfig:"INMET_DATA_URL" default:"https://apitempo.inmet.gov.br/estacao"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_HISTORY_BASE_URL" default:"https://history.openweathermap.org/data/2.5"`
	StormGlassBaseURL     string `envconfig:"STORMGLASS_BASE_URL" default:"https://api.stormglass.io/v2"`
	VisualCrossingBaseURL string `envconfig:"VISUALCROSSING_BASE_URL" default:"https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services"`
	WolframBaseURL        string `envconfig:"WOLFRAM_BASE_URL" default:"https://api.wolframalpha.com/v2"`
	OpenMeteoEnabled      bool   `envconfig:"OPENMETEO_ENABLED" default:"false"`
	OpenMeteoBaseURL      string `envconfig:"OPENMETEO_BASE_URL" default:"https://archive-api.open-meteo.com/v1"`
	NominatimBaseURL      string `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	NominatimUserAgent    string `envconfig:"NOMINATIM_USER_AGENT" default:"weatherhistory-collector"`
	EnableLogging         bool   `envconfig:"ENABLE_PROVIDER_LOGGING" default:"true"`
}

// Credentials returns the environment-supplied provider keys by credential name
func (p ProvidersConfig) Credentials() map[string]string {
	return map[string]string{
		"openweathermap": p.OpenWeatherMapKey,
		"stormglass":     p.StormGlassKey,
		"visualcrossing": p.VisualCrossingKey,
		"wolfram":        p.WolframKey,
	}
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeFile
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeFile:
		return "file"
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeFile || c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "file":
		return CacheTypeFile
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"file"`
	Dir   string      `envconfig:"CACHE_DIR" default:"cache"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type LoggingConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	ToFile   bool   `envconfig:"LOG_TO_FILE" default:"false"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:"logs/collector.log"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Collector.Validate(); err != nil {
		return err
	}
	if err := c.Providers.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
		return nil
	case "postgres":
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (c *CollectorConfig) Validate() error {
	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 {
		return errors.NewConfigurationError("DEFAULT_LATITUDE must be between -90 and 90", nil)
	}
	if c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		return errors.NewConfigurationError("DEFAULT_LONGITUDE must be between -180 and 180", nil)
	}
	if c.OutputDir == "" {
		return errors.NewConfigurationError("OUTPUT_DIR cannot be empty", nil)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.HTTPTimeoutSeconds < 1 || c.HTTPTimeoutSeconds > maxHTTPTimeout {
		return errors.NewConfigurationError("HTTP_TIMEOUT_SECONDS must be between 1 and 300", nil)
	}
	if c.StationRadiusKM <= 0 || c.StationRadiusKM > maxStationKM {
		return errors.NewConfigurationError("STATION_RADIUS_KM must be greater than 0 and at most 1000", nil)
	}
	if c.OWMChunkDays < 1 || c.OWMChunkDays > maxChunkDays {
		return errors.NewConfigurationError("OWM_CHUNK_DAYS must be between 1 and 31", nil)
	}
	if c.OWMChunkDelayMS < 0 {
		return errors.NewConfigurationError("OWM_CHUNK_DELAY_MS cannot be negative", nil)
	}
	if c.QuotaCooldownMinutes < 0 {
		return errors.NewConfigurationError("QUOTA_COOLDOWN_MINUTES cannot be negative", nil)
	}
	if c.MaxYears < 1 || c.MaxYears > maxYears {
		return errors.NewConfigurationError("MAX_YEARS must be between 1 and 20", nil)
	}
	if c.QueueSize < 1 {
		return errors.NewConfigurationError("QUEUE_SIZE must be at least 1", nil)
	}
	return nil
}

func (p *ProvidersConfig) Validate() error {
	urls := map[string]string{
		"INMET_STATIONS_URL":              p.INMETStationsURL,
		"INMET_DATA_URL":                  p.INMETDataURL,
		"OPENWEATHERMAP_HISTORY_BASE_URL": p.OpenWeatherMapBaseURL,
		"STORMGLASS_BASE_URL":             p.StormGlassBaseURL,
		"VISUALCROSSING_BASE_URL":         p.VisualCrossingBaseURL,
		"WOLFRAM_BASE_URL":                p.WolframBaseURL,
		"OPENMETEO_BASE_URL":              p.OpenMeteoBaseURL,
		"NOMINATIM_BASE_URL":              p.NominatimBaseURL,
	}
	for name, value := range urls {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return errors.NewConfigurationError(fmt.Sprintf("%s must start with http:// or https://", name), nil)
		}
	}
	if p.NominatimUserAgent == "" {
		return errors.NewConfigurationError("NOMINATIM_USER_AGENT cannot be empty", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: file, memory, redis", nil)
	}

	switch c.Type {
	case CacheTypeFile:
		if c.Dir == "" {
			return errors.NewConfigurationError("CACHE_DIR cannot be empty when using file cache", nil)
		}
	case CacheTypeRedis:
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	if l.ToFile && l.FilePath == "" {
		return errors.NewConfigurationError("LOG_FILE_PATH cannot be empty when LOG_TO_FILE is true", nil)
	}
	return nil
}
