package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Collection
	Providers   []HistoricalProvider
	YearCache   YearCache
	Geocoder    Geocoder
	Credentials CredentialsProvider

	// Persistence
	CollectionRuns CollectionRunRepository

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Infrastructure
	Metrics  MetricsCollector
	Logger   Logger
	Database interface{}
}
