package ports

import (
	"context"
	"time"

	"weatherhistory.app/pkg/errors"
)

// FetchQuery is the window a provider is asked for. End is exclusive.
type FetchQuery struct {
	Start       time.Time
	End         time.Time
	Coordinates Coordinates
	Location    string
	Credential  string
}

// FetchStatus tells apart data, a legitimately empty period and a failure
type FetchStatus int

const (
	FetchStatusEmpty FetchStatus = iota
	FetchStatusData
	FetchStatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchStatusData:
		return "data"
	case FetchStatusFailed:
		return "failed"
	default:
		return "empty"
	}
}

// FailureKind classifies why a fetch failed
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureMissingCredential
	FailureTransport
	FailureHTTPStatus
	FailureQuotaExceeded
	FailureMalformedPayload
	FailureNotFound
)

func (k FailureKind) String() string {
	switch k {
	case FailureMissingCredential:
		return "missing_credential"
	case FailureTransport:
		return "transport"
	case FailureHTTPStatus:
		return "http_status"
	case FailureQuotaExceeded:
		return "quota_exceeded"
	case FailureMalformedPayload:
		return "malformed_payload"
	case FailureNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// FetchResult is what every adapter returns; adapters never return Go errors.
type FetchResult struct {
	Status  FetchStatus
	Records []WeatherRecord
	Failure FailureKind
	Err     *errors.AppError
}

// NewFetchResult wraps records as data, or empty when there are none
func NewFetchResult(records []WeatherRecord) FetchResult {
	if len(records) == 0 {
		return FetchResult{Status: FetchStatusEmpty}
	}
	return FetchResult{Status: FetchStatusData, Records: records}
}

// FailedResult builds a failed result of the given kind
func FailedResult(kind FailureKind, err *errors.AppError) FetchResult {
	return FetchResult{Status: FetchStatusFailed, Failure: kind, Err: err}
}

// HasData reports whether the result carries at least one record
func (r FetchResult) HasData() bool {
	return r.Status == FetchStatusData && len(r.Records) > 0
}

// HistoricalProvider is implemented by every weather source adapter
type HistoricalProvider interface {
	Name() string
	CredentialKey() string
	Fetch(ctx context.Context, query FetchQuery) FetchResult
}

// Geocoder resolves a free-text place name to coordinates
type Geocoder interface {
	Resolve(ctx context.Context, location string) (Coordinates, error)
}

// CredentialsProvider returns provider secrets keyed by credential name
type CredentialsProvider interface {
	Credentials(ctx context.Context) (map[string]string, error)
}
