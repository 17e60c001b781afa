package credentials

import "fmt"

// ErrorKind closes the set of ways tracking can fail, replacing ad-hoc
// string comparisons on error messages with a typed tag.
type ErrorKind int

const (
	KindUninstrumented ErrorKind = iota
	KindOverflow
	KindTransport
	KindHTTP
	KindStoreWrite
	KindShutdownTimeout
	KindAggregator
)

func (k ErrorKind) String() string {
	switch k {
	case KindUninstrumented:
		return "uninstrumented"
	case KindOverflow:
		return "overflow"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindStoreWrite:
		return "store_write"
	case KindShutdownTimeout:
		return "shutdown_timeout"
	case KindAggregator:
		return "aggregator"
	default:
		return "unknown"
	}
}

// TrackingError is the closed variant of telemetry-pipeline failures:
// every non-fatal failure the pipeline can produce carries a Kind so
// callers can branch on it instead of matching message text.
type TrackingError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *TrackingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *TrackingError) Unwrap() error {
	return e.Err
}

func newTrackingError(kind ErrorKind, msg string, err error) *TrackingError {
	return &TrackingError{Kind: kind, Msg: msg, Err: err}
}
