package errors

import "fmt"

// Kind categorizes application errors so transports can map them to a status.
type Kind int

const (
	Unknown Kind = iota
	// InvalidInput means the caller sent something unusable (HTTP 400).
	InvalidInput
	// NotFound means a stored analysis does not exist (HTTP 404).
	NotFound
	// Unreachable means the target page could not be fetched (HTTP 502).
	Unreachable
	// Timeout means the analysis ran past its deadline (HTTP 504).
	Timeout
	// ParsingFailed means the fetched document could not be parsed (HTTP 500).
	ParsingFailed
	// Canceled means the caller went away before the analysis finished (HTTP 499).
	Canceled
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return `invalid_input`
	case NotFound:
		return `not_found`
	case Unreachable:
		return `unreachable`
	case Timeout:
		return `timeout`
	case ParsingFailed:
		return `parsing_failed`
	case Canceled:
		return `canceled`
	default:
		return `unknown`
	}
}

// AppError carries a category, a user facing message and the original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // status returned by the analyzed site, if any
	Message        string
	Cause          error
}

// E builds an *AppError.
func E(kind Kind, msg string, cause error) *AppError {
	return &AppError{Kind: kind, Message: msg, Cause: cause}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first *AppError in the chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
