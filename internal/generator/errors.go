package generator

import "errors"

var (
	ErrMissingConfig     = errors.New("generator: API key is not configured")
	ErrInvalidInput      = errors.New("generator: invalid request")
	ErrRateLimited       = errors.New("generator: rate limit exceeded")
	ErrAuthFailed        = errors.New("generator: authentication failed")
	ErrAccessDenied      = errors.New("generator: access denied")
	ErrMalformedResponse = errors.New("generator: malformed response")
	ErrUpstream          = errors.New("generator: upstream error")
)

// ErrorKind classifies a generation failure for display
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindMissingConfig
	KindInvalidInput
	KindRateLimited
	KindAuthFailed
	KindAccessDenied
	KindMalformedResponse
	KindUpstream
)

// Kind returns the classification of err
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingConfig):
		return KindMissingConfig
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrAuthFailed):
		return KindAuthFailed
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	default:
		return KindUpstream
	}
}

// MessageKey is the i18n key describing the kind to a user
func (k ErrorKind) MessageKey() string {
	switch k {
	case KindNone:
		return ""
	case KindMissingConfig:
		return "errorMissingKey"
	case KindInvalidInput:
		return "errorInvalidInput"
	case KindRateLimited:
		return "errorRateLimited"
	case KindAuthFailed:
		return "errorAuth"
	case KindAccessDenied:
		return "errorAccessDenied"
	case KindMalformedResponse:
		return "errorMalformed"
	default:
		return "errorFailed"
	}
}
