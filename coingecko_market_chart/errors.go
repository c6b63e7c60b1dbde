package coingecko_market_chart

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed
type Kind int

const (
	KindTransport Kind = iota + 1
	KindUpstreamStatus
	KindParse
	KindInvalidParams
)

var (
	ErrTransport      = errors.New("transport error")
	ErrUpstreamStatus = errors.New("upstream error")
	ErrParse          = errors.New("parse error")
	ErrInvalidParams  = errors.New("invalid params")
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindParse:
		return "parse"
	case KindInvalidParams:
		return "invalid_params"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUpstreamStatus:
		return ErrUpstreamStatus
	case KindParse:
		return ErrParse
	case KindInvalidParams:
		return ErrInvalidParams
	default:
		return nil
	}
}

// FetchError is the failure result of a fetch
type FetchError struct {
	Kind Kind
	Coin string
	// StatusCode is set for KindUpstreamStatus
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindUpstreamStatus {
		return fmt.Sprintf("upstream error: status %d for coin %q", e.StatusCode, e.Coin)
	}
	if e.Err == nil {
		return fmt.Sprintf("%v for coin %q", e.Kind.sentinel(), e.Coin)
	}
	return fmt.Sprintf("%v for coin %q: %v", e.Kind.sentinel(), e.Coin, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *FetchError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newFetchError(kind Kind, coin string, err error) *FetchError {
	return &FetchError{Kind: kind, Coin: coin, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not a FetchError
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
