package luno

import (
	"errors"
	"fmt"
)

// Kind classifies an Error so callers can branch on business-logic
// failures versus infrastructure failures.
type Kind int

const (
	// KindConfig means the client was constructed with bad configuration,
	// such as an unparseable base URL. Surfaced from NewClient, never per-call.
	KindConfig Kind = iota
	// KindEncode means a value could not be represented on the wire.
	KindEncode
	// KindTransport wraps a connection, timeout or TLS failure from the
	// underlying HTTP client.
	KindTransport
	// KindDecode means the response body did not match the expected shape.
	KindDecode
	// KindRemote means the exchange rejected the request and supplied its
	// own error payload (insufficient balance, invalid order, and so on).
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEncode:
		return "encode"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindRemote:
		return "remote"
	}
	return "unknown"
}

// Error is the single error type returned by this package. Transport and
// decode causes are kept in Err; remote rejections carry the server's
// message and, when supplied, its error code.
type Error struct {
	Kind     Kind
	Endpoint string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRemote && e.Code != "":
		return fmt.Sprintf("luno: %s %s [%s]: %s", e.Kind, e.Endpoint, e.Code, e.Message)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("luno: %s %s: %s: %v", e.Kind, e.Endpoint, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("luno: %s %s: %v", e.Kind, e.Endpoint, e.Err)
	case e.Endpoint != "":
		return fmt.Sprintf("luno: %s %s: %s", e.Kind, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("luno: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRemote reports whether err is a rejection returned by the exchange
// itself, as opposed to a transport or decoding failure.
func IsRemote(err error) bool {
	return errorKind(err) == KindRemote
}

// IsTransport reports whether err was caused by the HTTP transport.
func IsTransport(err error) bool {
	return errorKind(err) == KindTransport
}

// IsDecode reports whether err was caused by an unexpected response shape.
func IsDecode(err error) bool {
	return errorKind(err) == KindDecode
}

func errorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Kind(-1)
}
