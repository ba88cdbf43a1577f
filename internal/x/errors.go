package x

import (
	"errors"
	"fmt"
)

// ConnError is a transport failure. It is fatal: the event loop cannot
// continue without its connection.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// ProtocolError is a malformed or unexpectedly shaped reply. The operation
// that hit it is aborted; the loop continues.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error in %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// RequestError is the server refusing an operation. State is left unchanged
// by the caller.
type RequestError struct {
	Op  string
	Win Xid
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s on %s refused: %v", e.Op, e.Win, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// CapabilityError is a required protocol extension missing or at an
// incompatible version. Fatal at startup.
type CapabilityError struct {
	Extension string
	Detail    string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("required extension %s unavailable: %s", e.Extension, e.Detail)
}

// ErrBadPropertyData marks property payloads whose shape does not match
// their declared type. Callers treat the property as absent.
var ErrBadPropertyData = errors.New("malformed property data")

// IsFatal reports whether err should terminate the event loop rather than
// be recovered from locally.
func IsFatal(err error) bool {
	var ce *ConnError
	var cap *CapabilityError
	return errors.As(err, &ce) || errors.As(err, &cap)
}
