package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra payload.
var (
	// ErrNotConnected is returned by operations attempted before Connect.
	ErrNotConnected = errors.New("givenergy-modbus: not connected")
	// ErrAlreadyConnected guards against a second concurrent Connect.
	ErrAlreadyConnected = errors.New("givenergy-modbus: already connected")
	// ErrShortBuffer is returned by the codec when decoding runs past the
	// end of the supplied bytes.
	ErrShortBuffer = errors.New("givenergy-modbus: short buffer")
	// ErrTimeout is returned when a request exhausts its retry budget
	// without a matching response.
	ErrTimeout = errors.New("givenergy-modbus: timeout awaiting response")
	// ErrCancelled is returned to in-flight requests when the caller or a
	// reconnect cancels them.
	ErrCancelled = errors.New("givenergy-modbus: request cancelled")
	// ErrClosing is returned to any request still in flight when the
	// coordinator is shutting down.
	ErrClosing = errors.New("givenergy-modbus: coordinator closing")
	// ErrUnknownRegister is returned when a register index has no
	// descriptor in the static map.
	ErrUnknownRegister = errors.New("givenergy-modbus: register has no descriptor")
)

// InvalidFrame reports a byte-stream envelope that could not be parsed:
// header mismatch, truncation, or an unrecognized function code. The framer
// resyncs and continues; it is not fatal to the session.
type InvalidFrame struct {
	Reason string
	Data   []byte
}

func (e *InvalidFrame) Error() string {
	return fmt.Sprintf("givenergy-modbus: invalid frame: %s (%d bytes)", e.Reason, len(e.Data))
}

// InvalidPduState reports a structurally well-formed but semantically
// invalid PDU: a write to a non-writable register, a value out of range, or
// similar. Quirk marks a known-benign case (e.g. an empty-serial BMS echo)
// that callers may choose to log and discard rather than treat as an error.
type InvalidPduState struct {
	Reason string
	Quirk  bool
}

func (e *InvalidPduState) Error() string {
	return fmt.Sprintf("givenergy-modbus: invalid pdu state: %s", e.Reason)
}

// RegisterValueError reports that a raw register value could not be
// converted by its descriptor's data type (a type-level failure, distinct
// from a sane-range failure).
type RegisterValueError struct {
	Bank  Bank
	Index uint16
	Raw   uint16
	Cause error
}

func (e *RegisterValueError) Error() string {
	return fmt.Sprintf("givenergy-modbus: %s:%d raw=0x%04x: %v", e.Bank, e.Index, e.Raw, e.Cause)
}

func (e *RegisterValueError) Unwrap() error { return e.Cause }

// RegisterNotSane reports that a converted register value failed its unit's
// sanity-range predicate (the value decoded but isn't plausible).
type RegisterNotSane struct {
	Bank  Bank
	Index uint16
	Value float64
	Unit  string
}

func (e *RegisterNotSane) Error() string {
	return fmt.Sprintf("givenergy-modbus: %s:%d value %v is not a sane %s", e.Bank, e.Index, e.Value, e.Unit)
}
