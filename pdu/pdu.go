// Package pdu implements the GivEnergy transparent sub-protocol's typed
// message family: heartbeat, and transparent read-holding, read-input,
// write-holding and null messages. Each type knows how to encode itself
// (after the 8-byte frame header the framer owns), decode itself from a
// frame body, validate its own semantic state, and, for requests, produce
// an expected-response template.
package pdu

import (
	"fmt"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// DefaultAdapterSerial is substituted when a request is built without an
// explicit adapter serial, matching the source dialect's own default.
const DefaultAdapterSerial = "AB1234G567"

// PDU is implemented by every request and response message in the family.
type PDU interface {
	// MainFunctionCode is the outer function the framer carries in fid.
	MainFunctionCode() common.MainFunctionCode
	// Encode renders the in-frame body. The framer wraps it with the
	// 8-byte header and the result becomes a complete outbound packet.
	Encode() ([]byte, error)
	// ShapeHash identifies the message's structural identity.
	ShapeHash() ShapeHash
}

// Request is implemented by PDUs this client sends.
type Request interface {
	PDU
	// ExpectedResponse returns a template of the response this request
	// should elicit, carrying the same shape-hash keys, so the coordinator
	// can register it against incoming traffic before the request is sent.
	ExpectedResponse() PDU
	// Validate checks semantic state (write-safety, ranges) ahead of
	// encoding. A request failing validation is never put on the wire.
	Validate() error
}

// Response is implemented by PDUs decoded off the wire.
type Response interface {
	PDU
	// IsError reports whether the high bit of the inner function code was
	// set, marking this as an error response.
	IsError() bool
}

// ShapeHash is a comparable key identifying a message's structural shape:
// main and inner function code, slave address, and the transparent-specific
// keys named in the data model (base+count for reads, register index for
// writes, adapter type for heartbeats). Register/write values are
// deliberately excluded, so a request's expected response and the response
// that answers it hash equal.
type ShapeHash struct {
	Main  common.MainFunctionCode
	Inner common.InnerFunctionCode
	Slave common.SlaveAddress
	A, B  int
}

func (h ShapeHash) String() string {
	return fmt.Sprintf("main=%d/inner=%d/slave=0x%02x/%d,%d", h.Main, h.Inner, h.Slave, h.A, h.B)
}

func serialOrDefault(s string) string {
	if s == "" {
		return DefaultAdapterSerial
	}
	return s
}
