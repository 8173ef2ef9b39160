package pdu

import (
	"fmt"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
	"github.com/Moonlight-Companies/givenergy-modbus/wire"
)

// WriteHoldingRegisterRequest asks the inverter to set one holding
// register. Encode refuses to produce bytes for any register outside the
// static write-safe allowlist.
type WriteHoldingRegisterRequest struct {
	AdapterSerial string
	SlaveAddress  common.SlaveAddress
	Register      uint16
	Value         uint16
}

func (r *WriteHoldingRegisterRequest) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionTransparent
}

func (r *WriteHoldingRegisterRequest) ShapeHash() ShapeHash {
	return ShapeHash{
		Main: common.MainFunctionTransparent, Inner: common.InnerFunctionWriteHolding,
		Slave: r.SlaveAddress, A: int(r.Register),
	}
}

func (r *WriteHoldingRegisterRequest) Validate() error {
	if !register.WriteSafe(r.Register) {
		return &common.InvalidPduState{Reason: fmt.Sprintf("register %d is not safe to write to", r.Register)}
	}
	return nil
}

func (r *WriteHoldingRegisterRequest) Encode() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	e := wire.NewEncoder()
	encodeTransparentRequestPrefix(e, transparentRequestPrefix{
		AdapterSerial: r.AdapterSerial, SlaveAddress: r.SlaveAddress, Inner: common.InnerFunctionWriteHolding,
	})
	e.PutUint16(r.Register)
	e.PutUint16(r.Value)
	crc := crcOverInnerFC(common.InnerFunctionWriteHolding, func(e *wire.Encoder) {
		e.PutUint16(r.Register)
		e.PutUint16(r.Value)
	})
	e.PutUint16(crc)
	return e.Bytes(), nil
}

// ExpectedResponse returns the response template matching this request's
// shape-hash key (slave address, register index).
func (r *WriteHoldingRegisterRequest) ExpectedResponse() PDU {
	return &WriteHoldingRegisterResponse{SlaveAddress: r.SlaveAddress, Register: r.Register, Value: r.Value}
}

// WriteHoldingRegisterResponse echoes back the register and the value the
// inverter actually applied (readback), which may differ from the request
// when the inverter clamps or rejects the write silently.
type WriteHoldingRegisterResponse struct {
	AdapterSerial  string
	SlaveAddress   common.SlaveAddress
	Error          bool
	InverterSerial string
	Register       uint16
	Count          uint16 // always 1 on the wire
	Value          uint16
	Check          uint16
}

func (r *WriteHoldingRegisterResponse) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionTransparent
}

func (r *WriteHoldingRegisterResponse) IsError() bool { return r.Error }

func (r *WriteHoldingRegisterResponse) ShapeHash() ShapeHash {
	return ShapeHash{
		Main: common.MainFunctionTransparent, Inner: common.InnerFunctionWriteHolding,
		Slave: r.SlaveAddress, A: int(r.Register),
	}
}

func (r *WriteHoldingRegisterResponse) Encode() ([]byte, error) {
	e := wire.NewEncoder()
	encodeTransparentResponsePrefix(e, transparentResponsePrefix{
		AdapterSerial: r.AdapterSerial, SlaveAddress: r.SlaveAddress, Inner: common.InnerFunctionWriteHolding,
		Error: r.Error, InverterSerial: r.InverterSerial,
	})
	e.PutUint16(r.Register)
	count := r.Count
	if count == 0 {
		count = 1
	}
	e.PutUint16(count)
	e.PutUint16(r.Value)
	e.PutUint16(r.Check)
	return e.Bytes(), nil
}

// DecodeWriteHoldingRegisterResponse decodes function 6's response body. It
// warns, rather than rejects, a response for a register outside the
// write-safe allowlist that isn't also flagged as an error — the source
// dialect logs this rather than treating it as fatal.
func DecodeWriteHoldingRegisterResponse(body []byte, warn Warner) (*WriteHoldingRegisterResponse, error) {
	d := wire.NewDecoder(body)
	prefix, err := decodeTransparentResponsePrefix(d, warn)
	if err != nil {
		return nil, err
	}
	r := &WriteHoldingRegisterResponse{
		AdapterSerial: prefix.AdapterSerial, SlaveAddress: prefix.SlaveAddress,
		Error: prefix.Error, InverterSerial: prefix.InverterSerial,
	}
	if r.Register, err = d.Uint16(); err != nil {
		return nil, err
	}
	if r.Count, err = d.Uint16(); err != nil {
		return nil, err
	}
	if r.Value, err = d.Uint16(); err != nil {
		return nil, err
	}
	if r.Check, err = d.Uint16(); err != nil {
		return nil, err
	}
	if !register.WriteSafe(r.Register) && !r.Error {
		warn.warn("write-holding response: register %d is not in the write-safe allowlist", r.Register)
	}
	return r, nil
}

// NewWriteHoldingRegisterRequest builds a function 6 request targeting the
// inverter slave address.
func NewWriteHoldingRegisterRequest(reg, value uint16) *WriteHoldingRegisterRequest {
	return &WriteHoldingRegisterRequest{SlaveAddress: common.SlaveInverter, Register: reg, Value: value}
}
