package pdu

import (
	"fmt"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/wire"
)

// maxRegisterCount is the largest register_count a single read-registers
// request may carry.
const maxRegisterCount = 60

func checkReadRegistersRange(base uint16, count int) error {
	if count <= 0 || maxRegisterCount < count {
		return &common.InvalidPduState{Reason: fmt.Sprintf("register count %d must be in (0,%d]", count, maxRegisterCount)}
	}
	return nil
}

func crcOverInnerFC(inner common.InnerFunctionCode, rest ...func(*wire.Encoder)) uint16 {
	e := wire.NewEncoder()
	e.PutUint8(uint8(inner))
	for _, f := range rest {
		f(e)
	}
	return wire.CRC16Modbus(e.Bytes())
}

// ReadRegistersRequest requests a contiguous span of registers from one
// bank at a given slave address. Bank is fixed by the concrete inner
// function code (Holding for function 3, Input for function 4).
type ReadRegistersRequest struct {
	AdapterSerial string
	SlaveAddress  common.SlaveAddress
	Inner         common.InnerFunctionCode // InnerFunctionReadHolding or InnerFunctionReadInput
	BaseRegister  uint16
	Count         uint16
}

func (r *ReadRegistersRequest) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionTransparent
}

func (r *ReadRegistersRequest) ShapeHash() ShapeHash {
	return ShapeHash{
		Main: common.MainFunctionTransparent, Inner: r.Inner, Slave: r.SlaveAddress,
		A: int(r.BaseRegister), B: int(r.Count),
	}
}

func (r *ReadRegistersRequest) Validate() error {
	return checkReadRegistersRange(r.BaseRegister, int(r.Count))
}

func (r *ReadRegistersRequest) Encode() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	e := wire.NewEncoder()
	encodeTransparentRequestPrefix(e, transparentRequestPrefix{
		AdapterSerial: r.AdapterSerial, SlaveAddress: r.SlaveAddress, Inner: r.Inner,
	})
	e.PutUint16(r.BaseRegister)
	e.PutUint16(r.Count)
	crc := crcOverInnerFC(r.Inner, func(e *wire.Encoder) {
		e.PutUint16(r.BaseRegister)
		e.PutUint16(r.Count)
	})
	e.PutUint16(crc)
	return e.Bytes(), nil
}

// ExpectedResponse returns the response template matching this request's
// shape-hash keys (slave address, base register, count).
func (r *ReadRegistersRequest) ExpectedResponse() PDU {
	return &ReadRegistersResponse{
		SlaveAddress: r.SlaveAddress, Inner: r.Inner, BaseRegister: r.BaseRegister, Count: r.Count,
	}
}

// ReadRegistersResponse carries the register values returned for a
// ReadRegistersRequest, or none at all when Error is set.
type ReadRegistersResponse struct {
	AdapterSerial  string
	SlaveAddress   common.SlaveAddress
	Inner          common.InnerFunctionCode
	Error          bool
	InverterSerial string
	BaseRegister   uint16
	Count          uint16
	Values         []uint16
	Check          uint16
}

func (r *ReadRegistersResponse) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionTransparent
}

func (r *ReadRegistersResponse) IsError() bool { return r.Error }

func (r *ReadRegistersResponse) ShapeHash() ShapeHash {
	return ShapeHash{
		Main: common.MainFunctionTransparent, Inner: r.Inner, Slave: r.SlaveAddress,
		A: int(r.BaseRegister), B: int(r.Count),
	}
}

// ToMap returns the response's values keyed by absolute register index,
// accounting for BaseRegister.
func (r *ReadRegistersResponse) ToMap() map[uint16]uint16 {
	out := make(map[uint16]uint16, len(r.Values))
	for i, v := range r.Values {
		out[r.BaseRegister+uint16(i)] = v
	}
	return out
}

func (r *ReadRegistersResponse) Encode() ([]byte, error) {
	e := wire.NewEncoder()
	encodeTransparentResponsePrefix(e, transparentResponsePrefix{
		AdapterSerial: r.AdapterSerial, SlaveAddress: r.SlaveAddress, Inner: r.Inner,
		Error: r.Error, InverterSerial: r.InverterSerial,
	})
	e.PutUint16(r.BaseRegister)
	e.PutUint16(r.Count)
	if !r.Error {
		for _, v := range r.Values {
			e.PutUint16(v)
		}
	}
	e.PutUint16(r.Check)
	return e.Bytes(), nil
}

// decodeReadRegistersResponse decodes a read-registers response body for
// the given inner function code (already identified by the caller from the
// frame's transparent prefix).
func decodeReadRegistersResponse(body []byte, inner common.InnerFunctionCode, warn Warner) (*ReadRegistersResponse, error) {
	d := wire.NewDecoder(body)
	prefix, err := decodeTransparentResponsePrefix(d, warn)
	if err != nil {
		return nil, err
	}
	r := &ReadRegistersResponse{
		AdapterSerial: prefix.AdapterSerial, SlaveAddress: prefix.SlaveAddress, Inner: inner,
		Error: prefix.Error, InverterSerial: prefix.InverterSerial,
	}
	if r.BaseRegister, err = d.Uint16(); err != nil {
		return nil, err
	}
	if r.Count, err = d.Uint16(); err != nil {
		return nil, err
	}
	if !prefix.Error {
		if int(r.Count) != 1 && r.BaseRegister%60 != 0 {
			warn.warn("read-registers response: base register %d not aligned on 60-register boundary", r.BaseRegister)
		}
		r.Values = make([]uint16, r.Count)
		for i := range r.Values {
			if r.Values[i], err = d.Uint16(); err != nil {
				return nil, err
			}
		}
	}
	if r.Check, err = d.Uint16(); err != nil { // unverified: response CRC algorithm is not validated
		return nil, err
	}
	return r, nil
}

// DecodeReadHoldingRegistersResponse decodes function 3's response body.
func DecodeReadHoldingRegistersResponse(body []byte, warn Warner) (*ReadRegistersResponse, error) {
	return decodeReadRegistersResponse(body, common.InnerFunctionReadHolding, warn)
}

// DecodeReadInputRegistersResponse decodes function 4's response body.
func DecodeReadInputRegistersResponse(body []byte, warn Warner) (*ReadRegistersResponse, error) {
	return decodeReadRegistersResponse(body, common.InnerFunctionReadInput, warn)
}

// NewReadHoldingRegistersRequest builds a function 3 request.
func NewReadHoldingRegistersRequest(slave common.SlaveAddress, base, count uint16) *ReadRegistersRequest {
	return &ReadRegistersRequest{SlaveAddress: slave, Inner: common.InnerFunctionReadHolding, BaseRegister: base, Count: count}
}

// NewReadInputRegistersRequest builds a function 4 request.
func NewReadInputRegistersRequest(slave common.SlaveAddress, base, count uint16) *ReadRegistersRequest {
	return &ReadRegistersRequest{SlaveAddress: slave, Inner: common.InnerFunctionReadInput, BaseRegister: base, Count: count}
}
