package pdu

import (
	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/wire"
)

// nullResponseWordCount is the fixed number of zero u16 words a Null
// response carries ahead of its check code.
const nullResponseWordCount = 62

// NullResponse is an unsolicited transparent response carrying no useful
// payload (inner function code 0) — typically seen from slave addresses
// with nothing actually attached. It is never produced by a request on
// this client's side; it only ever arrives off the wire.
type NullResponse struct {
	AdapterSerial  string
	SlaveAddress   common.SlaveAddress
	Error          bool
	InverterSerial string
	Values         [nullResponseWordCount]uint16
	Check          uint16
}

func (r *NullResponse) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionTransparent
}

func (r *NullResponse) IsError() bool { return r.Error }

func (r *NullResponse) ShapeHash() ShapeHash {
	return ShapeHash{Main: common.MainFunctionTransparent, Inner: common.InnerFunctionNull, Slave: r.SlaveAddress}
}

func (r *NullResponse) Encode() ([]byte, error) {
	e := wire.NewEncoder()
	encodeTransparentResponsePrefix(e, transparentResponsePrefix{
		AdapterSerial:  r.AdapterSerial,
		SlaveAddress:   r.SlaveAddress,
		Inner:          common.InnerFunctionNull,
		Error:          r.Error,
		InverterSerial: r.InverterSerial,
	})
	for _, v := range r.Values {
		e.PutUint16(v)
	}
	e.PutUint16(r.Check)
	return e.Bytes(), nil
}

// DecodeNullResponse decodes a Null response body. It warns, rather than
// rejects, if any value is non-zero or the inverter serial isn't all NUL —
// both are treated as curiosities of an unsolicited discovery echo, not
// errors, per the dialect's own stance on this message.
func DecodeNullResponse(body []byte, warn Warner) (*NullResponse, error) {
	d := wire.NewDecoder(body)
	prefix, err := decodeTransparentResponsePrefix(d, warn)
	if err != nil {
		return nil, err
	}
	r := &NullResponse{
		AdapterSerial:  prefix.AdapterSerial,
		SlaveAddress:   prefix.SlaveAddress,
		Error:          prefix.Error,
		InverterSerial: prefix.InverterSerial,
	}
	nonZero := false
	for i := range r.Values {
		v, err := d.Uint16()
		if err != nil {
			return nil, err
		}
		r.Values[i] = v
		if v != 0 {
			nonZero = true
		}
	}
	if r.Check, err = d.Uint16(); err != nil {
		return nil, err
	}
	if nonZero {
		warn.warn("null response: expected all-zero register values, slave=0x%02x", r.SlaveAddress)
	}
	if !isAllNUL(r.InverterSerial) {
		warn.warn("null response: expected all-NUL inverter serial, got %q", r.InverterSerial)
	}
	return r, nil
}

func isAllNUL(s string) bool {
	for _, c := range s {
		if c != 0 {
			return false
		}
	}
	return true
}
