package pdu

import (
	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/wire"
)

// Warner receives non-fatal decode-time observations (padding mismatch,
// suspicious null-response contents). The response CRC is neither checked
// nor reported. A nil Warner is a silent no-op; the coordinator normally
// passes its logger's Warn method.
type Warner func(format string, args ...interface{})

func (w Warner) warn(format string, args ...interface{}) {
	if w != nil {
		w(format, args...)
	}
}

// transparentRequestPrefix is the fixed portion common to every outgoing
// Transparent message, before its function-specific bytes.
type transparentRequestPrefix struct {
	AdapterSerial string
	SlaveAddress  common.SlaveAddress
	Inner         common.InnerFunctionCode
}

func encodeTransparentRequestPrefix(e *wire.Encoder, p transparentRequestPrefix) {
	e.PutASCII(serialOrDefault(p.AdapterSerial), 10)
	e.PutUint64(common.PaddingRequest)
	e.PutUint8(uint8(p.SlaveAddress))
	e.PutUint8(uint8(p.Inner))
}

func decodeTransparentRequestPrefix(d *wire.Decoder) (transparentRequestPrefix, error) {
	var p transparentRequestPrefix
	serial, err := d.ASCII(10)
	if err != nil {
		return p, err
	}
	if _, err := d.Uint64(); err != nil { // padding: not validated on requests either direction
		return p, err
	}
	slave, err := d.Uint8()
	if err != nil {
		return p, err
	}
	inner, err := d.Uint8()
	if err != nil {
		return p, err
	}
	p.AdapterSerial = serial
	p.SlaveAddress = common.SlaveAddress(slave)
	p.Inner = common.InnerFunctionCode(inner)
	return p, nil
}

// transparentResponsePrefix is the fixed portion common to every incoming
// Transparent message: the request prefix plus the inverter serial the
// dialect inserts immediately after the inner function code.
type transparentResponsePrefix struct {
	AdapterSerial  string
	SlaveAddress   common.SlaveAddress
	Inner          common.InnerFunctionCode // error bit masked off
	Error          bool
	InverterSerial string
}

func encodeTransparentResponsePrefix(e *wire.Encoder, p transparentResponsePrefix) {
	e.PutASCII(serialOrDefault(p.AdapterSerial), 10)
	fc := p.Inner
	padding := common.PaddingResponse
	if p.Error {
		fc = fc.WithError()
		padding = common.PaddingErrorResponse
	}
	e.PutUint64(padding)
	e.PutUint8(uint8(p.SlaveAddress))
	e.PutUint8(uint8(fc))
	e.PutASCII(serialOrDefault(p.InverterSerial), 10)
}

func decodeTransparentResponsePrefix(d *wire.Decoder, warn Warner) (transparentResponsePrefix, error) {
	var p transparentResponsePrefix
	serial, err := d.ASCII(10)
	if err != nil {
		return p, err
	}
	padding, err := d.Uint64()
	if err != nil {
		return p, err
	}
	slave, err := d.Uint8()
	if err != nil {
		return p, err
	}
	fcRaw, err := d.Uint8()
	if err != nil {
		return p, err
	}
	fc := common.InnerFunctionCode(fcRaw)
	isError := fc.IsError()
	expectedPadding := common.PaddingResponse
	if isError {
		expectedPadding = common.PaddingErrorResponse
	}
	if padding != expectedPadding {
		warn.warn("transparent response: expected padding 0x%x, found 0x%x", expectedPadding, padding)
	}
	inverterSerial, err := d.ASCII(10)
	if err != nil {
		return p, err
	}
	p.AdapterSerial = serial
	p.SlaveAddress = common.SlaveAddress(slave)
	p.Inner = fc.Masked()
	p.Error = isError
	p.InverterSerial = inverterSerial
	return p, nil
}
