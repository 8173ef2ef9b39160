package pdu

import (
	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/wire"
)

// HeartbeatRequest is the data adapter's unsolicited liveness probe. The
// coordinator must mirror it back as a HeartbeatResponse within the
// heartbeat deadline or the adapter closes the socket.
type HeartbeatRequest struct {
	AdapterSerial string
	AdapterType   uint8
}

func (r *HeartbeatRequest) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionHeartbeat
}

func (r *HeartbeatRequest) Encode() ([]byte, error) {
	e := wire.NewEncoder()
	e.PutASCII(serialOrDefault(r.AdapterSerial), 10)
	e.PutUint8(r.AdapterType)
	return e.Bytes(), nil
}

func (r *HeartbeatRequest) ShapeHash() ShapeHash {
	return ShapeHash{Main: common.MainFunctionHeartbeat, A: int(r.AdapterType)}
}

func (r *HeartbeatRequest) Validate() error { return nil }

// ExpectedResponse mirrors the adapter type into a HeartbeatResponse
// template, matching the source's own mirror-back behavior.
func (r *HeartbeatRequest) ExpectedResponse() PDU {
	return &HeartbeatResponse{AdapterSerial: r.AdapterSerial, AdapterType: r.AdapterType}
}

// HeartbeatResponse is this client's mirrored reply to a HeartbeatRequest.
type HeartbeatResponse struct {
	AdapterSerial string
	AdapterType   uint8
}

func (r *HeartbeatResponse) MainFunctionCode() common.MainFunctionCode {
	return common.MainFunctionHeartbeat
}

func (r *HeartbeatResponse) Encode() ([]byte, error) {
	e := wire.NewEncoder()
	e.PutASCII(serialOrDefault(r.AdapterSerial), 10)
	e.PutUint8(r.AdapterType)
	return e.Bytes(), nil
}

func (r *HeartbeatResponse) ShapeHash() ShapeHash {
	return ShapeHash{Main: common.MainFunctionHeartbeat, A: int(r.AdapterType)}
}

func (r *HeartbeatResponse) IsError() bool { return false }

func decodeHeartbeatBody(body []byte) (serial string, adapterType uint8, err error) {
	d := wire.NewDecoder(body)
	if serial, err = d.ASCII(10); err != nil {
		return "", 0, err
	}
	if adapterType, err = d.Uint8(); err != nil {
		return "", 0, err
	}
	return serial, adapterType, nil
}

// DecodeHeartbeatRequest decodes a heartbeat frame body received from the
// data adapter.
func DecodeHeartbeatRequest(body []byte) (*HeartbeatRequest, error) {
	serial, at, err := decodeHeartbeatBody(body)
	if err != nil {
		return nil, err
	}
	return &HeartbeatRequest{AdapterSerial: serial, AdapterType: at}, nil
}

// DecodeHeartbeatResponse decodes a heartbeat frame body this client sent
// (used by tests asserting round-trip encoding).
func DecodeHeartbeatResponse(body []byte) (*HeartbeatResponse, error) {
	serial, at, err := decodeHeartbeatBody(body)
	if err != nil {
		return nil, err
	}
	return &HeartbeatResponse{AdapterSerial: serial, AdapterType: at}, nil
}
