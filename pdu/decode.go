package pdu

import (
	"fmt"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// Decode dispatches a frame body to the matching PDU decoder by main
// function code and, for Transparent frames, by inner function code — the
// same two-level dispatch the source performs via subclass lookup. direction
// distinguishes a Heartbeat request (received from the adapter) from a
// Heartbeat response (this client's own mirrored reply, seen only in tests
// and archived traffic); responses of every other kind are unambiguous.
func Decode(main common.MainFunctionCode, body []byte, direction Direction, warn Warner) (PDU, error) {
	switch main {
	case common.MainFunctionHeartbeat:
		if direction == DirectionRequest {
			return DecodeHeartbeatRequest(body)
		}
		return DecodeHeartbeatResponse(body)
	case common.MainFunctionTransparent:
		return decodeTransparent(body, warn)
	default:
		return nil, &common.InvalidFrame{Reason: fmt.Sprintf("unrecognized main function code 0x%02x", main), Data: body}
	}
}

// Direction disambiguates which of a message pair to decode into when the
// main function code alone can't tell (only Heartbeat, whose request and
// response share an identical byte layout).
type Direction int

const (
	DirectionRequest Direction = iota
	DirectionResponse
)

func decodeTransparent(body []byte, warn Warner) (PDU, error) {
	// Peek the inner function code without consuming: 10 (serial) + 8
	// (padding) + 1 (slave) bytes precede it.
	if len(body) < 20 {
		return nil, &common.InvalidFrame{Reason: "transparent frame too short to carry an inner function code", Data: body}
	}
	fc := common.InnerFunctionCode(body[19])
	switch fc.Masked() {
	case common.InnerFunctionNull:
		return DecodeNullResponse(body, warn)
	case common.InnerFunctionReadHolding:
		return DecodeReadHoldingRegistersResponse(body, warn)
	case common.InnerFunctionReadInput:
		return DecodeReadInputRegistersResponse(body, warn)
	case common.InnerFunctionWriteHolding:
		return DecodeWriteHoldingRegisterResponse(body, warn)
	default:
		return nil, &common.InvalidFrame{
			Reason: fmt.Sprintf("unrecognized transparent inner function code 0x%02x", fc.Masked()),
			Data:   body,
		}
	}
}
