package pdu

import (
	"bytes"
	"testing"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// S1. Heartbeat round-trip: a HeartbeatRequest decoded from the wire, then
// mirrored back, re-encodes to the identical bytes.
func TestHeartbeatRoundTrip(t *testing.T) {
	body := append([]byte("WF1234G567"), 0x01)

	req, err := DecodeHeartbeatRequest(body)
	if err != nil {
		t.Fatalf("DecodeHeartbeatRequest: %v", err)
	}
	if req.AdapterSerial != "WF1234G567" || req.AdapterType != 1 {
		t.Fatalf("got %+v", req)
	}

	resp := req.ExpectedResponse()
	encoded, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, body) {
		t.Fatalf("got % x, want % x", encoded, body)
	}
}

// S2. Read-input request encoding against the spec's literal hex example.
func TestReadInputRegistersRequestEncoding(t *testing.T) {
	req := &ReadRegistersRequest{
		AdapterSerial: "AB1234G567",
		SlaveAddress:  common.SlaveBatteryBase,
		Inner:         common.InnerFunctionReadInput,
		BaseRegister:  0x10,
		Count:         6,
	}
	got, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// "AB1234G567" + 8-byte padding(8) + slave(0x32) + fn(0x04) + base(0x0010)
	// + count(0x0006) + crc(0x0754), per the spec's literal S2 example.
	want := append([]byte("AB1234G567"), 0, 0, 0, 0, 0, 0, 0, 8, 0x32, 0x04, 0x00, 0x10, 0x00, 0x06, 0x07, 0x54)
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x\nwant % x", got, want)
	}
}

// S4. Write-register validation: a write-safe register encodes; a
// non-allowlisted register is rejected at encode time with no bytes sent.
func TestWriteHoldingRegisterValidation(t *testing.T) {
	ok := NewWriteHoldingRegisterRequest(20, 1) // ENABLE_CHARGE_TARGET
	if _, err := ok.Encode(); err != nil {
		t.Fatalf("expected register 20 to be write-safe, got %v", err)
	}

	bad := NewWriteHoldingRegisterRequest(179, 1)
	if _, err := bad.Encode(); err == nil {
		t.Fatal("expected register 179 to be rejected")
	} else if _, ok := err.(*common.InvalidPduState); !ok {
		t.Fatalf("expected InvalidPduState, got %T: %v", err, err)
	}
}

// Property 5. A request's expected response shares its shape hash with the
// response actually observed for it.
func TestShapeHashEquivalence(t *testing.T) {
	req := NewReadHoldingRegistersRequest(common.SlaveInverter, 0, 60)
	resp := &ReadRegistersResponse{
		SlaveAddress: common.SlaveInverter, Inner: common.InnerFunctionReadHolding,
		BaseRegister: 0, Count: 60, Values: make([]uint16, 60),
	}
	if req.ExpectedResponse().ShapeHash() != resp.ShapeHash() {
		t.Fatalf("shape hash mismatch: %v vs %v", req.ExpectedResponse().ShapeHash(), resp.ShapeHash())
	}

	wreq := NewWriteHoldingRegisterRequest(20, 1)
	wresp := &WriteHoldingRegisterResponse{SlaveAddress: common.SlaveInverter, Register: 20, Value: 0}
	if wreq.ExpectedResponse().ShapeHash() != wresp.ShapeHash() {
		t.Fatal("write shape hash mismatch")
	}
}

// Null responses warn rather than reject on non-null content.
func TestNullResponseWarnsOnNonZeroValues(t *testing.T) {
	body := make([]byte, 0, 96)
	body = append(body, []byte("AB1234G567")...)
	body = append(body, 0, 0, 0, 0, 0, 0, 0, 0x8A) // response padding
	body = append(body, byte(common.SlaveBatteryBase), 0x00)
	body = append(body, []byte("\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")...) // inverter serial, all-NUL
	for i := 0; i < nullResponseWordCount; i++ {
		if i == 5 {
			body = append(body, 0x00, 0x01) // a single non-zero word
		} else {
			body = append(body, 0x00, 0x00)
		}
	}
	body = append(body, 0x00, 0x00) // check

	var warned bool
	warn := Warner(func(format string, args ...interface{}) { warned = true })
	resp, err := DecodeNullResponse(body, warn)
	if err != nil {
		t.Fatalf("DecodeNullResponse: %v", err)
	}
	if !warned {
		t.Fatal("expected a warning for the non-zero register value")
	}
	if resp.Values[5] != 1 {
		t.Fatalf("got %d", resp.Values[5])
	}
}
