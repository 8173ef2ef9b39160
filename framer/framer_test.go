package framer

import (
	"testing"

	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

func heartbeatFrame() []byte {
	// 5959 0001 000d 01 01 "WF1234G567" 01
	out := []byte{0x59, 0x59, 0x00, 0x01, 0x00, 0x0d, 0x01, 0x01}
	out = append(out, []byte("WF1234G567")...)
	out = append(out, 0x01)
	return out
}

// S1. Heartbeat round-trip: the framer recognizes the literal example frame
// and emits exactly one HeartbeatRequest.
func TestFeedDecodesHeartbeatFrame(t *testing.T) {
	f := New(nil)
	var got []pdu.PDU
	f.Feed(heartbeatFrame(), func(p pdu.PDU, err error) {
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		got = append(got, p)
	})
	if len(got) != 1 {
		t.Fatalf("got %d PDUs, want 1", len(got))
	}
	hb, ok := got[0].(*pdu.HeartbeatRequest)
	if !ok {
		t.Fatalf("got %T", got[0])
	}
	if hb.AdapterSerial != "WF1234G567" || hb.AdapterType != 1 {
		t.Fatalf("got %+v", hb)
	}
}

// Property 2. Feeding a concatenation of valid frames split at every
// possible byte boundary yields the same PDU sequence every time, and
// leaves nothing unconsumed.
func TestFeedResilientToArbitraryChunking(t *testing.T) {
	whole := append(heartbeatFrame(), heartbeatFrame()...)

	for split := 1; split < len(whole); split++ {
		f := New(nil)
		var count int
		deliver := func(p pdu.PDU, err error) {
			if err != nil {
				t.Fatalf("split=%d: decode error: %v", split, err)
			}
			count++
		}
		f.Feed(whole[:split], deliver)
		f.Feed(whole[split:], deliver)
		if count != 2 {
			t.Fatalf("split=%d: got %d PDUs, want 2", split, count)
		}
		if len(f.buf) != 0 {
			t.Fatalf("split=%d: %d bytes left unconsumed", split, len(f.buf))
		}
	}
}

// S6 / Property 3. Garbage ahead of a valid frame is discarded by resync;
// the frame is emitted exactly once and the buffer ends up empty.
func TestFeedResyncsPastGarbage(t *testing.T) {
	f := New(nil)
	data := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, heartbeatFrame()...)

	var got []pdu.PDU
	f.Feed(data, func(p pdu.PDU, err error) {
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		got = append(got, p)
	})
	if len(got) != 1 {
		t.Fatalf("got %d PDUs, want 1", len(got))
	}
	if len(f.buf) != 0 {
		t.Fatalf("%d bytes left in buffer", len(f.buf))
	}
}

// Resync leaves the buffer untouched, rather than dropping bytes, when no
// valid frame signature follows the garbage yet.
func TestFeedAwaitsMoreDataWhenNoSignatureFound(t *testing.T) {
	f := New(nil)
	f.Feed([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00, 0x00, 0x00}, func(pdu.PDU, error) {
		t.Fatal("unexpected delivery from pure garbage")
	})
	if len(f.buf) != 8 {
		t.Fatalf("expected all 8 garbage bytes retained, got %d", len(f.buf))
	}
}

func TestBuildPacketRoundTripsThroughFeed(t *testing.T) {
	req := &pdu.HeartbeatResponse{AdapterSerial: "WF1234G567", AdapterType: 1}
	packet, err := BuildPacket(req)
	if err != nil {
		t.Fatalf("BuildPacket: %v", err)
	}

	f := New(nil)
	var got []pdu.PDU
	f.Feed(packet, func(p pdu.PDU, err error) {
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		got = append(got, p)
	})
	if len(got) != 1 {
		t.Fatalf("got %d PDUs, want 1", len(got))
	}
}
