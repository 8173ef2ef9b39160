package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/framer"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// newTestCoordinator builds a Coordinator wired to one end of an in-memory
// pipe, with its loops started directly (bypassing Connect's dialer) so
// tests can drive the wire from the other end.
func newTestCoordinator(t *testing.T, opts ...Option) (*Coordinator, net.Conn) {
	t.Helper()
	serverConn, clientConn := net.Pipe()

	base := []Option{
		WithRequestTimeout(120 * time.Millisecond),
		WithPacing(5*time.Millisecond, 10*time.Millisecond),
		WithHeartbeatDeadline(time.Second),
	}
	c := New("test", append(base, opts...)...)
	c.conn = clientConn
	c.connected = true

	go c.readLoop()
	go c.writeLoop()
	go c.sweepLoop()

	t.Cleanup(func() {
		c.Disconnect(context.Background())
		serverConn.Close()
	})

	return c, serverConn
}

// TestHeartbeatAutoReply covers S1: an unsolicited HeartbeatRequest from
// the adapter must be mirrored back as a HeartbeatResponse without any
// caller having issued a request of its own.
func TestHeartbeatAutoReply(t *testing.T) {
	_, server := newTestCoordinator(t)

	// framer.Feed always decodes a Heartbeat frame as DirectionRequest (the
	// direction only matters on the live wire, where the adapter is the
	// only heartbeat-request sender); the coordinator's mirrored reply
	// therefore decodes back into a *pdu.HeartbeatRequest with this same
	// framer, sharing the wire-identical request/response layout.
	replies := make(chan *pdu.HeartbeatRequest, 1)
	f := framer.New(nil)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := server.Read(buf)
			if n > 0 {
				f.Feed(buf[:n], func(p pdu.PDU, err error) {
					if err != nil {
						return
					}
					if resp, ok := p.(*pdu.HeartbeatRequest); ok {
						select {
						case replies <- resp:
						default:
						}
					}
				})
			}
			if err != nil {
				return
			}
		}
	}()

	req := &pdu.HeartbeatRequest{AdapterSerial: "AB1234C567", AdapterType: 9}
	packet, err := framer.BuildPacket(req)
	if err != nil {
		t.Fatalf("BuildPacket: %v", err)
	}
	if _, err := server.Write(packet); err != nil {
		t.Fatalf("write heartbeat: %v", err)
	}

	select {
	case resp := <-replies:
		if resp.AdapterSerial != "AB1234C567" || resp.AdapterType != 9 {
			t.Fatalf("got mirrored heartbeat %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for heartbeat auto-reply")
	}
}

// TestExecuteRetriesThenTimesOut covers S5: a request that never receives
// a matching response is retransmitted exactly (1 + readRetries) times
// before Execute resolves with ErrTimeout — and, critically, a mid-series
// retry must not resolve the call early (the bug where sweepExpired's
// retry re-insert collided with itself and surfaced ErrCancelled after
// the very first timeout).
func TestExecuteRetriesThenTimesOut(t *testing.T) {
	c, server := newTestCoordinator(t, WithReadRetries(2))

	type frame struct{}
	received := make(chan frame, 16)
	go func() {
		buf := make([]byte, 256)
		f := framer.New(nil)
		for {
			n, err := server.Read(buf)
			if n > 0 {
				f.Feed(buf[:n], func(p pdu.PDU, err error) {
					if err == nil {
						received <- frame{}
					}
				})
			}
			if err != nil {
				return
			}
		}
	}()

	req := pdu.NewReadHoldingRegistersRequest(common.SlaveInverter, 0, 60)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	_, err := c.Execute(ctx, req)
	elapsed := time.Since(start)

	if err != common.ErrTimeout {
		t.Fatalf("expected ErrTimeout, got %v (after %s)", err, elapsed)
	}

	count := 0
drain:
	for {
		select {
		case <-received:
			count++
		case <-time.After(50 * time.Millisecond):
			break drain
		}
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 transmissions (1 initial + 2 retries), got %d", count)
	}

	if c.pending.len() != 0 {
		t.Fatalf("expected pending table to be empty after final timeout, got %d entries", c.pending.len())
	}
}
