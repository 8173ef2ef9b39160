package client

import (
	"context"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// handleDecoded is the single entry point the reader calls for every frame
// the framer produces, successful or not. It auto-replies to heartbeats,
// completes matching pending requests, and folds transparent responses
// into the plant's register caches.
func (c *Coordinator) handleDecoded(p pdu.PDU, err error) {
	ctx := context.Background()

	if err != nil {
		c.logger.Warn(ctx, "Discarding unparseable frame: %v", err)
		return
	}

	switch v := p.(type) {
	case *pdu.HeartbeatRequest:
		c.logger.Debug(ctx, "Heartbeat from adapter %s, replying", v.AdapterSerial)
		c.enqueueFireAndForget(v.ExpectedResponse())
		return
	case *pdu.HeartbeatResponse:
		// Only ever seen if something else on the wire is itself polling
		// the adapter; nothing of ours is outstanding for it.
		return
	}

	resp, ok := p.(pdu.Response)
	if !ok {
		c.logger.Warn(ctx, "Decoded PDU %T is neither request nor response", p)
		return
	}

	matched := c.pending.completeByShape(resp)
	if !matched {
		c.logger.Debug(ctx, "No pending request for response shape %v", resp.ShapeHash())
	}

	c.applyToPlant(resp)
}

// applyToPlant folds a successfully decoded response's values into the
// plant's register caches. Error responses are logged and skipped rather
// than merged; an update the plant rejects is logged and leaves its cache
// unchanged.
func (c *Coordinator) applyToPlant(resp pdu.Response) {
	ctx := context.Background()
	if resp.IsError() {
		c.logger.Warn(ctx, "Received error response: %+v", resp)
		return
	}

	switch v := resp.(type) {
	case *pdu.ReadRegistersResponse:
		bank := common.BankInput
		if v.Inner == common.InnerFunctionReadHolding {
			bank = common.BankHolding
		}
		if err := c.plant.ApplyReadRegisters(v.SlaveAddress, bank, v.BaseRegister, v.Values); err != nil {
			c.logger.Warn(ctx, "Rejected read-registers response for slave 0x%02x base %d: %v",
				v.SlaveAddress, v.BaseRegister, err)
		}
	case *pdu.WriteHoldingRegisterResponse:
		if err := c.plant.ApplyWriteHolding(v.SlaveAddress, v.Register, v.Value); err != nil {
			c.logger.Warn(ctx, "Rejected write-holding readback for slave 0x%02x register %d: %v",
				v.SlaveAddress, v.Register, err)
		}
	case *pdu.NullResponse:
		// Nothing to merge; a Null response carries no register content.
	}
}

// enqueueFireAndForget queues a packet with no outstanding pending entry —
// used for the heartbeat auto-reply, which expects no response of its own.
func (c *Coordinator) enqueueFireAndForget(p pdu.PDU) {
	select {
	case c.writeCh <- &writeJob{packet: p, enqueued: time.Now(), ttl: c.heartbeatDeadline}:
	case <-c.done:
	}
}
