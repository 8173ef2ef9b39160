package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/framer"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// writeJob is one queued outbound packet, enforced to arrive no closer
// together than the pacing interval since the GivEnergy data adapter loses
// heartbeat frames under back-to-back writes. pending is nil for
// fire-and-forget packets (the heartbeat auto-reply) that nothing is
// waiting on.
type writeJob struct {
	packet   pdu.PDU
	pending  *pendingRequest
	enqueued time.Time
	ttl      time.Duration
}

func (j *writeJob) fail(err error) {
	if j.pending != nil {
		j.pending.complete(nil, err)
	}
}

// writeLoop drains c.writeCh one job at a time, sleeping out the pacing
// interval between writes and dropping anything that has sat in the queue
// past its TTL rather than send a request nobody is still waiting for.
func (c *Coordinator) writeLoop() {
	ctx := context.Background()
	c.logger.Debug(ctx, "Starting write loop")

	defer func() {
		c.logger.Debug(ctx, "Exiting write loop")
		c.setDisconnected(fmt.Errorf("write loop exited"))
	}()

	var lastWrite time.Time

	for {
		select {
		case <-c.done:
			return
		case job, ok := <-c.writeCh:
			if !ok {
				return
			}

			if job.ttl > 0 {
				if age := time.Since(job.enqueued); age > job.ttl {
					c.logger.Warn(ctx, "Dropping stale queued write after %s (ttl %s)", age, job.ttl)
					job.fail(common.ErrTimeout)
					continue
				}
			}

			if wait := c.pacingInterval() - time.Since(lastWrite); wait > 0 {
				select {
				case <-time.After(wait):
				case <-c.done:
					job.fail(common.ErrClosing)
					return
				}
			}

			packet, err := framer.BuildPacket(job.packet)
			if err != nil {
				c.logger.Error(ctx, "Error encoding request: %v", err)
				job.fail(err)
				continue
			}

			if hex, ok := c.logger.(common.LoggerInterfaceHexdump); ok {
				hex.Hexdump(ctx, packet)
			}

			if _, err := c.conn.Write(packet); err != nil {
				c.logger.Error(ctx, "Error writing to socket: %v", err)
				job.fail(err)
				c.setDisconnected(fmt.Errorf("write error: %w", err))
				return
			}
			lastWrite = time.Now()
		}
	}
}

// pacingInterval returns a jittered delay within [pacingMin, pacingMax),
// matching the dialect's documented 0.25-0.35s pacing window rather than a
// single fixed figure.
func (c *Coordinator) pacingInterval() time.Duration {
	span := c.pacingMax - c.pacingMin
	if span <= 0 {
		return c.pacingMin
	}
	return c.pacingMin + time.Duration(rand.Int63n(int64(span)))
}
