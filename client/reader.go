package client

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// readLoop reads raw bytes from the socket and feeds them through the
// framer, dispatching each decoded PDU (or decode error) to handleDecoded. It
// polls a short read deadline so it notices c.done promptly, the same
// shape as the teacher transport's readLoop adapted to a stream framer
// instead of fixed-length MBAP reads.
func (c *Coordinator) readLoop() {
	ctx := context.Background()
	c.logger.Debug(ctx, "Starting read loop")

	defer func() {
		c.logger.Debug(ctx, "Exiting read loop")
		c.setDisconnected(fmt.Errorf("read loop exited"))
	}()

	const readTimeout = 100 * time.Millisecond
	buf := make([]byte, 4096)

	for {
		select {
		case <-c.done:
			return
		default:
		}

		if deadline, ok := c.conn.(interface{ SetReadDeadline(time.Time) error }); ok {
			deadline.SetReadDeadline(time.Now().Add(readTimeout))
		}

		n, err := c.conn.Read(buf)
		if n > 0 {
			if hex, ok := c.logger.(common.LoggerInterfaceHexdump); ok {
				hex.Hexdump(ctx, buf[:n])
			}
			c.framer.Feed(buf[:n], func(p pdu.PDU, perr error) {
				c.handleDecoded(p, perr)
			})
		}
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				select {
				case <-c.done:
					return
				default:
					continue
				}
			}
			if err == io.EOF {
				c.logger.Info(ctx, "Connection closed by peer")
			} else {
				c.logger.Error(ctx, "Error reading from socket: %v", err)
			}
			return
		}
	}
}
