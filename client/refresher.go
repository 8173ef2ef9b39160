package client

import (
	"context"
	"time"
)

// refreshLoop issues the standard poll sequence every refreshPeriod,
// escalating to a full refresh (holding registers plus the inverter's
// third input bank) every fullRefreshTick-th tick. Individual requests are
// fire-and-forget from the loop's perspective — their responses land in
// the plant via the dispatcher as they arrive.
func (c *Coordinator) refreshLoop() {
	ctx := context.Background()
	ticker := time.NewTicker(c.refreshPeriod)
	defer ticker.Stop()

	var tick int
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			tick++
			full := tick%c.fullRefreshTick == 0
			c.logger.Debug(ctx, "Refresh tick %d (full=%v)", tick, full)
			for _, req := range refreshRequests(c.numBatteries, full) {
				c.enqueueRequest(req, c.requestTimeout, c.readRetries)
			}
		}
	}
}
