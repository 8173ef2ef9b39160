package client

import (
	"context"
	"time"
)

// sweepInterval is how often the sweeper scans the pending table for
// expired requests — frequent enough that a 1s request timeout is caught
// within a fraction of itself.
const sweepInterval = 200 * time.Millisecond

// sweepLoop periodically retries or finally expires outstanding requests.
// A request that still has tries remaining is re-enqueued onto the writer;
// one that doesn't is completed with ErrTimeout and dropped.
func (c *Coordinator) sweepLoop() {
	ctx := context.Background()
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			for _, p := range c.pending.sweepExpired() {
				c.logger.Debug(ctx, "Retrying request (tries remaining %d)", p.triesRemaining)
				c.pending.insert(p)
				select {
				case c.writeCh <- &writeJob{packet: p.request, pending: p, enqueued: time.Now(), ttl: c.writeTTL(p)}:
				case <-c.done:
					return
				}
			}
		}
	}
}

// writeTTL returns how long a queued write job may sit unsent before it's
// dropped as stale: a 10s base, padded by the current queue depth's worth
// of pacing delay.
func (c *Coordinator) writeTTL(p *pendingRequest) time.Duration {
	const baseTTL = 10 * time.Second
	depth := len(c.writeCh)
	return baseTTL + time.Duration(depth)*c.pacingMax
}
