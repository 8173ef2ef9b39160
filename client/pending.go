// Package client implements the asynchronous session coordinator: a
// single-connection full-duplex message loop that multiplexes concurrent
// request/response exchanges over one ordered TCP stream to a GivEnergy
// data adapter.
package client

import (
	"sync"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// pendingRequest is one outstanding request awaiting a matching response,
// keyed by shape hash rather than a transaction ID — the dialect has no
// transaction identifier of its own, only structural shape.
type pendingRequest struct {
	request        pdu.Request
	expected       pdu.PDU
	resultCh       chan pendingResult
	created        time.Time
	timeout        time.Duration
	triesRemaining int
}

type pendingResult struct {
	response pdu.Response
	err      error
}

func newPendingRequest(req pdu.Request, timeout time.Duration, retries int) *pendingRequest {
	return &pendingRequest{
		request:        req,
		expected:       req.ExpectedResponse(),
		resultCh:       make(chan pendingResult, 1),
		created:        time.Now(),
		timeout:        timeout,
		triesRemaining: retries,
	}
}

func (p *pendingRequest) age() time.Duration { return time.Since(p.created) }

func (p *pendingRequest) complete(resp pdu.Response, err error) {
	select {
	case p.resultCh <- pendingResult{response: resp, err: err}:
	default:
	}
}

// pendingTable is the coordinator's expected-responses table: mutated from
// the writer (insert), dispatcher (complete+remove) and sweeper
// (expire+remove). Unlike a transaction-ID pool, entries are keyed by
// pdu.ShapeHash rather than an allocated transaction ID — there is no free-
// ID pool because shapes aren't a scarce resource.
type pendingTable struct {
	mu      sync.Mutex
	entries map[pdu.ShapeHash]*pendingRequest
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[pdu.ShapeHash]*pendingRequest)}
}

// insert registers p under its expected response's shape hash. If a
// request of the same shape is already outstanding, it is cancelled and
// replaced: a stale poll is never more useful than the next one.
func (t *pendingTable) insert(p *pendingRequest) {
	hash := p.expected.ShapeHash()
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.entries[hash]; ok {
		old.complete(nil, common.ErrCancelled)
	}
	t.entries[hash] = p
}

// completeByShape finds the pending request matching resp's shape hash,
// completes it, and removes it from the table. Reports whether a match was
// found.
func (t *pendingTable) completeByShape(resp pdu.Response) bool {
	hash := resp.ShapeHash()
	t.mu.Lock()
	p, ok := t.entries[hash]
	if ok {
		delete(t.entries, hash)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	p.complete(resp, nil)
	return true
}

// sweepExpired scans for entries whose age exceeds their timeout. Each is
// either re-enqueued (returned in the slice, with triesRemaining
// decremented) or finally expired (completed with ErrTimeout and removed).
func (t *pendingTable) sweepExpired() (retry []*pendingRequest) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for hash, p := range t.entries {
		if p.age() < p.timeout {
			continue
		}
		if p.triesRemaining > 0 {
			p.triesRemaining--
			p.created = time.Now()
			delete(t.entries, hash)
			retry = append(retry, p)
			continue
		}
		delete(t.entries, hash)
		p.complete(nil, common.ErrTimeout)
	}
	return retry
}

// cancelAll completes every outstanding entry with err and empties the
// table — used on disconnect, matching the coordinator's "client
// restarting" failure semantics.
func (t *pendingTable) cancelAll(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for hash, p := range t.entries {
		p.complete(nil, err)
		delete(t.entries, hash)
	}
}

// len reports the number of outstanding entries, for tests asserting the
// table is empty after a batch completes.
func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
