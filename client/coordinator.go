package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/framer"
	"github.com/Moonlight-Companies/givenergy-modbus/logging"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
	"github.com/Moonlight-Companies/givenergy-modbus/plant"
)

// Coordinator owns a single TCP connection to a GivEnergy data adapter: it
// multiplexes concurrent request/response exchanges over that one ordered
// stream, auto-replies to the adapter's heartbeat, and keeps a Plant's
// register caches current from whatever responses and refresh polling
// bring in.
type Coordinator struct {
	host string
	port int

	logger common.LoggerInterface

	connectTimeout    time.Duration
	requestTimeout    time.Duration
	readRetries       int
	writeRetries      int
	pacingMin         time.Duration
	pacingMax         time.Duration
	refreshPeriod     time.Duration
	fullRefreshTick   int
	heartbeatDeadline time.Duration
	numBatteries      int

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	done      chan struct{}
	closeOnce sync.Once

	framer  *framer.Framer
	pending *pendingTable
	plant   *plant.Plant
	writeCh chan *writeJob
}

// Option configures a Coordinator at construction time, mirroring the
// teacher transport's functional-option idiom.
type Option func(*Coordinator)

func WithPort(port int) Option                       { return func(c *Coordinator) { c.port = port } }
func WithConnectTimeout(d time.Duration) Option      { return func(c *Coordinator) { c.connectTimeout = d } }
func WithRequestTimeout(d time.Duration) Option      { return func(c *Coordinator) { c.requestTimeout = d } }
func WithReadRetries(n int) Option                   { return func(c *Coordinator) { c.readRetries = n } }
func WithWriteRetries(n int) Option                  { return func(c *Coordinator) { c.writeRetries = n } }
func WithPacing(min, max time.Duration) Option       { return func(c *Coordinator) { c.pacingMin, c.pacingMax = min, max } }
func WithRefreshPeriod(d time.Duration) Option       { return func(c *Coordinator) { c.refreshPeriod = d } }
func WithFullRefreshTick(n int) Option               { return func(c *Coordinator) { c.fullRefreshTick = n } }
func WithHeartbeatDeadline(d time.Duration) Option   { return func(c *Coordinator) { c.heartbeatDeadline = d } }
func WithNumBatteries(n int) Option                  { return func(c *Coordinator) { c.numBatteries = n } }
func WithLogger(l common.LoggerInterface) Option     { return func(c *Coordinator) { c.logger = l } }
func WithPlant(p *plant.Plant) Option                { return func(c *Coordinator) { c.plant = p } }

// New returns a Coordinator for host, configured with spec-documented
// defaults and overridden by opts.
func New(host string, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:              host,
		port:              common.DefaultPort,
		logger:            logging.NewLogger(),
		connectTimeout:    common.DefaultConnectTimeoutMillis * time.Millisecond,
		requestTimeout:    common.DefaultRequestTimeoutMillis * time.Millisecond,
		readRetries:       common.DefaultReadRetries,
		writeRetries:      common.DefaultWriteRetries,
		pacingMin:         common.DefaultPacingMinMillis * time.Millisecond,
		pacingMax:         common.DefaultPacingMaxMillis * time.Millisecond,
		refreshPeriod:     common.DefaultRefreshPeriod * time.Millisecond,
		fullRefreshTick:   common.DefaultFullRefreshTick,
		heartbeatDeadline: common.DefaultHeartbeatDeadlineSeconds * time.Second,
		numBatteries:      1,
		done:              make(chan struct{}),
		pending:           newPendingTable(),
		writeCh:           make(chan *writeJob, 64),
	}
	for _, o := range opts {
		o(c)
	}
	if c.plant == nil {
		c.plant = plant.New(plant.WithLogger(c.logger), plant.WithNumBatteries(c.numBatteries))
	}
	c.framer = framer.New(pdu.Warner(func(format string, args ...interface{}) {
		c.logger.Warn(context.Background(), format, args...)
	}))
	return c
}

// Plant returns the coordinator's live register-cache collection.
func (c *Coordinator) Plant() *plant.Plant { return c.plant }

// Connect dials the adapter once. Use Run for a supervised connection that
// reconnects with backoff; Connect is exposed directly for tests and for
// callers that want to manage retries themselves.
func (c *Coordinator) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return common.ErrAlreadyConnected
	}

	select {
	case <-c.done:
		c.done = make(chan struct{})
	default:
	}

	c.logger.Info(ctx, "Connecting to %s:%d", c.host, c.port)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.connectTimeout)
	}
	dialer := net.Dialer{Timeout: time.Until(deadline)}
	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.logger.Error(ctx, "Failed to connect to %s: %v", addr, err)
		return err
	}

	c.conn = conn
	c.connected = true
	c.closeOnce = sync.Once{}

	c.logger.Info(ctx, "Connected to %s:%d", c.host, c.port)

	go c.readLoop()
	go c.writeLoop()
	go c.sweepLoop()
	go c.refreshLoop()

	return nil
}

// Run connects and reconnects forever with exponential backoff (per the
// dialect's documented 1s/1.2x/60s ceiling), until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = common.DefaultBackoffInitialMillis * time.Millisecond
	b.Multiplier = common.DefaultBackoffMultiplier
	b.MaxInterval = common.DefaultBackoffMaxMillis * time.Millisecond
	b.MaxElapsedTime = 0 // retry indefinitely

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := c.Connect(ctx); err != nil {
			wait := b.NextBackOff()
			if wait == backoff.Stop {
				return err
			}
			c.logger.Warn(ctx, "Connect failed, retrying in %s: %v", wait, err)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		b.Reset()

		select {
		case <-c.done:
			// Dropped; loop back around to reconnect.
		case <-ctx.Done():
			c.Disconnect(context.Background())
			return ctx.Err()
		}
	}
}

// Disconnect closes the connection and cancels every outstanding request.
func (c *Coordinator) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	c.connected = false
	c.mu.Unlock()

	c.logger.Info(ctx, "Disconnecting")
	close(c.done)
	time.Sleep(10 * time.Millisecond)

	var err error
	c.closeOnce.Do(func() {
		c.pending.cancelAll(common.ErrClosing)
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}

// IsConnected reports whether the coordinator currently holds an open
// connection.
func (c *Coordinator) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Coordinator) setDisconnected(err error) {
	ctx := context.Background()
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		c.logger.Error(ctx, "Connection lost: %v", err)
		c.pending.cancelAll(common.ErrNotConnected)
		select {
		case <-c.done:
		default:
			close(c.done)
		}
	}
}

// enqueueRequest registers req against its expected response's shape hash
// and queues it for writing, returning the pendingRequest a caller or the
// sweeper can wait on or retry.
func (c *Coordinator) enqueueRequest(req pdu.Request, timeout time.Duration, retries int) *pendingRequest {
	p := newPendingRequest(req, timeout, retries)
	c.pending.insert(p)
	select {
	case c.writeCh <- &writeJob{packet: req, pending: p, enqueued: time.Now(), ttl: c.writeTTL(p)}:
	case <-c.done:
		p.complete(nil, common.ErrClosing)
	}
	return p
}

// Execute sends req and blocks until a matching response arrives, the
// request's retries are exhausted, ctx is cancelled, or the coordinator
// disconnects.
func (c *Coordinator) Execute(ctx context.Context, req pdu.Request) (pdu.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !c.IsConnected() {
		return nil, common.ErrNotConnected
	}

	retries := c.readRetries
	if _, isWrite := req.(*pdu.WriteHoldingRegisterRequest); isWrite {
		retries = c.writeRetries
	}
	p := c.enqueueRequest(req, c.requestTimeout, retries)

	select {
	case r := <-p.resultCh:
		return r.response, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
