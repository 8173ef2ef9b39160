// Package plant models a complete GivEnergy installation: the inverter and
// its attached battery packs, backed by one register cache per slave
// address (the inverter shares address 0x32 with the first battery pack).
package plant

import (
	"context"
	"sync"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/device"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
)

// Plant is a slave-address-keyed collection of register caches. It is safe
// for concurrent use; the coordinator's dispatcher goroutine applies
// updates while a caller may concurrently read a structured view.
type Plant struct {
	mu       sync.RWMutex
	caches   map[common.SlaveAddress]*register.Cache
	log      common.LoggerInterface
	numBatteries int
}

// Option configures a Plant at construction time.
type Option func(*Plant)

// WithLogger attaches a logger used to warn about unexpected slave
// addresses. Defaults to a no-op.
func WithLogger(log common.LoggerInterface) Option {
	return func(p *Plant) { p.log = log }
}

// WithNumBatteries preallocates caches for the inverter and for
// numBatteries battery packs at 0x32..0x32+numBatteries-1.
func WithNumBatteries(n int) Option {
	return func(p *Plant) { p.numBatteries = n }
}

// New returns a Plant with a cache for the inverter already present.
func New(opts ...Option) *Plant {
	p := &Plant{caches: make(map[common.SlaveAddress]*register.Cache)}
	for _, o := range opts {
		o(p)
	}
	if p.log == nil {
		p.log = noopLogger{}
	}
	// The inverter and the first battery pack (index 0) share the cache at
	// SlaveInverter/SlaveBatteryBase; only batteries 1..numBatteries-1 get
	// a cache of their own.
	p.caches[common.SlaveInverter] = register.NewCache()
	for i := 1; i < p.numBatteries; i++ {
		addr := common.SlaveBatteryBase + common.SlaveAddress(i)
		p.caches[addr] = register.NewCache()
	}
	return p
}

// cacheFor returns the cache for addr, creating (and warning about) one if
// this is the first update ever seen from that address.
func (p *Plant) cacheFor(addr common.SlaveAddress) *register.Cache {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.caches[addr]
	if !ok {
		p.log.Warn(context.Background(), "plant: unexpected slave address 0x%02x, creating cache", addr)
		c = register.NewCache()
		p.caches[addr] = c
	}
	return c
}

// Cache returns the existing cache for addr, if any, without creating one.
func (p *Plant) Cache(addr common.SlaveAddress) (*register.Cache, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.caches[addr]
	return c, ok
}

// ApplyReadRegisters merges a read-registers response's decoded values into
// the cache for addr, creating the cache if addr hasn't been seen before.
// The merge is atomic: an invalid value rejects the whole response, and the
// existing cache is left untouched.
func (p *Plant) ApplyReadRegisters(addr common.SlaveAddress, bank common.Bank, base uint16, values []uint16) error {
	return p.cacheFor(addr).BulkUpdate(bank, base, values)
}

// ApplyWriteHolding applies a write-holding response's readback value.
func (p *Plant) ApplyWriteHolding(addr common.SlaveAddress, index uint16, value uint16) error {
	return p.cacheFor(addr).Set(common.BankHolding, index, value)
}

// Inverter projects the inverter's cache (slave 0x32, shared with battery
// pack 0) into a structured view.
func (p *Plant) Inverter() (*device.Inverter, error) {
	c, ok := p.Cache(common.SlaveInverter)
	if !ok {
		return device.FromCache(register.NewCache())
	}
	return device.FromCache(c)
}

// Batteries projects the caches at 0x32..0x32+numBatteries-1 into
// structured views, in address order, keeping only packs that have
// reported a valid serial number (Battery.IsValid).
func (p *Plant) Batteries() []*device.Battery {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []*device.Battery
	for i := 0; i < p.numBatteries && i < common.MaxBatteries; i++ {
		addr := common.SlaveBatteryBase + common.SlaveAddress(i)
		c, ok := p.caches[addr]
		if !ok {
			continue
		}
		if b := device.BatteryFromCache(addr, c); b.IsValid() {
			out = append(out, b)
		}
	}
	return out
}

// Addresses returns every slave address with a cache in this plant, for
// callers (such as a snapshot store) that need to enumerate them without
// knowing the battery count up front.
func (p *Plant) Addresses() []common.SlaveAddress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]common.SlaveAddress, 0, len(p.caches))
	for addr := range p.caches {
		out = append(out, addr)
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Trace(context.Context, string, ...any) {}
func (noopLogger) Debug(context.Context, string, ...any) {}
func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Warn(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}
func (noopLogger) WithFields(map[string]interface{}) common.LoggerInterface {
	return noopLogger{}
}
func (noopLogger) GetLevel() common.LogLevel { return common.LevelNone }
func (noopLogger) SetLevel(common.LogLevel)  {}
