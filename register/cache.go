package register

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// key uniquely identifies a raw value slot inside a cache.
type key struct {
	bank  common.Bank
	index uint16
}

// Cache holds raw register values for a single device (inverter or
// battery), keyed by bank-tagged index. Every stored value has already
// passed its descriptor's conversion and sanity check; a bulk update that
// fails validation for any entry leaves the cache completely untouched.
type Cache struct {
	mu     sync.RWMutex
	values map[key]uint16
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[key]uint16)}
}

// Get returns the raw value stored for (bank, index).
func (c *Cache) Get(bank common.Bank, index uint16) (uint16, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key{bank, index}]
	return v, ok
}

// Converted returns the decoded, sanity-checked value for (bank, index).
func (c *Cache) Converted(bank common.Bank, index uint16) (any, error) {
	raw, ok := c.Get(bank, index)
	if !ok {
		return nil, fmt.Errorf("%w: %s:%d", common.ErrUnknownRegister, bank, index)
	}
	dd, ok := Lookup(bank, index)
	if !ok {
		return nil, fmt.Errorf("%w: %s:%d", common.ErrUnknownRegister, bank, index)
	}
	return dd.Convert(bank, raw)
}

// BulkUpdate validates every (index, value) pair in values against its
// register descriptor before applying any of them. An index absent from the
// register map, or a value that fails type conversion or its sanity check,
// aborts the whole batch: the cache is left exactly as it was.
func (c *Cache) BulkUpdate(bank common.Bank, base uint16, values []uint16) error {
	var errs []error
	for i, raw := range values {
		index := base + uint16(i)
		dd, ok := Lookup(bank, index)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s:%d", common.ErrUnknownRegister, bank, index))
			continue
		}
		if _, err := dd.Convert(bank, raw); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("register cache rejected %d of %d values: %w", len(errs), len(values), joinErrors(errs))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, raw := range values {
		c.values[key{bank, base + uint16(i)}] = raw
	}
	return nil
}

// Set validates and applies a single raw value, e.g. the readback from a
// write-holding response.
func (c *Cache) Set(bank common.Bank, index uint16, raw uint16) error {
	return c.BulkUpdate(bank, index, []uint16{raw})
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// jsonKey renders a cache key in the canonical "HR:<n>" / "IR:<n>" form.
func (k key) jsonKey() string {
	return fmt.Sprintf("%s:%d", k.bank, k.index)
}

// ToJSON serializes the cache as a flat object of "HR:<n>"/"IR:<n>" to raw
// integer value, matching the persisted-state format.
func (c *Cache) ToJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]uint16, len(c.values))
	for k, v := range c.values {
		out[k.jsonKey()] = v
	}
	return json.Marshal(out)
}

// FromJSON replaces the cache's contents with the decoded object. Keys may
// use either the canonical "HR:<n>" form or the legacy "HoldingRegister(<n>)"
// / "HR(<n>)" form. Every value is checked against its register descriptor;
// an unknown index or a value that fails conversion or its sanity check
// rejects the whole object and leaves the cache unchanged.
func (c *Cache) FromJSON(data []byte) error {
	var raw map[string]uint16
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	values := make(map[key]uint16, len(raw))
	for k, v := range raw {
		bank, index, err := parseJSONKey(k)
		if err != nil {
			return err
		}
		dd, ok := Lookup(bank, index)
		if !ok {
			return fmt.Errorf("%w: %s:%d", common.ErrUnknownRegister, bank, index)
		}
		if _, err := dd.Convert(bank, v); err != nil {
			return err
		}
		values[key{bank, index}] = v
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values
	return nil
}

func parseJSONKey(k string) (common.Bank, uint16, error) {
	var bankName, idxPart string
	if i := strings.IndexByte(k, ':'); i > 0 {
		bankName, idxPart = k[:i], k[i+1:]
	} else if i := strings.IndexByte(k, '('); i > 0 && strings.HasSuffix(k, ")") {
		bankName, idxPart = k[:i], k[i+1:len(k)-1]
	} else {
		return 0, 0, fmt.Errorf("%q is not a valid register cache key", k)
	}

	var bank common.Bank
	switch bankName {
	case "HR", "HoldingRegister":
		bank = common.BankHolding
	case "IR", "InputRegister":
		bank = common.BankInput
	default:
		return 0, 0, fmt.Errorf("%q is not a known register bank", bankName)
	}

	index, err := strconv.ParseUint(idxPart, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%q has an invalid register index: %w", k, err)
	}
	return bank, uint16(index), nil
}

// ToUint32 composes a big-endian 32-bit value from a UINT32_HIGH/UINT32_LOW
// register pair.
func (c *Cache) ToUint32(bank common.Bank, highIndex, lowIndex uint16) (uint32, bool) {
	high, ok1 := c.Get(bank, highIndex)
	low, ok2 := c.Get(bank, lowIndex)
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint32(high)<<16 | uint32(low), true
}

// ToString concatenates the ASCII pairs stored at indexes into a string,
// used to assemble multi-register serial numbers.
func (c *Cache) ToString(bank common.Bank, indexes ...uint16) (string, bool) {
	runes := make([]rune, 0, len(indexes)*2)
	for _, idx := range indexes {
		raw, ok := c.Get(bank, idx)
		if !ok {
			return "", false
		}
		runes = append(runes, rune(raw>>8), rune(raw&0xFF))
	}
	return string(runes), true
}
