package plant

import (
	"testing"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

func TestApplyReadRegistersCreatesUnknownAddress(t *testing.T) {
	p := New()
	addr := common.SlaveBatteryBase + 3

	if _, ok := p.Cache(addr); ok {
		t.Fatal("cache should not exist before first update")
	}

	if err := p.ApplyReadRegisters(addr, common.BankInput, 59, []uint16{77}); err != nil {
		t.Fatalf("ApplyReadRegisters: %v", err)
	}

	c, ok := p.Cache(addr)
	if !ok {
		t.Fatal("expected cache to be auto-created")
	}
	if v, ok := c.Get(common.BankInput, 59); !ok || v != 77 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestApplyReadRegistersRejectedUpdateLeavesCacheUntouched(t *testing.T) {
	p := New()
	if err := p.ApplyReadRegisters(common.SlaveInverter, common.BankHolding, 20, []uint16{1}); err != nil {
		t.Fatalf("seed update: %v", err)
	}

	// base register 9999 has no descriptor at all.
	if err := p.ApplyReadRegisters(common.SlaveInverter, common.BankHolding, 9999, []uint16{1}); err == nil {
		t.Fatal("expected rejection of an update touching an unknown register")
	}

	c, _ := p.Cache(common.SlaveInverter)
	if v, ok := c.Get(common.BankHolding, 20); !ok || v != 1 {
		t.Fatalf("unrelated prior state was disturbed: %v, %v", v, ok)
	}
}

func TestInverterProjectionFromReadHoldingResponse(t *testing.T) {
	p := New()
	values := make([]uint16, 60)
	values[0] = 0x2001                  // DEVICE_TYPE_CODE -> model nibble 2 = HYBRID
	values[3] = (2 << 8) | 1            // NUM_MPPT_AND_NUM_PHASES
	values[13] = 'S'<<8 | 'A'
	values[14] = '1'<<8 | '2'
	values[15] = '3'<<8 | '4'
	values[16] = 'G'<<8 | '5'
	values[17] = '6'<<8 | '7'

	if err := p.ApplyReadRegisters(common.SlaveInverter, common.BankHolding, 0, values); err != nil {
		t.Fatalf("ApplyReadRegisters: %v", err)
	}

	inv, err := p.Inverter()
	if err != nil {
		t.Fatalf("Inverter(): %v", err)
	}
	if inv.NumMPPT != 2 || inv.NumPhases != 1 {
		t.Fatalf("got NumMPPT=%d NumPhases=%d", inv.NumMPPT, inv.NumPhases)
	}
	if inv.SerialNumber != "SA1234G567" {
		t.Fatalf("got SerialNumber=%q", inv.SerialNumber)
	}
}

// TestInverterLivesAtSlaveAddress0x32 pins the inverter's address to the
// literal 0x32, independent of whatever common.SlaveInverter is defined
// as, so a future regression of that constant doesn't go unnoticed.
func TestInverterLivesAtSlaveAddress0x32(t *testing.T) {
	p := New()
	const slave0x32 = common.SlaveAddress(0x32)

	values := make([]uint16, 60)
	values[0] = 0x2001       // DEVICE_TYPE_CODE -> model nibble 2 = HYBRID
	values[3] = (2 << 8) | 1 // NUM_MPPT_AND_NUM_PHASES
	values[13] = 'S'<<8 | 'A'
	values[14] = '1'<<8 | '2'
	values[15] = '3'<<8 | '4'
	values[16] = 'G'<<8 | '5'
	values[17] = '6'<<8 | '7'

	if err := p.ApplyReadRegisters(slave0x32, common.BankHolding, 0, values); err != nil {
		t.Fatalf("ApplyReadRegisters: %v", err)
	}

	if _, ok := p.Cache(slave0x32); !ok {
		t.Fatal("expected plant to gain a cache at slave address 0x32")
	}

	inv, err := p.Inverter()
	if err != nil {
		t.Fatalf("Inverter(): %v", err)
	}
	if inv.SerialNumber != "SA1234G567" {
		t.Fatalf("got SerialNumber=%q", inv.SerialNumber)
	}
}
