package jsonfile

import (
	"testing"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/plant"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := plant.New(plant.WithNumBatteries(1))
	if err := p.ApplyReadRegisters(common.SlaveInverter, common.BankHolding, 0, []uint16{1, 2, 3}); err != nil {
		t.Fatalf("ApplyReadRegisters: %v", err)
	}

	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c, ok, err := s.Load(common.SlaveInverter)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected a persisted snapshot")
	}
	if v, ok := c.Get(common.BankHolding, 1); !ok || v != 2 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, ok, err := s.Load(common.SlaveBatteryBase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("expected no snapshot for an address never saved")
	}
}
