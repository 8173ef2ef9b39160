// Package device projects a register cache into the structured,
// human-meaningful views callers actually want: an Inverter and, per
// attached pack, a Battery.
package device

import (
	"fmt"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
)

// Model enumerates the inverter hardware families identifiable from the
// top nibble of DEVICE_TYPE_CODE.
type Model int

const (
	ModelUnknown  Model = -1
	ModelHybrid   Model = 2
	ModelAC       Model = 3
	ModelHybrid3P Model = 4
	ModelEMS      Model = 5
	ModelAC3P     Model = 6
	ModelGateway  Model = 7
	ModelAllInOne Model = 8
)

func modelFromNibble(n int) Model {
	switch Model(n) {
	case ModelHybrid, ModelAC, ModelHybrid3P, ModelEMS, ModelAC3P, ModelGateway, ModelAllInOne:
		return Model(n)
	default:
		return ModelUnknown
	}
}

// BatteryPowerMode is the inverter's discharge strategy (HR:27).
type BatteryPowerMode int

const (
	BatteryPowerModeUnknown          BatteryPowerMode = -1
	BatteryPowerModeExport           BatteryPowerMode = 0
	BatteryPowerModeSelfConsumption  BatteryPowerMode = 1
)

// TimeSlot is a pair of BCD times bounding a charge or discharge window.
type TimeSlot struct {
	Start register.TimeOfDay
	End   register.TimeOfDay
}

// Inverter is the structured, read-only view over an inverter's register
// cache (slave 0x32): mostly Holding registers, plus the Input registers
// behind PPv and EPvDay.
type Inverter struct {
	DeviceTypeCode   string
	Model            Model
	ModuleID         string
	SerialNumber     string
	FirstBatterySerialNumber string
	DSPFirmwareVersion int
	ARMFirmwareVersion int
	FirmwareVersion  string
	ModbusAddress    int

	NumMPPT   int
	NumPhases int

	EnableAmmeter     bool
	SelectARMChip     bool
	EnableChargeTarget bool

	GridPortMaxPowerOutput int
	Enable60HzFreqMode     bool
	BatteryPowerMode       BatteryPowerMode

	SystemTime *time.Time
	ChargeSlot1 *TimeSlot
	ChargeSlot2 *TimeSlot
	DischargeSlot1 *TimeSlot
	DischargeSlot2 *TimeSlot

	PPv       *int
	EPvDay    *float64
}

// FromCache builds an Inverter view from the Holding-bank contents (plus
// the Input registers behind PPv and EPvDay) of a
// register cache, grounded on the source's Inverter.from_registers
// constructor. A field with any of its source registers absent from the
// cache is left at its zero value rather than returned as an error — the
// cache may simply not have been refreshed yet.
func FromCache(c *register.Cache) (*Inverter, error) {
	inv := &Inverter{}

	dtc, ok := c.Get(common.BankHolding, register.HRDeviceTypeCode)
	if ok {
		inv.DeviceTypeCode = fmt.Sprintf("%04x", dtc)
		inv.Model = modelFromNibble(int(dtc >> 12))
	}

	if moduleID, ok := c.ToUint32(common.BankHolding, register.HRInverterModuleH, register.HRInverterModuleL); ok {
		inv.ModuleID = fmt.Sprintf("%08x", moduleID)
	}

	if numMpptPhases, ok := c.Get(common.BankHolding, register.HRNumMpptAndPhases); ok {
		inv.NumMPPT = int(numMpptPhases >> 8)
		inv.NumPhases = int(numMpptPhases & 0xFF)
	}

	if v, ok := c.Get(common.BankHolding, 7); ok {
		inv.EnableAmmeter = v != 0
	}

	if s, ok := c.ToString(common.BankHolding,
		register.HRBatterySerial1_2, register.HRBatterySerial3_4, register.HRBatterySerial5_6,
		register.HRBatterySerial7_8, register.HRBatterySerial9_10); ok {
		inv.FirstBatterySerialNumber = s
	}

	if s, ok := c.ToString(common.BankHolding,
		register.HRInverterSerial1_2, register.HRInverterSerial3_4, register.HRInverterSerial5_6,
		register.HRInverterSerial7_8, register.HRInverterSerial9_10); ok {
		inv.SerialNumber = s
	}

	dsp, dspOK := c.Get(common.BankHolding, register.HRDSPFirmwareVersion)
	arm, armOK := c.Get(common.BankHolding, register.HRARMFirmwareVersion)
	if dspOK && armOK {
		inv.DSPFirmwareVersion = int(dsp)
		inv.ARMFirmwareVersion = int(arm)
		inv.FirmwareVersion = fmt.Sprintf("D0.%d-A0.%d", dsp, arm)
	}

	if v, ok := c.Get(common.BankHolding, register.HREnableChargeTarget); ok {
		inv.EnableChargeTarget = v != 0
	}
	if v, ok := c.Get(common.BankHolding, 23); ok {
		inv.SelectARMChip = v != 0
	}
	if v, ok := c.Get(common.BankHolding, 26); ok {
		inv.GridPortMaxPowerOutput = int(v)
	}
	if v, ok := c.Get(common.BankHolding, register.HRBatteryPowerMode); ok {
		inv.BatteryPowerMode = BatteryPowerMode(v)
	}
	if v, ok := c.Get(common.BankHolding, 28); ok {
		inv.Enable60HzFreqMode = v != 0
	}
	if v, ok := c.Get(common.BankHolding, 30); ok {
		inv.ModbusAddress = int(v)
	}

	inv.ChargeSlot1 = timeSlot(c, register.HRChargeSlot1Start, register.HRChargeSlot1End)
	inv.ChargeSlot2 = timeSlot(c, register.HRChargeSlot2Start, register.HRChargeSlot2End)
	inv.DischargeSlot1 = timeSlot(c, register.HRDischargeSlot1Start, register.HRDischargeSlot1End)
	inv.DischargeSlot2 = timeSlot(c, register.HRDischargeSlot2Start, register.HRDischargeSlot2End)

	inv.SystemTime = systemTime(c)

	inv.PPv = sumInt(c, register.IRPPv1, register.IRPPv2)
	inv.EPvDay = sumScaled(c, register.IREPv1Day, register.IREPv2Day)

	return inv, nil
}

func timeSlot(c *register.Cache, startIdx, endIdx uint16) *TimeSlot {
	startRaw, err1 := c.Converted(common.BankHolding, startIdx)
	endRaw, err2 := c.Converted(common.BankHolding, endIdx)
	if err1 != nil || err2 != nil {
		return nil
	}
	start, ok := startRaw.(register.TimeOfDay)
	if !ok {
		return nil
	}
	end, ok := endRaw.(register.TimeOfDay)
	if !ok {
		return nil
	}
	return &TimeSlot{Start: start, End: end}
}

func systemTime(c *register.Cache) *time.Time {
	year, ok1 := c.Get(common.BankHolding, register.HRSystemTimeYear)
	month, ok2 := c.Get(common.BankHolding, register.HRSystemTimeMonth)
	day, ok3 := c.Get(common.BankHolding, register.HRSystemTimeDay)
	hour, ok4 := c.Get(common.BankHolding, register.HRSystemTimeHour)
	minute, ok5 := c.Get(common.BankHolding, register.HRSystemTimeMinute)
	second, ok6 := c.Get(common.BankHolding, register.HRSystemTimeSecond)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return nil
	}
	t := time.Date(2000+int(year), time.Month(month), int(day), int(hour), int(minute), int(second), 0, time.UTC)
	return &t
}

func sumInt(c *register.Cache, idx1, idx2 uint16) *int {
	a, ok1 := c.Get(common.BankInput, idx1)
	b, ok2 := c.Get(common.BankInput, idx2)
	if !ok1 || !ok2 {
		return nil
	}
	sum := int(a) + int(b)
	return &sum
}

func sumScaled(c *register.Cache, idx1, idx2 uint16) *float64 {
	a, err1 := c.Converted(common.BankInput, idx1)
	b, err2 := c.Converted(common.BankInput, idx2)
	if err1 != nil || err2 != nil {
		return nil
	}
	af, ok1 := register.AsFloat(a)
	bf, ok2 := register.AsFloat(b)
	if !ok1 || !ok2 {
		return nil
	}
	sum := af + bf
	return &sum
}
