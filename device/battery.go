package device

import (
	"strings"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
)

// Battery is the structured, read-only view over one attached BMS pack's
// Input register cache (slave 0x32..0x36).
type Battery struct {
	SlaveAddress       common.SlaveAddress
	BatterySerialNumber string

	CellVoltages [16]float64
	CellTemps    [4]float64
	CellsSum     float64
	BMSMOSTemp   float64

	FullCapacityAh      float64
	DesignCapacityAh    float64
	RemainingCapacityAh float64

	EChargeTotal    float64
	EDischargeTotal float64

	Status1_2  [2]uint8
	Status3_4  [2]uint8
	Status5_6  [2]uint8
	Status7    [2]uint8
	Warning1_2 [2]uint8

	NumCycles          int
	NumCells            int
	BMSFirmwareVersion  int
	SOC                 int
	TempMax             float64
	TempMin             float64
}

// IsValid reports whether the battery has reported a real serial number.
// An absent or all-null serial means no pack actually answers at this
// address yet, matching the source's Battery.is_valid check.
func (b *Battery) IsValid() bool {
	if b.BatterySerialNumber == "" {
		return false
	}
	return strings.Trim(b.BatterySerialNumber, "\x00") != ""
}

// BatteryFromCache builds a Battery view from a register cache belonging to
// one battery slave address.
func BatteryFromCache(addr common.SlaveAddress, c *register.Cache) *Battery {
	b := &Battery{SlaveAddress: addr}

	if s, ok := c.ToString(common.BankInput,
		register.IRBatterySerial1_2, register.IRBatterySerial3_4, register.IRBatterySerial5_6,
		register.IRBatterySerial7_8, register.IRBatterySerial9_10); ok {
		b.BatterySerialNumber = s
	}

	for i := 0; i < 16; i++ {
		b.CellVoltages[i] = floatOr(c, register.IRVCell01+uint16(i))
	}
	for i := 0; i < 4; i++ {
		b.CellTemps[i] = floatOr(c, 76+uint16(i))
	}
	b.CellsSum = floatOr(c, register.IRVCellsSum)
	b.BMSMOSTemp = floatOr(c, 81)

	if v, ok := c.ToUint32(common.BankInput, register.IRFullCapacityH, register.IRFullCapacityL); ok {
		b.FullCapacityAh = float64(v) / 100
	}
	if v, ok := c.Get(common.BankInput, 86); ok {
		if v2, ok2 := c.Get(common.BankInput, 87); ok2 {
			b.DesignCapacityAh = float64(uint32(v)<<16|uint32(v2)) / 100
		}
	}
	if v, ok := c.ToUint32(common.BankInput, register.IRRemainingCapacityH, register.IRRemainingCapacityL); ok {
		b.RemainingCapacityAh = float64(v) / 100
	}

	b.EChargeTotal = floatOr(c, 106)
	b.EDischargeTotal = floatOr(c, 105)

	b.Status1_2 = duint8Or(c, register.IRStatus1_2)
	b.Status3_4 = duint8Or(c, register.IRStatus3_4)
	b.Status5_6 = duint8Or(c, register.IRStatus5_6)
	b.Status7 = duint8Or(c, register.IRStatus7)
	b.Warning1_2 = duint8Or(c, register.IRWarning1_2)

	if v, ok := c.Get(common.BankInput, register.IRNumCycles); ok {
		b.NumCycles = int(v)
	}
	if v, ok := c.Get(common.BankInput, 97); ok {
		b.NumCells = int(v)
	}
	if v, ok := c.Get(common.BankInput, register.IRBMSFirmwareVersion); ok {
		b.BMSFirmwareVersion = int(v)
	}
	if v, ok := c.Get(common.BankInput, register.IRSOC); ok {
		b.SOC = int(v)
	}
	b.TempMax = floatOr(c, 103)
	b.TempMin = floatOr(c, 104)

	return b
}

func floatOr(c *register.Cache, index uint16) float64 {
	v, err := c.Converted(common.BankInput, index)
	if err != nil {
		return 0
	}
	f, _ := register.AsFloat(v)
	return f
}

func duint8Or(c *register.Cache, index uint16) [2]uint8 {
	v, err := c.Converted(common.BankInput, index)
	if err != nil {
		return [2]uint8{}
	}
	pair, ok := v.([2]uint8)
	if !ok {
		return [2]uint8{}
	}
	return pair
}
