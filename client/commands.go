package client

import (
	"fmt"
	"time"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
)

// refreshRequests builds the standard periodic poll: the inverter's two
// always-live input-register banks, plus one battery input bank per
// attached pack. full additionally reads every holding-register bank and
// the inverter's third input bank — the heavier sweep run only every
// DefaultFullRefreshTick ticks.
func refreshRequests(numBatteries int, full bool) []pdu.Request {
	var reqs []pdu.Request

	reqs = append(reqs,
		pdu.NewReadInputRegistersRequest(common.SlaveInverter, 0, 60),
		pdu.NewReadInputRegistersRequest(common.SlaveInverter, 180, 60),
	)

	if full {
		reqs = append(reqs,
			pdu.NewReadHoldingRegistersRequest(common.SlaveInverter, 0, 60),
			pdu.NewReadHoldingRegistersRequest(common.SlaveInverter, 60, 60),
			pdu.NewReadHoldingRegistersRequest(common.SlaveInverter, 120, 60),
			pdu.NewReadInputRegistersRequest(common.SlaveInverter, 120, 60),
		)
	}

	for i := 0; i < numBatteries; i++ {
		addr := common.SlaveBatteryBase + common.SlaveAddress(i)
		reqs = append(reqs, pdu.NewReadInputRegistersRequest(addr, 60, 60))
	}

	return reqs
}

// EnableCharge and DisableCharge toggle scheduled charging.
func EnableCharge() pdu.Request  { return pdu.NewWriteHoldingRegisterRequest(register.HREnableCharge, 1) }
func DisableCharge() pdu.Request { return pdu.NewWriteHoldingRegisterRequest(register.HREnableCharge, 0) }

// EnableDischarge and DisableDischarge toggle scheduled discharging.
func EnableDischarge() pdu.Request {
	return pdu.NewWriteHoldingRegisterRequest(register.HREnableDischarge, 1)
}
func DisableDischarge() pdu.Request {
	return pdu.NewWriteHoldingRegisterRequest(register.HREnableDischarge, 0)
}

// SetChargeTargetSOC sets the SOC percentage at which scheduled charging
// stops. It writes HRChargeTargetSOC only; HREnableChargeTarget is left
// unchanged. Valid range is [4, 100].
func SetChargeTargetSOC(percent int) (pdu.Request, error) {
	if percent < 4 || percent > 100 {
		return nil, &common.InvalidPduState{Reason: fmt.Sprintf("charge target SOC %d out of range [4,100]", percent)}
	}
	return pdu.NewWriteHoldingRegisterRequest(register.HRChargeTargetSOC, uint16(percent)), nil
}

// SetBatterySOCReserve sets the SOC below which discharge stops. Valid
// range is [4, 100].
func SetBatterySOCReserve(percent int) (pdu.Request, error) {
	if percent < 4 || percent > 100 {
		return nil, &common.InvalidPduState{Reason: fmt.Sprintf("SOC reserve %d out of range [4,100]", percent)}
	}
	return pdu.NewWriteHoldingRegisterRequest(register.HRBatterySOCReserve, uint16(percent)), nil
}

// SetChargeLimit and SetDischargeLimit set the battery's charge/discharge
// power limit as a percentage of rated power. Valid range is [0, 50].
func SetChargeLimit(percent int) (pdu.Request, error) {
	if percent < 0 || percent > 50 {
		return nil, &common.InvalidPduState{Reason: fmt.Sprintf("charge limit %d out of range [0,50]", percent)}
	}
	return pdu.NewWriteHoldingRegisterRequest(register.HRBatteryChargeLimit, uint16(percent)), nil
}

func SetDischargeLimit(percent int) (pdu.Request, error) {
	if percent < 0 || percent > 50 {
		return nil, &common.InvalidPduState{Reason: fmt.Sprintf("discharge limit %d out of range [0,50]", percent)}
	}
	return pdu.NewWriteHoldingRegisterRequest(register.HRBatteryDischargeLimit, uint16(percent)), nil
}

// TimeSlot is a start/end pair expressed as a 24-hour HHMM value, the shape
// every charge/discharge slot register pair stores.
type TimeSlot struct {
	Start, End int // e.g. 30 for 00:30, 2330 for 23:30
}

// SetChargeSlot1 and SetChargeSlot2 and their discharge equivalents write a
// slot's start/end registers as two writes — there is no combined register,
// so the pair is not applied atomically against a concurrent reader.
func SetChargeSlot1(slot TimeSlot) [2]pdu.Request {
	return [2]pdu.Request{
		pdu.NewWriteHoldingRegisterRequest(register.HRChargeSlot1Start, uint16(slot.Start)),
		pdu.NewWriteHoldingRegisterRequest(register.HRChargeSlot1End, uint16(slot.End)),
	}
}

func SetChargeSlot2(slot TimeSlot) [2]pdu.Request {
	return [2]pdu.Request{
		pdu.NewWriteHoldingRegisterRequest(register.HRChargeSlot2Start, uint16(slot.Start)),
		pdu.NewWriteHoldingRegisterRequest(register.HRChargeSlot2End, uint16(slot.End)),
	}
}

func SetDischargeSlot1(slot TimeSlot) [2]pdu.Request {
	return [2]pdu.Request{
		pdu.NewWriteHoldingRegisterRequest(register.HRDischargeSlot1Start, uint16(slot.Start)),
		pdu.NewWriteHoldingRegisterRequest(register.HRDischargeSlot1End, uint16(slot.End)),
	}
}

func SetDischargeSlot2(slot TimeSlot) [2]pdu.Request {
	return [2]pdu.Request{
		pdu.NewWriteHoldingRegisterRequest(register.HRDischargeSlot2Start, uint16(slot.Start)),
		pdu.NewWriteHoldingRegisterRequest(register.HRDischargeSlot2End, uint16(slot.End)),
	}
}

// SetSystemClock writes the inverter's onboard clock as six separate
// writes (year stored as an offset from 2000, per the register's native
// width). Callers should apply these close together since they are not
// atomic against a concurrent read.
func SetSystemClock(t time.Time) [6]pdu.Request {
	year := t.Year() - 2000
	if year < 0 {
		year = 0
	}
	return [6]pdu.Request{
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeYear, uint16(year)),
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeMonth, uint16(t.Month())),
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeDay, uint16(t.Day())),
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeHour, uint16(t.Hour())),
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeMinute, uint16(t.Minute())),
		pdu.NewWriteHoldingRegisterRequest(register.HRSystemTimeSecond, uint16(t.Second())),
	}
}

// Reboot power-cycles the inverter's control board.
func Reboot() pdu.Request {
	return pdu.NewWriteHoldingRegisterRequest(register.HRInverterReboot, 100)
}
