package register

// Named holding-register indexes referenced by the structured views and the
// control-command composer. Registers without a name here are either read
// by numeric index in the device views or have no present consumer.
const (
	HRDeviceTypeCode      uint16 = 0
	HRInverterModuleH     uint16 = 1
	HRInverterModuleL     uint16 = 2
	HRNumMpptAndPhases    uint16 = 3
	HRBatterySerial1_2    uint16 = 8
	HRBatterySerial3_4    uint16 = 9
	HRBatterySerial5_6    uint16 = 10
	HRBatterySerial7_8    uint16 = 11
	HRBatterySerial9_10   uint16 = 12
	HRInverterSerial1_2   uint16 = 13
	HRInverterSerial3_4   uint16 = 14
	HRInverterSerial5_6   uint16 = 15
	HRInverterSerial7_8   uint16 = 16
	HRInverterSerial9_10  uint16 = 17
	HRDSPFirmwareVersion  uint16 = 19
	HREnableChargeTarget  uint16 = 20
	HRARMFirmwareVersion  uint16 = 21
	HRBatteryPowerMode    uint16 = 27
	HRChargeSlot2Start    uint16 = 31
	HRChargeSlot2End      uint16 = 32
	HRSystemTimeYear      uint16 = 35
	HRSystemTimeMonth     uint16 = 36
	HRSystemTimeDay       uint16 = 37
	HRSystemTimeHour      uint16 = 38
	HRSystemTimeMinute    uint16 = 39
	HRSystemTimeSecond    uint16 = 40
	HRDischargeSlot2Start uint16 = 44
	HRDischargeSlot2End   uint16 = 45
	HRDischargeSlot1Start uint16 = 56
	HRDischargeSlot1End   uint16 = 57
	HREnableDischarge     uint16 = 59
	HRChargeSlot1Start    uint16 = 94
	HRChargeSlot1End      uint16 = 95
	HREnableCharge        uint16 = 96
	HRBatterySOCReserve   uint16 = 110
	HRBatteryChargeLimit  uint16 = 111
	HRBatteryDischargeLimit uint16 = 112
	HRBatteryDischargeMinPowerReserve uint16 = 114
	HRChargeTargetSOC     uint16 = 116
	HRInverterReboot      uint16 = 163
)

// Named input-register indexes referenced by the structured views.
const (
	IRInverterStatus       uint16 = 0
	IREBatteryThroughputH  uint16 = 6
	IREBatteryThroughputL  uint16 = 7
	IREPVTotalH            uint16 = 11
	IREPVTotalL            uint16 = 12
	IREPv1Day              uint16 = 17
	IRPPv1                 uint16 = 18
	IREPv2Day              uint16 = 19
	IRPPv2                 uint16 = 20
	IRFaultCodeH           uint16 = 39
	IRFaultCodeL           uint16 = 40
	IRSystemMode           uint16 = 49
	IRVBattery             uint16 = 50
	IRIBattery             uint16 = 51
	IRPBattery             uint16 = 52
	IRBatteryPercent       uint16 = 59
	IRVCell01              uint16 = 60
	IRVCell16              uint16 = 75
	IRVCellsSum            uint16 = 80
	IRFullCapacityH        uint16 = 84
	IRFullCapacityL        uint16 = 85
	IRRemainingCapacityH   uint16 = 88
	IRRemainingCapacityL   uint16 = 89
	IRStatus1_2            uint16 = 90
	IRStatus3_4            uint16 = 91
	IRStatus5_6            uint16 = 92
	IRStatus7              uint16 = 93
	IRWarning1_2           uint16 = 94
	IRNumCycles            uint16 = 96
	IRBMSFirmwareVersion   uint16 = 98
	IRSOC                  uint16 = 100
	IRBatterySerial1_2     uint16 = 110
	IRBatterySerial3_4     uint16 = 111
	IRBatterySerial5_6     uint16 = 112
	IRBatterySerial7_8     uint16 = 113
	IRBatterySerial9_10    uint16 = 114
)
