package register

// holdingRegisters is the static Holding-bank register map, grounded on the
// GivEnergy inverter's documented and reverse-engineered holding registers.
// Indexes with no known meaning are still present (as plain UINT16, not
// write-safe) so that a read response spanning them doesn't fail to decode.
var holdingRegisters = map[uint16]Descriptor{}

func init() {
	add := func(rr ...Descriptor) {
		for _, r := range rr {
			holdingRegisters[r.Index] = r
		}
	}

	// Reserve every index in [0, 201] as a plain UINT16 first; named entries
	// below override individual slots with their real type/scaling/unit.
	for i := uint16(0); i <= 201; i++ {
		holdingRegisters[i] = reg(i, "HOLDING_REG")
	}

	add(
		reg(0, "DEVICE_TYPE_CODE", withType(Hex)),
		reg(1, "INVERTER_MODULE_H", withType(Uint32High)),
		reg(2, "INVERTER_MODULE_L", withType(Uint32Low)),
		reg(3, "NUM_MPPT_AND_NUM_PHASES", withType(DUint8)),
		reg(7, "ENABLE_AMMETER", withType(Bool)),
		reg(8, "INVERTER_BATTERY_SERIAL_NUMBER_1_2", withType(ASCII)),
		reg(9, "INVERTER_BATTERY_SERIAL_NUMBER_3_4", withType(ASCII)),
		reg(10, "INVERTER_BATTERY_SERIAL_NUMBER_5_6", withType(ASCII)),
		reg(11, "INVERTER_BATTERY_SERIAL_NUMBER_7_8", withType(ASCII)),
		reg(12, "INVERTER_BATTERY_SERIAL_NUMBER_9_10", withType(ASCII)),
		reg(13, "INVERTER_SERIAL_NUMBER_1_2", withType(ASCII)),
		reg(14, "INVERTER_SERIAL_NUMBER_3_4", withType(ASCII)),
		reg(15, "INVERTER_SERIAL_NUMBER_5_6", withType(ASCII)),
		reg(16, "INVERTER_SERIAL_NUMBER_7_8", withType(ASCII)),
		reg(17, "INVERTER_SERIAL_NUMBER_9_10", withType(ASCII)),
		reg(18, "INVERTER_BATTERY_BMS_FIRMWARE_VERSION"),
		reg(19, "DSP_FIRMWARE_VERSION"),
		reg(20, "ENABLE_CHARGE_TARGET", withType(Bool), writeSafe()),
		reg(21, "ARM_FIRMWARE_VERSION"),
		reg(22, "USB_DEVICE_INSERTED"),
		reg(23, "SELECT_ARM_CHIP", withType(Bool)),
		reg(24, "VARIABLE_ADDRESS"),
		reg(25, "VARIABLE_VALUE", withType(Int16)),
		reg(26, "GRID_PORT_MAX_POWER_OUTPUT", withUnit(UnitPowerW)),
		reg(27, "BATTERY_POWER_MODE", writeSafe()),
		reg(28, "ENABLE_60HZ_FREQ_MODE", withType(Bool)),
		reg(29, "SOC_FORCE_ADJUST"),
		reg(30, "INVERTER_MODBUS_ADDRESS", withType(Uint8)),
		reg(31, "CHARGE_SLOT_2_START", withType(Time), writeSafe()),
		reg(32, "CHARGE_SLOT_2_END", withType(Time), writeSafe()),
		reg(33, "USER_CODE"),
		reg(34, "MODBUS_VERSION", withScaling(ScalingCenti)),
		reg(35, "SYSTEM_TIME_YEAR", writeSafe()),
		reg(36, "SYSTEM_TIME_MONTH", writeSafe()),
		reg(37, "SYSTEM_TIME_DAY", writeSafe()),
		reg(38, "SYSTEM_TIME_HOUR", writeSafe()),
		reg(39, "SYSTEM_TIME_MINUTE", writeSafe()),
		reg(40, "SYSTEM_TIME_SECOND", writeSafe()),
		reg(41, "ENABLE_DRM_RJ45_PORT", withType(Bool)),
		reg(42, "CT_ADJUST", withType(Bitfield)),
		reg(43, "CHARGE_AND_DISCHARGE_SOC", withType(DUint8)),
		reg(44, "DISCHARGE_SLOT_2_START", withType(Time), writeSafe()),
		reg(45, "DISCHARGE_SLOT_2_END", withType(Time), writeSafe()),
		reg(46, "BMS_CHIP_VERSION"),
		reg(47, "METER_TYPE"),
		reg(48, "REVERSE_115_METER_DIRECT", withType(Bool)),
		reg(49, "REVERSE_418_METER_DIRECT", withType(Bool)),
		reg(50, "ACTIVE_POWER_RATE", withUnit(UnitPercent)),
		reg(51, "REACTIVE_POWER_RATE", withUnit(UnitPercent)),
		reg(52, "POWER_FACTOR", withType(PowerFactor)),
		reg(53, "INVERTER_STATE", withType(DUint8)),
		reg(54, "BATTERY_TYPE"),
		reg(55, "BATTERY_NOMINAL_CAPACITY", withUnit(UnitChargeAh)),
		reg(56, "DISCHARGE_SLOT_1_START", withType(Time), writeSafe()),
		reg(57, "DISCHARGE_SLOT_1_END", withType(Time), writeSafe()),
		reg(58, "ENABLE_AUTO_JUDGE_BATTERY_TYPE", withType(Bool)),
		reg(59, "ENABLE_DISCHARGE", withType(Bool), writeSafe()),
		reg(60, "V_PV_INPUT_START", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(61, "INVERTER_START_TIME", withUnit(UnitTimeSeconds)),
		reg(62, "INVERTER_RESTART_DELAY_TIME", withUnit(UnitTimeSeconds)),
		reg(63, "V_AC_LOW_OUT", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(64, "V_AC_HIGH_OUT", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(65, "F_AC_LOW_OUT", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(66, "F_AC_HIGH_OUT", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(71, "V_AC_LOW_IN", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(72, "V_AC_HIGH_IN", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(73, "F_AC_LOW_IN", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(74, "F_AC_HIGH_IN", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(79, "V_AC_LOW_C", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(80, "V_AC_HIGH_C", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(81, "F_AC_LOW_C", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(82, "F_AC_HIGH_C", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(83, "V_10_MIN_PROTECTION", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(86, "GFCI_1_I", withUnit(UnitCurrentMA)),
		reg(88, "GFCI_2_I", withUnit(UnitCurrentMA)),
		reg(90, "DCI_1_I", withUnit(UnitCurrentMA)),
		reg(92, "DCI_2_I", withUnit(UnitCurrentMA)),
		reg(94, "CHARGE_SLOT_1_START", withType(Time), writeSafe()),
		reg(95, "CHARGE_SLOT_1_END", withType(Time), writeSafe()),
		reg(96, "ENABLE_CHARGE", withType(Bool), writeSafe()),
		reg(97, "V_BATTERY_UNDER_PROTECTION_LIMIT", withScaling(ScalingCenti), withUnit(UnitVoltageV)),
		reg(98, "V_BATTERY_OVER_PROTECTION_LIMIT", withScaling(ScalingCenti), withUnit(UnitVoltageV)),
		reg(99, "PV1_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(100, "PV2_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(101, "GRID_R_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(102, "GRID_S_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(103, "GRID_T_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(104, "GRID_POWER_ADJUST", withUnit(UnitPowerW)),
		reg(105, "BATTERY_VOLTAGE_ADJUST", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(106, "PV1_POWER_ADJUST", withUnit(UnitPowerW)),
		reg(107, "PV2_POWER_ADJUST", withUnit(UnitPowerW)),
		reg(108, "BATTERY_LOW_FORCE_CHARGE_TIME", withUnit(UnitTimeMinutes)),
		reg(109, "ENABLE_BMS_READ", withType(Bool)),
		reg(110, "BATTERY_SOC_RESERVE", withUnit(UnitPercent), writeSafe()),
		reg(111, "BATTERY_CHARGE_LIMIT", withUnit(UnitPercent), writeSafe()),
		reg(112, "BATTERY_DISCHARGE_LIMIT", withUnit(UnitPercent), writeSafe()),
		reg(113, "ENABLE_BUZZER", withType(Bool)),
		reg(114, "BATTERY_DISCHARGE_MIN_POWER_RESERVE", withUnit(UnitPercent), writeSafe()),
		reg(115, "ISLAND_CHECK_CONTINUE"),
		reg(116, "CHARGE_TARGET_SOC", withUnit(UnitPercent), writeSafe()),
		reg(117, "CHARGE_SOC_STOP_2", withUnit(UnitPercent)),
		reg(118, "DISCHARGE_SOC_STOP_2", withUnit(UnitPercent)),
		reg(119, "CHARGE_SOC_STOP_1", withUnit(UnitPercent)),
		reg(120, "DISCHARGE_SOC_STOP_1", withUnit(UnitPercent)),
		reg(121, "LOCAL_COMMAND_TEST", withType(Bool)),
		reg(124, "ENABLE_LOW_VOLTAGE_FAULT_RIDE_THROUGH", withType(Bool)),
		reg(125, "ENABLE_FREQUENCY_DERATING", withType(Bool)),
		reg(126, "ENABLE_ABOVE_6KW_SYSTEM", withType(Bool)),
		reg(127, "START_SYSTEM_AUTO_TEST", withType(Bool)),
		reg(128, "ENABLE_SPI", withType(Bool)),
		reg(129, "PF_CMD_MEMORY_STATE", withType(Bool)),
		reg(130, "PF_LIMIT_LP1_LP", withUnit(UnitPercent)),
		reg(131, "PF_LIMIT_LP1_PF", withType(PowerFactor)),
		reg(132, "PF_LIMIT_LP2_LP", withUnit(UnitPercent)),
		reg(133, "PF_LIMIT_LP2_PF", withType(PowerFactor)),
		reg(134, "PF_LIMIT_LP3_LP", withUnit(UnitPercent)),
		reg(135, "PF_LIMIT_LP3_PF", withType(PowerFactor)),
		reg(136, "PF_LIMIT_LP4_LP", withUnit(UnitPercent)),
		reg(137, "PF_LIMIT_LP4_PF", withType(PowerFactor)),
		reg(142, "CEI021_Q_LOCK_IN_POWER", withUnit(UnitPercent)),
		reg(143, "CEI021_Q_LOCK_OUT_POWER", withUnit(UnitPercent)),
		reg(144, "CEI021_LOCK_IN_GRID_VOLTAGE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(145, "CEI021_LOCK_OUT_GRID_VOLTAGE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(163, "INVERTER_REBOOT", withUnit(UnitPercent), writeSafe()),
	)
}
