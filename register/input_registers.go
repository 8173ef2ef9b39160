package register

// inputRegisters is the static Input-bank register map, shared by the
// inverter (slave 0x11/0x32) and its attached battery BMS units
// (slave 0x32..0x36). Registers 240 and above describe a third meter phase
// and per-quantity fault limits seen only on three-phase units still under
// active reverse engineering upstream; they are deliberately not included.
var inputRegisters = map[uint16]Descriptor{}

func init() {
	add := func(rr ...Descriptor) {
		for _, r := range rr {
			inputRegisters[r.Index] = r
		}
	}

	for i := uint16(0); i <= 239; i++ {
		inputRegisters[i] = reg(i, "INPUT_REG")
	}

	add(
		reg(0, "INVERTER_STATUS"),
		reg(1, "V_PV1", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(2, "V_PV2", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(3, "V_P_BUS", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(4, "V_N_BUS", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(5, "V_AC1", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(6, "E_BATTERY_THROUGHPUT_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(7, "E_BATTERY_THROUGHPUT_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(8, "I_PV1", withScaling(ScalingDeci), withUnit(UnitCurrentA)),
		reg(9, "I_PV2", withScaling(ScalingDeci), withUnit(UnitCurrentA)),
		reg(10, "I_AC1", withScaling(ScalingCenti), withUnit(UnitCurrentA)),
		reg(11, "E_PV_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(12, "E_PV_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(13, "F_AC1", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(14, "CHARGE_STATUS"),
		reg(15, "V_HIGHBRIGH_BUS"),
		reg(16, "PF_INVERTER_OUT", withType(PowerFactor)),
		reg(17, "E_PV1_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(18, "P_PV1", withUnit(UnitPowerW)),
		reg(19, "E_PV2_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(20, "P_PV2", withUnit(UnitPowerW)),
		reg(21, "E_GRID_OUT_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(22, "E_GRID_OUT_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(23, "E_SOLAR_DIVERTER", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(24, "P_INVERTER_OUT", withType(Int16), withUnit(UnitPowerW)),
		reg(25, "E_GRID_OUT_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(26, "E_GRID_IN_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(27, "E_INVERTER_IN_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(28, "E_INVERTER_IN_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(29, "E_DISCHARGE_YEAR", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(30, "P_GRID_OUT", withType(Int16), withUnit(UnitPowerW)),
		reg(31, "P_EPS_BACKUP", withUnit(UnitPowerW)),
		reg(32, "E_GRID_IN_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(33, "E_GRID_IN_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(35, "E_INVERTER_IN_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(36, "E_BATTERY_CHARGE_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(37, "E_BATTERY_DISCHARGE_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(38, "INVERTER_COUNTDOWN", withUnit(UnitTimeSeconds)),
		reg(39, "FAULT_CODE_H", withType(Bitfield)),
		reg(40, "FAULT_CODE_L", withType(Bitfield)),
		reg(41, "TEMP_INVERTER_HEATSINK", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(42, "P_LOAD_DEMAND", withUnit(UnitPowerW)),
		reg(43, "P_GRID_APPARENT", withUnit(UnitPowerVA)),
		reg(44, "E_INVERTER_OUT_DAY", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(45, "E_INVERTER_OUT_TOTAL_H", withType(Uint32High), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(46, "E_INVERTER_OUT_TOTAL_L", withType(Uint32Low), withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(47, "WORK_TIME_TOTAL_H", withType(Uint32High), withUnit(UnitTimeSeconds)),
		reg(48, "WORK_TIME_TOTAL_L", withType(Uint32Low), withUnit(UnitTimeSeconds)),
		reg(49, "SYSTEM_MODE"),
		reg(50, "V_BATTERY", withScaling(ScalingCenti), withUnit(UnitVoltageV)),
		reg(51, "I_BATTERY", withType(Int16), withScaling(ScalingCenti), withUnit(UnitCurrentA)),
		reg(52, "P_BATTERY", withType(Int16), withUnit(UnitPowerW)),
		reg(53, "V_EPS_BACKUP", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(54, "F_EPS_BACKUP", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(55, "TEMP_CHARGER", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(56, "TEMP_BATTERY", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(57, "CHARGER_WARNING_CODE"),
		reg(58, "I_GRID_PORT", withScaling(ScalingCenti), withUnit(UnitCurrentA)),
		reg(59, "BATTERY_PERCENT", withUnit(UnitPercent)),

		// Battery / BMS cell-level telemetry (slave 0x32..0x36).
		reg(60, "V_CELL_01", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(61, "V_CELL_02", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(62, "V_CELL_03", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(63, "V_CELL_04", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(64, "V_CELL_05", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(65, "V_CELL_06", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(66, "V_CELL_07", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(67, "V_CELL_08", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(68, "V_CELL_09", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(69, "V_CELL_10", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(70, "V_CELL_11", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(71, "V_CELL_12", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(72, "V_CELL_13", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(73, "V_CELL_14", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(74, "V_CELL_15", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(75, "V_CELL_16", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(76, "TEMP_CELLS_1", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(77, "TEMP_CELLS_2", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(78, "TEMP_CELLS_3", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(79, "TEMP_CELLS_4", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(80, "V_CELLS_SUM", withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(81, "TEMP_BMS_MOS", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(82, "V_BATTERY_OUT_H", withType(Uint32High), withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(83, "V_BATTERY_OUT_L", withType(Uint32Low), withScaling(ScalingMilli), withUnit(UnitVoltageV)),
		reg(84, "FULL_CAPACITY_H", withType(Uint32High), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(85, "FULL_CAPACITY_L", withType(Uint32Low), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(86, "DESIGN_CAPACITY_H", withType(Uint32High), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(87, "DESIGN_CAPACITY_L", withType(Uint32Low), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(88, "REMAINING_CAPACITY_H", withType(Uint32High), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(89, "REMAINING_CAPACITY_L", withType(Uint32Low), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(90, "STATUS_1_2", withType(DUint8)),
		reg(91, "STATUS_3_4", withType(DUint8)),
		reg(92, "STATUS_5_6", withType(DUint8)),
		reg(93, "STATUS_7", withType(DUint8)),
		reg(94, "WARNING_1_2", withType(DUint8)),
		reg(96, "NUM_CYCLES"),
		reg(97, "NUM_CELLS"),
		reg(98, "BMS_FIRMWARE_VERSION"),
		reg(100, "SOC"),
		reg(101, "DESIGN_CAPACITY_2_H", withType(Uint32High), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(102, "DESIGN_CAPACITY_2_L", withType(Uint32Low), withScaling(ScalingCenti), withUnit(UnitChargeAh)),
		reg(103, "TEMP_MAX", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(104, "TEMP_MIN", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(105, "E_DISCHARGE_TOTAL", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(106, "E_CHARGE_TOTAL", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(110, "BATTERY_SERIAL_NUMBER_1_2", withType(ASCII)),
		reg(111, "BATTERY_SERIAL_NUMBER_3_4", withType(ASCII)),
		reg(112, "BATTERY_SERIAL_NUMBER_5_6", withType(ASCII)),
		reg(113, "BATTERY_SERIAL_NUMBER_7_8", withType(ASCII)),
		reg(114, "BATTERY_SERIAL_NUMBER_9_10", withType(ASCII)),
		reg(115, "USB_INSERTED", withType(Bitfield)),

		reg(180, "E_BATTERY_DISCHARGE_TOTAL", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(181, "E_BATTERY_CHARGE_TOTAL", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(182, "E_BATTERY_DISCHARGE_DAY_2", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(183, "E_BATTERY_CHARGE_DAY_2", withScaling(ScalingDeci), withUnit(UnitEnergyKWh)),
		reg(201, "REMOTE_BMS_RESTART", withType(Bool)),

		reg(210, "ISO_FAULT_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(211, "GFCI_FAULT_VALUE", withUnit(UnitCurrentMA)),
		reg(212, "DCI_FAULT_VALUE", withScaling(ScalingCenti), withUnit(UnitCurrentA)),
		reg(213, "V_PV_FAULT_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(214, "V_AC_FAULT_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(215, "F_AC_FAULT_VALUE", withScaling(ScalingCenti), withUnit(UnitFrequencyHz)),
		reg(216, "TEMP_FAULT_VALUE", withScaling(ScalingDeci), withUnit(UnitTemperatureC)),
		reg(225, "AUTO_TEST_PROCESS_OR_AUTO_TEST_STEP", withType(Bitfield)),
		reg(226, "AUTO_TEST_RESULT"),
		reg(227, "AUTO_TEST_STOP_STEP"),
		reg(229, "SAFETY_V_F_LIMIT", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(230, "SAFETY_TIME_LIMIT", withUnit(UnitTimeMillis)),
		reg(231, "REAL_V_F_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(232, "TEST_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(233, "TEST_TREAT_VALUE", withScaling(ScalingDeci), withUnit(UnitVoltageV)),
		reg(234, "TEST_TREAT_TIME", withUnit(UnitTimeMillis)),
	)
}
