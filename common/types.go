package common

// SlaveAddress identifies a device on the transparent sub-protocol: the
// inverter or one of up to five attached battery BMS units.
type SlaveAddress byte

const (
	// SlaveInverter is the address GivEnergy hybrid/AC inverters respond on.
	// It coincides with SlaveBatteryBase: the inverter and the first
	// battery pack are projections of the same register cache.
	SlaveInverter SlaveAddress = 0x32
	// SlaveBatteryBase is the address of the first battery pack; subsequent
	// packs occupy SlaveBatteryBase+1 .. SlaveBatteryBase+4.
	SlaveBatteryBase SlaveAddress = 0x32
	// MaxBatteries is the largest number of battery packs the dialect addresses.
	MaxBatteries = 5
)

// MainFunctionCode is the outer Modbus-ish function carried in the MBAP-like
// header (fid). GivEnergy only ever uses two of these.
type MainFunctionCode byte

const (
	MainFunctionHeartbeat   MainFunctionCode = 0x01
	MainFunctionTransparent MainFunctionCode = 0x02
)

// InnerFunctionCode is the function embedded inside a Transparent message,
// one byte after the slave address.
type InnerFunctionCode byte

const (
	InnerFunctionNull          InnerFunctionCode = 0x00
	InnerFunctionReadHolding   InnerFunctionCode = 0x03
	InnerFunctionReadInput     InnerFunctionCode = 0x04
	InnerFunctionWriteHolding  InnerFunctionCode = 0x06
	innerFunctionErrorBit      InnerFunctionCode = 0x80
	innerFunctionMask          InnerFunctionCode = 0x7F
)

// IsError reports whether the high bit marking an error response is set.
func (f InnerFunctionCode) IsError() bool {
	return f&innerFunctionErrorBit != 0
}

// Masked strips the error bit, yielding the base function code.
func (f InnerFunctionCode) Masked() InnerFunctionCode {
	return f & innerFunctionMask
}

// WithError sets the error bit.
func (f InnerFunctionCode) WithError() InnerFunctionCode {
	return f | innerFunctionErrorBit
}

// Padding values observed in the eight padding bytes of a Transparent
// message. Outgoing requests always send the "request" value; the dialect's
// own responses are inconsistent about which of the other two they use, so
// mismatches are warned, never rejected.
const (
	PaddingRequest      uint64 = 0x08
	PaddingResponse     uint64 = 0x8A
	PaddingErrorResponse uint64 = 0x12
)

// Network/timing defaults, per the wire protocol description.
const (
	DefaultPort            = 8899
	DefaultRefreshPeriod   = 5_000 // milliseconds
	DefaultFullRefreshTick = 12
	DefaultPacingMinMillis = 250
	DefaultPacingMaxMillis = 350
	DefaultConnectTimeoutMillis = 2_000
	DefaultRequestTimeoutMillis = 1_000
	DefaultReadRetries     = 0
	DefaultWriteRetries    = 2
	DefaultBackoffInitialMillis = 1_000
	DefaultBackoffMultiplier    = 1.2
	DefaultBackoffMaxMillis     = 60_000
	DefaultHeartbeatDeadlineSeconds = 5
)

// Bank identifies which of the two disjoint 16-bit-word register spaces an
// index belongs to. Indexes only compare equal within the same bank.
type Bank int

const (
	BankHolding Bank = iota
	BankInput
)

func (b Bank) String() string {
	switch b {
	case BankHolding:
		return "HR"
	case BankInput:
		return "IR"
	default:
		return "??"
	}
}
