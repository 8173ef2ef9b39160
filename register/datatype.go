// Package register holds the static per-bank register map (index to semantic
// type, scaling, unit and write-safety) and the validated register cache
// that stores raw values decoded off the wire.
package register

import (
	"fmt"
)

// DataType is the semantic interpretation applied to a raw 16-bit register
// value before it is exposed to callers. Encoding on the wire is always
// big-endian.
type DataType int

const (
	Bool DataType = iota
	Bitfield
	Hex
	Uint8
	DUint8
	Uint16
	Int16
	Uint32High // higher (MSB) word of a big-endian 32-bit pair
	Uint32Low  // lower (LSB) word of a big-endian 32-bit pair
	ASCII      // two latin-1 characters packed into one word
	Time       // decimal HHMM, e.g. 430 -> 04:30
	PowerFactor
)

// Convert applies the type's decode rule to a raw register value, dividing
// by scaling where the type honors scaling at all. Bitfield, Hex, DUint8,
// Time and ASCII ignore scaling; it makes no sense for them.
func (t DataType) Convert(raw uint16, scaling ScalingFactor) (any, error) {
	switch t {
	case Uint32High:
		v := uint32(raw) << 16
		if scaling != ScalingUnity {
			return float64(v) / float64(scaling), nil
		}
		return v, nil

	case Uint32Low:
		if scaling != ScalingUnity {
			return float64(raw) / float64(scaling), nil
		}
		return uint32(raw), nil

	case Int16:
		v := int32(raw)
		if raw&(1<<15) != 0 {
			v -= 1 << 16
		}
		if scaling != ScalingUnity {
			return float64(v) / float64(scaling), nil
		}
		return v, nil

	case Bool:
		return raw != 0, nil

	case Time:
		hour := int(raw / 100)
		minute := int(raw % 100)
		if hour > 24 || minute > 60 {
			return nil, fmt.Errorf("time value %04d out of range", raw)
		}
		if hour == 24 {
			hour = 0
		}
		if minute == 60 {
			minute = 0
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil

	case ASCII:
		return string([]rune{rune(raw >> 8), rune(raw & 0xFF)}), nil

	case Uint8:
		return uint8(raw & 0xFF), nil

	case DUint8:
		return [2]uint8{uint8(raw >> 8), uint8(raw & 0xFF)}, nil

	case PowerFactor:
		return (float64(raw) - 10_000) / 10_000, nil

	case Bitfield:
		return raw, nil

	case Hex:
		return fmt.Sprintf("%04x", raw), nil

	default: // Uint16
		if scaling != ScalingUnity {
			return float64(raw) / float64(scaling), nil
		}
		return raw, nil
	}
}

// TimeOfDay is a BCD-decoded TIME register value.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// ScalingFactor is the divisor applied to a raw value to recover its
// physical magnitude.
type ScalingFactor int

const (
	ScalingUnity ScalingFactor = 1
	ScalingDeci  ScalingFactor = 10
	ScalingCenti ScalingFactor = 100
	ScalingMilli ScalingFactor = 1000
)

// AsFloat reports the value as float64 for sanity checking; types that
// decode to something other than a plain numeric quantity return
// (0, false) and are not sanity-checked.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case uint32:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
