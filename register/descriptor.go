package register

import "github.com/Moonlight-Companies/givenergy-modbus/common"

// Descriptor is the immutable, static definition of one register: how to
// decode its raw value and whether it may ever be the target of a write.
type Descriptor struct {
	Index     uint16
	Name      string
	DataType  DataType
	Scaling   ScalingFactor
	Unit      Unit
	WriteSafe bool
}

// Convert decodes raw per the descriptor's type and scaling, then applies
// the unit's sanity predicate. It mirrors the two-stage failure mode of the
// source dialect: a type-level failure (RegisterValueError) versus a
// range-level failure (RegisterNotSane).
func (d Descriptor) Convert(bank common.Bank, raw uint16) (any, error) {
	v, err := d.DataType.Convert(raw, d.Scaling)
	if err != nil {
		return nil, &common.RegisterValueError{Bank: bank, Index: d.Index, Raw: raw, Cause: err}
	}
	if f, ok := AsFloat(v); ok && !d.Unit.SanityCheck(f) {
		return nil, &common.RegisterNotSane{Bank: bank, Index: d.Index, Value: f, Unit: d.Unit.String()}
	}
	return v, nil
}

func d(index uint16, name string) Descriptor {
	return Descriptor{Index: index, Name: name, DataType: Uint16, Scaling: ScalingUnity, Unit: UnitNone}
}

// opt mutates a base descriptor; used to keep the table below close to the
// source's sparse per-field overrides instead of repeating every field.
type opt func(*Descriptor)

func withType(t DataType) opt       { return func(dd *Descriptor) { dd.DataType = t } }
func withScaling(s ScalingFactor) opt { return func(dd *Descriptor) { dd.Scaling = s } }
func withUnit(u Unit) opt           { return func(dd *Descriptor) { dd.Unit = u } }
func writeSafe() opt                { return func(dd *Descriptor) { dd.WriteSafe = true } }

func reg(index uint16, name string, opts ...opt) Descriptor {
	dd := d(index, name)
	for _, o := range opts {
		o(&dd)
	}
	return dd
}

// Lookup returns the descriptor for (bank, index) and whether it exists.
func Lookup(bank common.Bank, index uint16) (Descriptor, bool) {
	var table map[uint16]Descriptor
	if bank == common.BankHolding {
		table = holdingRegisters
	} else {
		table = inputRegisters
	}
	dd, ok := table[index]
	return dd, ok
}

// WriteSafe reports whether a holding register index may be the target of a
// write-holding request.
func WriteSafe(index uint16) bool {
	dd, ok := holdingRegisters[index]
	return ok && dd.WriteSafe
}
