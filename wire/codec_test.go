package wire

import "testing"

func TestEncoderPutASCIIPadsWithAsterisk(t *testing.T) {
	got := NewEncoder().PutASCII("G567", 10).Bytes()
	want := "******G567"
	if string(got) != want {
		t.Fatalf("PutASCII() = %q, want %q", got, want)
	}
}

func TestEncoderPutASCIITruncatesLongInput(t *testing.T) {
	got := NewEncoder().PutASCII("ABCDEFGHIJKLMNO", 10).Bytes()
	want := "FGHIJKLMNO"
	if string(got) != want {
		t.Fatalf("PutASCII() = %q, want %q", got, want)
	}
}

func TestDecoderRoundTripsEncoder(t *testing.T) {
	enc := NewEncoder().PutUint8(0x01).PutUint16(0x1234).PutUint32(0xDEADBEEF).PutASCII("AB1234G567", 10)
	dec := NewDecoder(enc.Bytes())

	u8, err := dec.Uint8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("Uint8() = %v, %v", u8, err)
	}
	u16, err := dec.Uint16()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("Uint16() = %v, %v", u16, err)
	}
	u32, err := dec.Uint32()
	if err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("Uint32() = %v, %v", u32, err)
	}
	s, err := dec.ASCII(10)
	if err != nil || s != "AB1234G567" {
		t.Fatalf("ASCII() = %q, %v", s, err)
	}
	if !dec.Done() {
		t.Fatalf("expected decoder to be exhausted, %d bytes remain", dec.Remaining())
	}
}

func TestDecoderShortBufferError(t *testing.T) {
	dec := NewDecoder([]byte{0x01})
	if _, err := dec.Uint16(); err == nil {
		t.Fatal("expected short buffer error")
	}
}

func TestCRC16ModbusKnownVector(t *testing.T) {
	// inner_fc=0x04, base=0x0010, count=0x0006, matches scenario S2 in SPEC_FULL.md.
	got := CRC16Modbus([]byte{0x04, 0x00, 0x10, 0x00, 0x06})
	if got != 0x0754 {
		t.Fatalf("CRC16Modbus() = 0x%04x, want 0x0754", got)
	}
}
