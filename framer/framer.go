// Package framer turns a raw byte stream from the data adapter's TCP
// socket into a sequence of decoded PDUs, and builds outbound packets from
// PDUs in the other direction. It understands the vendor's MBAP-like
// envelope and its one quirk: the length field counts one extra byte
// (uid+fid) beyond what a standard Modbus-TCP header would.
package framer

import (
	"bytes"
	"encoding/binary"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// headerSize is tid(2) + pid(2) + length(2) + uid(1) + fid(1).
const headerSize = 8

var signature = []byte{0x59, 0x59, 0x00, 0x01}

// Framer accumulates incoming bytes and extracts complete frames. It is
// not safe for concurrent use — confine one instance to the reader
// goroutine that owns the socket.
type Framer struct {
	buf  []byte
	warn pdu.Warner
}

// New returns an empty Framer. warn receives non-fatal decode-time
// observations from the PDU layer (padding mismatches, suspicious content)
// and may be nil.
func New(warn pdu.Warner) *Framer {
	return &Framer{warn: warn}
}

// Feed appends newly-read bytes to the internal buffer and repeatedly
// extracts and decodes every complete frame now available, calling deliver
// once per frame: with a decoded PDU on success, or a nil PDU and a non-nil
// error (InvalidFrame or InvalidPduState) on failure. Feed never blocks and
// never discards bytes beyond what resync requires.
func (f *Framer) Feed(data []byte, deliver func(pdu.PDU, error)) {
	f.buf = append(f.buf, data...)
	for {
		body, fid, ok := f.tryExtract()
		if !ok {
			return
		}
		p, err := pdu.Decode(fid, body, pdu.DirectionRequest, f.warn)
		deliver(p, err)
	}
}

// tryExtract parses and pops the next complete frame, resyncing past any
// invalid header candidates it encounters along the way. It returns
// ok=false when the buffer holds too little data to make progress right
// now, without losing any bytes.
func (f *Framer) tryExtract() (body []byte, fid common.MainFunctionCode, ok bool) {
	for {
		if len(f.buf) < headerSize {
			return nil, 0, false
		}
		tid := binary.BigEndian.Uint16(f.buf[0:2])
		pidv := binary.BigEndian.Uint16(f.buf[2:4])
		length := binary.BigEndian.Uint16(f.buf[4:6])
		uid := f.buf[6]
		fidRaw := f.buf[7]

		if tid != 0x5959 || pidv != 0x0001 || uid != 0x01 || (fidRaw != 0x01 && fidRaw != 0x02) {
			before := len(f.buf)
			f.resync()
			if len(f.buf) == before {
				return nil, 0, false
			}
			continue
		}

		// length counts every byte following the length field itself,
		// i.e. uid + fid + body.
		total := 6 + int(length)
		if len(f.buf) < total {
			return nil, 0, false
		}
		body = make([]byte, total-headerSize)
		copy(body, f.buf[headerSize:total])
		f.buf = f.buf[total:]
		return body, common.MainFunctionCode(fidRaw), true
	}
}

// resync searches for the next occurrence of the tid/pid signature
// starting one byte into the buffer (never at offset 0, which is the
// candidate that just failed validation) and discards everything before
// it. If no candidate is found, the buffer is left untouched to await more
// input — bytes are never dropped on the strength of a resync alone.
func (f *Framer) resync() {
	if len(f.buf) < 2 {
		return
	}
	idx := bytes.Index(f.buf[1:], signature)
	if idx < 0 {
		return
	}
	f.buf = f.buf[1+idx:]
}

// BuildPacket renders a complete outbound packet: the 8-byte header
// followed by the PDU's encoded body.
func BuildPacket(p pdu.PDU) ([]byte, error) {
	body, err := p.Encode()
	if err != nil {
		return nil, err
	}
	fid := byte(0x02)
	if p.MainFunctionCode() == common.MainFunctionHeartbeat {
		fid = 0x01
	}

	out := make([]byte, 0, headerSize+len(body))
	var hdr [6]byte
	binary.BigEndian.PutUint16(hdr[0:2], 0x5959)
	binary.BigEndian.PutUint16(hdr[2:4], 0x0001)
	binary.BigEndian.PutUint16(hdr[4:6], uint16(len(body)+2))
	out = append(out, hdr[:]...)
	out = append(out, 0x01, fid)
	out = append(out, body...)
	return out, nil
}
