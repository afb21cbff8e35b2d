package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// ErrPadding is returned when a padding count cannot describe its payload.
var ErrPadding = errors.New("huffman: invalid padding")

// Code is a root-to-leaf path: the low Len bits of Value, first step in the
// highest of them. Len is at most 64.
type Code struct {
	Value uint64
	Len   uint8
}

func (c Code) left() Code {
	return Code{Value: c.Value << 1, Len: c.Len + 1}
}

func (c Code) right() Code {
	return Code{Value: c.Value<<1 | 1, Len: c.Len + 1}
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Value>>(c.Len-p.Len) == p.Value
}

func (c Code) String() string {
	var sb strings.Builder
	for i := int(c.Len) - 1; i >= 0; i-- {
		sb.WriteByte('0' + byte(c.Value>>uint(i)&1))
	}
	return sb.String()
}

// BitPacker packs bits MSB first into a byte buffer.
type BitPacker struct {
	buf  bytes.Buffer
	w    *bitio.Writer
	bits uint64
}

func NewBitPacker() *BitPacker {
	p := new(BitPacker)
	p.w = bitio.NewWriter(&p.buf)
	return p
}

// Writes go to a bytes.Buffer, which never fails, so the Try* errors are
// never set.

func (p *BitPacker) WriteBool(bit bool) {
	p.w.TryWriteBool(bit)
	p.bits++
}

func (p *BitPacker) WriteBits(value uint64, n uint8) {
	p.w.TryWriteBits(value, n)
	p.bits += uint64(n)
}

func (p *BitPacker) WriteCode(c Code) {
	p.WriteBits(c.Value, c.Len)
}

func (p *BitPacker) Bits() uint64 {
	return p.bits
}

// Pack zero-fills the last byte and returns the packed bytes together with
// the number of padding bits (0 to 7). The packer must not be used after.
func (p *BitPacker) Pack() (packed []byte, padding uint8) {
	padding = p.w.TryAlign()
	p.w.Close()
	return p.buf.Bytes(), padding
}

// BitUnpacker reads back the bits of a packed buffer, leaving out the
// trailing padding bits.
type BitUnpacker struct {
	r         *bitio.Reader
	remaining uint64
}

func NewBitUnpacker(packed []byte, padding uint8) (*BitUnpacker, error) {
	if padding > 7 || (len(packed) == 0 && padding != 0) {
		return nil, ErrPadding
	}
	return &BitUnpacker{
		r:         bitio.NewReader(bytes.NewReader(packed)),
		remaining: uint64(len(packed))*8 - uint64(padding),
	}, nil
}

// ReadBool returns the next bit, or io.EOF once every bit was consumed.
func (u *BitUnpacker) ReadBool() (bool, error) {
	if u.remaining == 0 {
		return false, io.EOF
	}
	bit, err := u.r.ReadBool()
	if err != nil {
		return false, io.ErrUnexpectedEOF
	}
	u.remaining--
	return bit, nil
}

// ReadBits reads n bits (at most 64), first bit highest. Running out part
// way returns io.ErrUnexpectedEOF.
func (u *BitUnpacker) ReadBits(n uint8) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if u.remaining == 0 {
		return 0, io.EOF
	}
	if uint64(n) > u.remaining {
		u.remaining = 0
		return 0, io.ErrUnexpectedEOF
	}
	value, err := u.r.ReadBits(n)
	if err != nil {
		return 0, io.ErrUnexpectedEOF
	}
	u.remaining -= uint64(n)
	return value, nil
}

func (u *BitUnpacker) Remaining() uint64 {
	return u.remaining
}
