package huffman

import "encoding/binary"

const (
	containerMagic   = "HUFC"
	containerVersion = uint8(1)
	headerSize       = len(containerMagic) + 1 + 8 + 8 + 2
)

// Container is the self-describing compressed form of one buffer.
//
// Wire format (version 1, little-endian integers):
//
//	magic      [4]byte = "HUFC"
//	version    uint8
//	length     uint64   original byte count
//	checksum   uint64   xxhash64 of the original bytes
//	descLen    uint16
//	descriptor descLen bytes, see MarshalTree
//	padding    uint8    zero bits at the end of the payload (0-7)
//	payload    remaining bytes, codes packed MSB first
type Container struct {
	Length     uint64
	Checksum   uint64
	Descriptor []byte
	Padding    uint8
	Payload    []byte
}

func (c *Container) Bytes() []byte {
	out := make([]byte, 0, c.Size())
	out = append(out, containerMagic...)
	out = append(out, containerVersion)
	out = binary.LittleEndian.AppendUint64(out, c.Length)
	out = binary.LittleEndian.AppendUint64(out, c.Checksum)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(c.Descriptor)))
	out = append(out, c.Descriptor...)
	out = append(out, c.Padding)
	out = append(out, c.Payload...)
	return out
}

// ParseContainer splits data into its container sections. It checks the
// framing only; the descriptor and payload are validated by Decode.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, formatError(nil, "%d bytes is shorter than the %d byte header", len(data), headerSize)
	}
	if string(data[:len(containerMagic)]) != containerMagic {
		return nil, formatError(nil, "bad magic %q", data[:len(containerMagic)])
	}
	pos := len(containerMagic)
	if v := data[pos]; v != containerVersion {
		return nil, formatError(nil, "unsupported version %d", v)
	}
	pos++
	c := new(Container)
	c.Length = binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	c.Checksum = binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	descLen := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2
	if len(data)-pos < descLen+1 {
		return nil, formatError(nil, "truncated before end of %d byte descriptor", descLen)
	}
	c.Descriptor = data[pos : pos+descLen]
	pos += descLen
	c.Padding = data[pos]
	pos++
	if c.Padding > 7 {
		return nil, formatError(nil, "padding count %d out of range", c.Padding)
	}
	c.Payload = data[pos:]
	return c, nil
}

func (c *Container) PayloadBits() uint64 {
	if len(c.Payload) == 0 {
		return 0
	}
	return uint64(len(c.Payload))*8 - uint64(c.Padding)
}

func (c *Container) Size() int {
	return headerSize + len(c.Descriptor) + 1 + len(c.Payload)
}

// Ratio returns the container size relative to the original size, or 0 for
// an empty original.
func (c *Container) Ratio() float64 {
	if c.Length == 0 {
		return 0
	}
	return float64(c.Size()) / float64(c.Length)
}
