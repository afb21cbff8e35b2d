package huffman

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Decode reconstructs the original bytes of c. Every failure matches
// ErrFormat.
func Decode(c *Container) ([]byte, error) {
	tree, err := UnmarshalTree(c.Descriptor)
	if err != nil {
		return nil, err
	}
	return DecodeWithTree(c, tree)
}

// DecodeWithTree decodes c with a tree previously rebuilt from
// c.Descriptor, letting callers reuse trees across containers that share a
// descriptor.
func DecodeWithTree(c *Container, tree Node) ([]byte, error) {
	if tree == nil {
		if c.Length != 0 || len(c.Payload) != 0 {
			return nil, formatError(nil, "no tree for %d byte payload", len(c.Payload))
		}
		if c.Padding != 0 {
			return nil, formatError(ErrPadding, "padding %d on empty payload", c.Padding)
		}
		if c.Checksum != xxhash.Sum64(nil) {
			return nil, formatError(nil, "checksum mismatch for empty input")
		}
		return []byte{}, nil
	}
	r, err := NewBitUnpacker(c.Payload, c.Padding)
	if err != nil {
		return nil, formatError(err, "payload")
	}
	// The length field is untrusted; every symbol costs at least one bit.
	out := make([]byte, 0, min(c.Length, r.Remaining()))
	if leaf, ok := tree.(*Leaf); ok {
		out, err = decodeSingle(r, leaf.Symbol, out)
	} else {
		out, err = decodeTree(r, tree, out)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != c.Length {
		return nil, formatError(nil, "decoded %d bytes, header says %d", len(out), c.Length)
	}
	if sum := xxhash.Sum64(out); sum != c.Checksum {
		return nil, formatError(nil, "checksum mismatch: got %016x, want %016x", sum, c.Checksum)
	}
	return out, nil
}

func decodeSingle(r *BitUnpacker, symbol byte, out []byte) ([]byte, error) {
	for {
		bit, err := r.ReadBool()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, formatError(err, "payload")
		}
		if bit {
			return nil, formatError(nil, "bit 1 in single-symbol stream at output offset %d", len(out))
		}
		out = append(out, symbol)
	}
}

func decodeTree(r *BitUnpacker, root Node, out []byte) ([]byte, error) {
	node := root
	for {
		bit, err := r.ReadBool()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, formatError(err, "payload")
		}
		internal := node.(*Internal)
		if bit {
			node = internal.Right
		} else {
			node = internal.Left
		}
		if leaf, ok := node.(*Leaf); ok {
			out = append(out, leaf.Symbol)
			node = root
		}
	}
	if node != root {
		return nil, formatError(io.ErrUnexpectedEOF, "bit stream ends inside a code after %d bytes", len(out))
	}
	return out, nil
}

// Decompress parses and decodes a serialized container.
func Decompress(data []byte) ([]byte, error) {
	c, err := ParseContainer(data)
	if err != nil {
		return nil, err
	}
	return Decode(c)
}
