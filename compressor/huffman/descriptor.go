package huffman

import "io"

const (
	maxLeaves    = 256
	maxInternals = maxLeaves - 1
)

// MarshalTree serializes the shape of root in pre-order: a 1 bit followed by
// the 8 symbol bits for a leaf, a 0 bit followed by the left and the right
// subtree for an internal node. The bits are packed MSB first and zero
// padded. A nil root serializes to an empty descriptor.
func MarshalTree(root Node) []byte {
	if root == nil {
		return nil
	}
	p := NewBitPacker()
	serializeHuffmanTree(p, root)
	packed, _ := p.Pack()
	return packed
}

func serializeHuffmanTree(p *BitPacker, node Node) {
	switch n := node.(type) {
	case *Leaf:
		p.WriteBool(true)
		p.WriteBits(uint64(n.Symbol), 8)
	case *Internal:
		p.WriteBool(false)
		serializeHuffmanTree(p, n.Left)
		serializeHuffmanTree(p, n.Right)
	}
}

// UnmarshalTree rebuilds a tree from a descriptor written by MarshalTree.
// The rebuilt nodes carry no weights. An empty descriptor yields a nil tree.
func UnmarshalTree(desc []byte) (Node, error) {
	if len(desc) == 0 {
		return nil, nil
	}
	r, err := NewBitUnpacker(desc, 0)
	if err != nil {
		return nil, formatError(err, "tree descriptor")
	}
	d := &treeDecoder{r: r}
	root, err := d.deserializeHuffmanTree()
	if err != nil {
		return nil, err
	}
	// Whatever follows the tree is padding: less than a byte of zeros.
	left := r.Remaining()
	if left >= 8 {
		return nil, formatError(nil, "%d trailing bits after tree descriptor", left)
	}
	if pad, _ := r.ReadBits(uint8(left)); pad != 0 {
		return nil, formatError(nil, "non-zero padding in tree descriptor")
	}
	return root, nil
}

type treeDecoder struct {
	r         *BitUnpacker
	seen      [256]bool
	leaves    int
	internals int
}

func (d *treeDecoder) deserializeHuffmanTree() (Node, error) {
	isLeaf, err := d.r.ReadBool()
	if err != nil {
		return nil, formatError(io.ErrUnexpectedEOF, "tree descriptor truncated")
	}
	if isLeaf {
		value, err := d.r.ReadBits(8)
		if err != nil {
			return nil, formatError(io.ErrUnexpectedEOF, "tree descriptor truncated in leaf symbol")
		}
		symbol := byte(value)
		if d.seen[symbol] {
			return nil, formatError(nil, "symbol %#02x appears in more than one leaf", symbol)
		}
		d.seen[symbol] = true
		d.leaves++
		return &Leaf{Symbol: symbol, id: d.leaves - 1}, nil
	}
	d.internals++
	if d.internals > maxInternals {
		return nil, formatError(nil, "tree descriptor has more than %d internal nodes", maxInternals)
	}
	left, err := d.deserializeHuffmanTree()
	if err != nil {
		return nil, err
	}
	right, err := d.deserializeHuffmanTree()
	if err != nil {
		return nil, err
	}
	return &Internal{Left: left, Right: right, id: maxLeaves + d.internals}, nil
}
