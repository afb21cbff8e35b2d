package huffman

// CodeBook maps each symbol of a tree to its path from the root
// (0 = left, 1 = right).
type CodeBook struct {
	codes   [256]Code
	present [256]bool
}

// NewCodeBook derives the code book of root. A nil root gives an empty code
// book; a lone leaf is assigned the code "0".
func NewCodeBook(root Node) *CodeBook {
	cb := new(CodeBook)
	if leaf, ok := root.(*Leaf); ok {
		cb.set(leaf.Symbol, Code{Len: 1})
		return cb
	}
	cb.getSymbolEncoding(root, Code{})
	return cb
}

func (cb *CodeBook) getSymbolEncoding(tree Node, currentPrefix Code) {
	switch i := tree.(type) {
	case *Leaf:
		cb.set(i.Symbol, currentPrefix)
	case *Internal:
		cb.getSymbolEncoding(i.Left, currentPrefix.left())
		cb.getSymbolEncoding(i.Right, currentPrefix.right())
	}
}

func (cb *CodeBook) set(symbol byte, code Code) {
	cb.codes[symbol] = code
	cb.present[symbol] = true
}

func (cb *CodeBook) Code(symbol byte) (Code, bool) {
	return cb.codes[symbol], cb.present[symbol]
}

func (cb *CodeBook) Symbols() []byte {
	var symbols []byte
	for i, ok := range cb.present {
		if ok {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

// EncodedBits returns the number of payload bits needed to encode a buffer
// with the counts of ft.
func (cb *CodeBook) EncodedBits(ft *FrequencyTable) uint64 {
	var total uint64
	for _, symbol := range ft.Symbols() {
		total += ft.Count(symbol) * uint64(cb.codes[symbol].Len)
	}
	return total
}
