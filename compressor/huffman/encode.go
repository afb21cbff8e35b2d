package huffman

import "github.com/cespare/xxhash/v2"

// Encode compresses content into a Container. It never fails: an empty
// input gives a container with an empty descriptor and payload, and an
// input made of one repeated byte is coded with one bit per byte.
func Encode(content []byte) *Container {
	c := &Container{
		Length:   uint64(len(content)),
		Checksum: xxhash.Sum64(content),
	}
	if len(content) == 0 {
		return c
	}
	symbolFreq := Analyze(content)
	tree := BuildTree(symbolFreq)
	symbolEnc := NewCodeBook(tree)

	output := NewBitPacker()
	for _, symbol := range content {
		code, _ := symbolEnc.Code(symbol)
		output.WriteCode(code)
	}
	c.Descriptor = MarshalTree(tree)
	c.Payload, c.Padding = output.Pack()
	return c
}

func Compress(content []byte) []byte {
	return Encode(content).Bytes()
}
