package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, input []byte) *Container {
	t.Helper()
	c := Encode(input)
	parsed, err := ParseContainer(c.Bytes())
	require.NoError(t, err)
	require.Equal(t, c.Length, parsed.Length)

	output, err := Decode(parsed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(input, output), "round trip changed %d byte input", len(input))
	return c
}

func TestRoundTripEmpty(t *testing.T) {
	c := roundTrip(t, []byte{})
	require.Empty(t, c.Descriptor)
	require.Empty(t, c.Payload)
	require.Zero(t, c.Padding)

	out, err := Decompress(Compress(nil))
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestRoundTripSingleSymbol(t *testing.T) {
	c := roundTrip(t, []byte("AAAA"))
	require.Equal(t, []byte{0xa0, 0x80}, c.Descriptor)
	require.Equal(t, []byte{0x00}, c.Payload)
	require.Equal(t, uint8(4), c.Padding)
	require.Equal(t, uint64(4), c.PayloadBits())

	roundTrip(t, []byte{0x00})
	roundTrip(t, bytes.Repeat([]byte{0xff}, 8))
}

func TestRoundTripTwoSymbols(t *testing.T) {
	c := roundTrip(t, []byte("ABABAB"))
	require.Equal(t, []byte{0x50, 0x68, 0x40}, c.Descriptor)
	require.Equal(t, []byte{0x54}, c.Payload)
	require.Equal(t, uint8(2), c.Padding)
}

func TestRoundTripByteDomain(t *testing.T) {
	roundTrip(t, []byte{0x00, 0xff, 0x41, 0x00, 0xff, 0xff, 0x0a, 0x80})
}

func TestRoundTripAllByteValues(t *testing.T) {
	var input []byte
	for i := 0; i < 256; i++ {
		input = append(input, bytes.Repeat([]byte{byte(i)}, 1+i%7)...)
	}
	c := roundTrip(t, input)
	tree, err := UnmarshalTree(c.Descriptor)
	require.NoError(t, err)
	require.Len(t, NewCodeBook(tree).Symbols(), 256)

	// Uniform counts over all 256 values give 8-bit codes.
	uniform := make([]byte, 256)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	c = roundTrip(t, uniform)
	require.Equal(t, uint64(256*8), c.PayloadBits())
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		input := make([]byte, rng.Intn(4096))
		alphabet := 1 + rng.Intn(256)
		for j := range input {
			input[j] = byte(rng.Intn(alphabet))
		}
		roundTrip(t, input)
	}
}

func TestCompressesSkewedInput(t *testing.T) {
	input := append(bytes.Repeat([]byte("a"), 4000), []byte("bcdefgh")...)
	c := roundTrip(t, input)
	require.Less(t, c.Size(), len(input)/4)
	require.Less(t, c.Ratio(), 0.25)
}

func TestEncodeIsDeterministic(t *testing.T) {
	input := []byte("abracadabra, abracadabra")
	require.Equal(t, Compress(input), Compress(input))
}

func TestDecompressTruncated(t *testing.T) {
	data := Compress([]byte("the quick brown fox jumps over the lazy dog"))
	for n := 0; n < len(data); n++ {
		_, err := Decompress(data[:n])
		require.ErrorIs(t, err, ErrFormat, "prefix of %d bytes", n)
	}
}

func TestDecompressTruncatedMidCode(t *testing.T) {
	c := Encode([]byte("abcdefgh"))
	// Eight equally likely symbols take three bits each; dropping one bit
	// leaves the last code unfinished.
	c.Padding++
	_, err := Decode(c)
	require.ErrorIs(t, err, ErrFormat)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe.Error(), "ends inside a code")
}

func TestDecompressCorruptedBytes(t *testing.T) {
	data := Compress([]byte("mississippi river banks"))
	for i := range data {
		corrupt := append([]byte(nil), data...)
		corrupt[i] ^= 0xff
		_, err := Decompress(corrupt)
		require.ErrorIs(t, err, ErrFormat, "byte %d flipped", i)
	}
}

func TestParseContainerErrors(t *testing.T) {
	good := Compress([]byte("hello"))

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "ZIP!")
	_, err := ParseContainer(badMagic)
	require.ErrorIs(t, err, ErrFormat)

	badVersion := append([]byte(nil), good...)
	badVersion[4] = 9
	_, err = ParseContainer(badVersion)
	require.ErrorIs(t, err, ErrFormat)

	_, err = ParseContainer(nil)
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecodeEmptyTreeWithPayload(t *testing.T) {
	c := Encode(nil)
	c.Payload = []byte{0x12}
	_, err := Decode(c)
	require.ErrorIs(t, err, ErrFormat)

	c = Encode(nil)
	c.Length = 3
	_, err = Decode(c)
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecompressEmptyRejectsPadding(t *testing.T) {
	for padding := byte(1); padding <= 7; padding++ {
		data := Compress(nil)
		data[len(data)-1] = padding
		_, err := Decompress(data)
		require.ErrorIs(t, err, ErrFormat, "padding %d", padding)
		require.ErrorIs(t, err, ErrPadding)
	}
}

func TestDecodeSingleSymbolRejectsOneBits(t *testing.T) {
	c := Encode([]byte("AAAA"))
	c.Payload = []byte{0x10}
	_, err := Decode(c)
	require.ErrorIs(t, err, ErrFormat)
}

func TestUnmarshalTreeInvalid(t *testing.T) {
	for name, desc := range map[string][]byte{
		"truncated":        {0x00},
		"truncated leaf":   {0xa0},
		"duplicate symbol": {0x50, 0x68, 0x20},
		"non-zero padding": {0xa0, 0xc0},
		"trailing bytes":   {0xa0, 0x80, 0x00},
		"too many nodes":   make([]byte, 40),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalTree(desc)
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestMarshalTreeRoundTrip(t *testing.T) {
	ft := tableOf(map[byte]uint64{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45, 0: 1, 0xff: 2})
	tree := BuildTree(ft)
	desc := MarshalTree(tree)
	rebuilt, err := UnmarshalTree(desc)
	require.NoError(t, err)
	require.Equal(t, codeStrings(NewCodeBook(tree)), codeStrings(NewCodeBook(rebuilt)))
	require.Equal(t, desc, MarshalTree(rebuilt))
}

func BenchmarkCompress(b *testing.B) {
	input := bytes.Repeat([]byte("lorem ipsum dolor sit amet, consectetur adipiscing elit. "), 1024)
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		Compress(input)
	}
}

func BenchmarkDecompress(b *testing.B) {
	input := bytes.Repeat([]byte("lorem ipsum dolor sit amet, consectetur adipiscing elit. "), 1024)
	data := Compress(input)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decompress(data); err != nil {
			b.Fatal(err)
		}
	}
}
