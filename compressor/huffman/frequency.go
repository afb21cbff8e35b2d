package huffman

// FrequencyTable counts how often each byte value occurs. Only symbols with
// a non-zero count are considered present.
type FrequencyTable struct {
	counts [256]uint64
}

// Analyze counts the bytes of data. An empty input yields an empty table.
func Analyze(data []byte) *FrequencyTable {
	ft := new(FrequencyTable)
	for _, b := range data {
		ft.counts[b]++
	}
	return ft
}

func (ft *FrequencyTable) Add(symbol byte, n uint64) {
	ft.counts[symbol] += n
}

// Merge adds the counts of o into ft. Partial tables computed over disjoint
// chunks of an input merge into the table of the whole input.
func (ft *FrequencyTable) Merge(o *FrequencyTable) {
	for i, c := range o.counts {
		ft.counts[i] += c
	}
}

func (ft *FrequencyTable) Count(symbol byte) uint64 {
	return ft.counts[symbol]
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	var symbols []byte
	for i, c := range ft.counts {
		if c > 0 {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

func (ft *FrequencyTable) Len() int {
	n := 0
	for _, c := range ft.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, c := range ft.counts {
		total += c
	}
	return total
}
