package huffman

import "container/heap"

// Node is a node of a Huffman tree: either a *Leaf or an *Internal.
type Node interface {
	Weight() uint64
	getId() int
}

type Leaf struct {
	Symbol byte
	freq   uint64
	id     int
}

// Internal always owns exactly two children.
type Internal struct {
	Left, Right Node
	freq        uint64
	id          int
}

func (leaf *Leaf) Weight() uint64 {
	return leaf.freq
}

func (leaf *Leaf) getId() int {
	return leaf.id
}

func (node *Internal) Weight() uint64 {
	return node.freq
}

func (node *Internal) getId() int {
	return node.id
}

type huffmanHeap []Node

func (hub *huffmanHeap) Push(item any) {
	*hub = append(*hub, item.(Node))
}

func (hub *huffmanHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub huffmanHeap) Len() int {
	return len(hub)
}

// Less orders by weight, then by id. Leaves take ids in ascending symbol
// order and internal nodes take the following ids in creation order, so the
// resulting tree depends only on the counts.
func (hub huffmanHeap) Less(i, j int) bool {
	if hub[i].Weight() != hub[j].Weight() {
		return hub[i].Weight() < hub[j].Weight()
	}
	return hub[i].getId() < hub[j].getId()
}

func (hub huffmanHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

// BuildTree builds the Huffman tree for ft. It returns nil for an empty
// table and a lone *Leaf when only one symbol is present; that symbol is
// given the one-bit code 0.
func BuildTree(ft *FrequencyTable) Node {
	var treehub huffmanHeap
	monoId := 0
	for _, symbol := range ft.Symbols() {
		treehub = append(treehub, &Leaf{
			Symbol: symbol,
			freq:   ft.Count(symbol),
			id:     monoId,
		})
		monoId++
	}
	if treehub.Len() == 0 {
		return nil
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(Node)
		y := heap.Pop(&treehub).(Node)
		heap.Push(&treehub, &Internal{
			Left:  x,
			Right: y,
			freq:  x.Weight() + y.Weight(),
			id:    monoId,
		})
		monoId++
	}
	return heap.Pop(&treehub).(Node)
}
