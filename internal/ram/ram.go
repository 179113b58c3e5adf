// Package ram provides flat blocks of addressable memory, used for the
// Game Boy's work RAM and high RAM.
package ram

import "fmt"

// RAM represents an addressable, zero-offset block of memory.
type RAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Block is a RAM backed by a plain byte slice rather than a sparse map —
// work RAM and high RAM are small, fully-populated regions, so a flat array
// avoids per-access hashing and needs no help giving "unwritten address
// reads 0" the way a map gives for free.
type Block struct {
	data []byte
}

// NewBlock returns a new Block of the given size, zero-initialized.
func NewBlock(size int) *Block {
	return &Block{data: make([]byte, size)}
}

// Read returns the value at the given address.
func (b *Block) Read(address uint16) uint8 {
	if int(address) >= len(b.data) {
		panic(fmt.Sprintf("ram: address out of bounds: %04X (size %d)", address, len(b.data)))
	}
	return b.data[address]
}

// Write writes the value to the given address.
func (b *Block) Write(address uint16, value uint8) {
	if int(address) >= len(b.data) {
		panic(fmt.Sprintf("ram: address out of bounds: %04X (size %d)", address, len(b.data)))
	}
	b.data[address] = value
}

// Len returns the size of the block in bytes.
func (b *Block) Len() int {
	return len(b.data)
}
