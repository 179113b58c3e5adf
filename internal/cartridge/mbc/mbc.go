// Package mbc provides the memory bank controller implementations that sit
// between the Bus and raw cartridge ROM/RAM bytes.
package mbc

// Controller decides, for a given cartridge-relative CPU address, which ROM
// or RAM byte is actually addressed. Every implementation computes its
// effective bank on each call rather than caching it on a register write,
// so there is no back-reference to the owning Bus to keep in sync.
type Controller interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, value uint8)
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, value uint8)
}
