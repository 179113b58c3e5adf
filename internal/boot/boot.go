// Package boot provides the boot ROM overlay for the Game Boy. It is not
// required for cartridge execution, but lets a caller reproduce the
// power-on Nintendo logo sequence before cartridge code takes over.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the length in bytes of a DMG-family boot ROM image.
const Size = 256

// ROM represents a boot ROM overlay. When the Game Boy first powers on,
// the boot ROM is mapped to memory addresses 0x0000-0x00FF.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing 1 to the BDIS register), and the cartridge's own bytes are
// exposed at 0x0000-0x00FF instead, preventing the boot ROM from being
// executed again.
type ROM struct {
	raw      [Size]byte
	checksum string
}

// Load loads a boot ROM image into a new ROM. The image must be exactly
// Size (256) bytes.
func Load(b []byte) *ROM {
	if len(b) != Size {
		panic(fmt.Sprintf("boot: invalid boot rom length: %d", len(b)))
	}
	r := &ROM{}
	copy(r.raw[:], b)
	sum := md5.Sum(r.raw[:])
	r.checksum = hex.EncodeToString(sum[:])
	return r
}

// Read returns the byte at the given address, 0x00-0xFF.
func (r *ROM) Read(addr uint16) byte {
	return r.raw[addr]
}

// Checksum returns the MD5 checksum of the boot ROM image.
func (r *ROM) Checksum() string {
	if r == nil {
		return ""
	}
	return r.checksum
}

// Model identifies the boot ROM variant by its checksum, for diagnostics.
func (r *ROM) Model() string {
	if r == nil {
		return "none"
	}
	if model, ok := knownChecksums[r.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	ChecksumDMG0: "Game Boy (DMG-0)",
	ChecksumDMG:  "Game Boy (DMG-01)",
	ChecksumMGB:  "Game Boy Pocket",
}

const (
	// ChecksumDMG0 is the MD5 of the early DMG boot ROM variant, found
	// only in very early, Japan-only DMG units.
	ChecksumDMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// ChecksumDMG is the MD5 of the boot ROM found in the most common
	// DMG-01 models.
	ChecksumDMG = "32fbbd84168d3482956eb3c5051637f5"
	// ChecksumMGB is the MD5 of the Game Boy Pocket boot ROM, which
	// differs from ChecksumDMG by a single byte (A is loaded with 0xFF
	// rather than 0x01, letting cartridge code detect MGB hardware).
	ChecksumMGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
)
