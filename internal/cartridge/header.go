package cartridge

import "fmt"

// Type identifies the cartridge hardware declared at ROM offset 0x0147.
type Type uint8

const (
	TypeROM         Type = 0x00
	TypeMBC1        Type = 0x01
	TypeMBC1RAM     Type = 0x02
	TypeMBC1RAMBATT Type = 0x03
)

// Supported reports whether this implementation has an MBC for the type.
func (t Type) Supported() bool {
	switch t {
	case TypeROM, TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBATT:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypeROM:
		return "ROM"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	}
	return fmt.Sprintf("unknown(%02X)", uint8(t))
}

// ramSizeCodes maps the 0x0149 RAM-size header byte to its size in bytes.
var ramSizeCodes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header holds the parsed cartridge header, ROM offsets 0x0100-0x014F.
type Header struct {
	Title         string
	CartridgeType Type
	ROMSize       int
	RAMSize       int
	LogoValid     bool
}

// nintendoLogo is the 48-byte Nintendo logo bitmap at ROM offset
// 0x0104-0x0133; the boot ROM refuses to continue past its animation
// unless the cartridge's copy matches exactly.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ParseHeader parses the header out of a full ROM image. rom must be at
// least 0x150 bytes.
func ParseHeader(rom []byte) Header {
	if len(rom) < 0x150 {
		panic(fmt.Sprintf("cartridge: rom too small to contain a header: %d bytes", len(rom)))
	}

	h := Header{
		Title:         decodeTitle(rom[0x134:0x144]),
		CartridgeType: Type(rom[0x147]),
		ROMSize:       (32 * 1024) << rom[0x148],
		RAMSize:       ramSizeCodes[rom[0x149]],
		LogoValid:     true,
	}
	for i, want := range nintendoLogo {
		if rom[0x104+i] != want {
			h.LogoValid = false
			break
		}
	}
	return h
}

// decodeTitle trims trailing NUL padding. Manufacturer-code or CGB-flag
// bytes at the end of the field are not stripped and stay in the title.
func decodeTitle(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0x00 {
		end--
	}
	return string(b[:end])
}
