// Package snapshot loads and saves the .sna and .z80 ZX Spectrum machine
// state formats. Both are parsed with encoding/binary against a fixed
// byte-offset layout, matching the flat-header style used for the rest
// of this module's media parsers.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zxemu/core/internal/machine"
)

var (
	ErrUnsupportedFormat = errors.New("snapshot: unsupported file format")
	ErrTruncatedImage    = errors.New("snapshot: truncated snapshot data")
	ErrBadRomSize        = errors.New("snapshot: ROM image is not 16KiB")
)

const (
	snaHeaderSize = 27
	sna48KSize    = snaHeaderSize + 48*1024
)

// LoadSNA parses the classic 48K .sna format: a 27-byte register header
// followed by a flat 48KiB RAM image (pages 5, 2, 0 in that order,
// starting at 0x4000).
func LoadSNA(m *machine.Machine, data []byte) error {
	if len(data) < sna48KSize {
		return fmt.Errorf("%w: got %d bytes, want at least %d", ErrTruncatedImage, len(data), sna48KSize)
	}

	cpu := m.CPU
	cpu.I = data[0]
	cpu.SetHL2(binary.LittleEndian.Uint16(data[1:3]))
	cpu.SetDE2(binary.LittleEndian.Uint16(data[3:5]))
	cpu.SetBC2(binary.LittleEndian.Uint16(data[5:7]))
	cpu.SetAF2(binary.LittleEndian.Uint16(data[7:9]))
	cpu.SetHL(binary.LittleEndian.Uint16(data[9:11]))
	cpu.SetDE(binary.LittleEndian.Uint16(data[11:13]))
	cpu.SetBC(binary.LittleEndian.Uint16(data[13:15]))
	cpu.IY = binary.LittleEndian.Uint16(data[15:17])
	cpu.IX = binary.LittleEndian.Uint16(data[17:19])
	iff2 := data[19]&0x04 != 0
	cpu.IFF1 = iff2
	cpu.IFF2 = iff2
	cpu.R = data[20]
	cpu.SetAF(binary.LittleEndian.Uint16(data[21:23]))
	cpu.SP = binary.LittleEndian.Uint16(data[23:25])
	cpu.IM = data[25] & 0x03
	m.ULA.WritePort(data[26] & 0x07)

	ram := data[snaHeaderSize:sna48KSize]
	for i, b := range ram {
		m.WriteByte(uint16(0x4000+i), b)
	}

	// The .sna format stores the machine mid-RETN: PC lives on the stack.
	sp := cpu.SP
	low := m.ReadByte(sp)
	high := m.ReadByte(sp + 1)
	cpu.PC = uint16(high)<<8 | uint16(low)
	cpu.SP = sp + 2
	return nil
}

// SaveSNA writes m's current state back out in 48K .sna form. PC is
// pushed onto a copy of the stack image so the file round-trips into
// the RETN-resume convention LoadSNA expects.
func SaveSNA(m *machine.Machine) ([]byte, error) {
	cpu := m.CPU
	out := make([]byte, sna48KSize)

	out[0] = cpu.I
	binary.LittleEndian.PutUint16(out[1:3], cpu.HL2())
	binary.LittleEndian.PutUint16(out[3:5], cpu.DE2())
	binary.LittleEndian.PutUint16(out[5:7], cpu.BC2())
	binary.LittleEndian.PutUint16(out[7:9], cpu.AF2())
	binary.LittleEndian.PutUint16(out[9:11], cpu.HL())
	binary.LittleEndian.PutUint16(out[11:13], cpu.DE())
	binary.LittleEndian.PutUint16(out[13:15], cpu.BC())
	binary.LittleEndian.PutUint16(out[15:17], cpu.IY)
	binary.LittleEndian.PutUint16(out[17:19], cpu.IX)
	if cpu.IFF2 {
		out[19] = 0x04
	}
	out[20] = cpu.R
	binary.LittleEndian.PutUint16(out[21:23], cpu.AF())

	sp := cpu.SP - 2
	binary.LittleEndian.PutUint16(out[23:25], sp)
	out[25] = cpu.IM

	for i := 0; i < 48*1024; i++ {
		out[snaHeaderSize+i] = m.ReadByte(uint16(0x4000 + i))
	}

	pcLow := byte(cpu.PC)
	pcHigh := byte(cpu.PC >> 8)
	offset := snaHeaderSize + int(sp-0x4000)
	if offset >= 0 && offset+1 < len(out) {
		out[offset] = pcLow
		out[offset+1] = pcHigh
	}
	return out, nil
}

// z80V1Header is the 30-byte header shared by every .z80 version; version
// 2/3 files extend it with a second, length-prefixed header.
type z80V1Header struct {
	a, f                   byte
	bc, hl                 uint16
	pc, sp                 uint16
	i, r                   byte
	flags1                 byte
	de                     uint16
	bc2, de2, hl2          uint16
	a2, f2                 byte
	iy, ix                 uint16
	iff1, iff2             byte
	flags2                 byte
}

// LoadZ80 parses the .z80 snapshot format (v1/v2/v3). Version is
// distinguished by PC: a v1 file encodes PC directly in the header,
// while v2/v3 files set it to zero and store PC in the extended header
// that follows, whose length field also tells us which version we have.
func LoadZ80(m *machine.Machine, data []byte) error {
	if len(data) < 30 {
		return fmt.Errorf("%w: got %d bytes, want at least 30", ErrTruncatedImage, len(data))
	}

	h := z80V1Header{
		a: data[0], f: data[1],
		bc: binary.LittleEndian.Uint16(data[2:4]),
		hl: binary.LittleEndian.Uint16(data[4:6]),
		pc: binary.LittleEndian.Uint16(data[6:8]),
		sp: binary.LittleEndian.Uint16(data[8:10]),
		i:  data[10], r: data[11],
		flags1: data[12],
		de:     binary.LittleEndian.Uint16(data[13:15]),
		bc2:    binary.LittleEndian.Uint16(data[15:17]),
		de2:    binary.LittleEndian.Uint16(data[17:19]),
		hl2:    binary.LittleEndian.Uint16(data[19:21]),
		a2:     data[21], f2: data[22],
		iy: binary.LittleEndian.Uint16(data[23:25]),
		ix: binary.LittleEndian.Uint16(data[25:27]),
		iff1: data[27], iff2: data[28],
		flags2: data[29],
	}

	cpu := m.CPU
	cpu.A, cpu.F = h.a, h.f
	cpu.SetBC(h.bc)
	cpu.SetHL(h.hl)
	cpu.SP = h.sp
	cpu.I, cpu.R = h.i, (h.flags1&0x01)<<7|(h.r&0x7F)
	cpu.SetDE(h.de)
	cpu.SetBC2(h.bc2)
	cpu.SetDE2(h.de2)
	cpu.SetHL2(h.hl2)
	cpu.A2, cpu.F2 = h.a2, h.f2
	cpu.IY, cpu.IX = h.iy, h.ix
	cpu.IFF1 = h.iff1 != 0
	cpu.IFF2 = h.iff2 != 0
	cpu.IM = h.flags2 & 0x03
	m.ULA.WritePort((h.flags1 >> 1) & 0x07)

	compressed := h.flags1&0x20 != 0

	if h.pc != 0 {
		cpu.PC = h.pc
		return loadZ80V1Body(m, data[30:], compressed)
	}

	if len(data) < 32 {
		return fmt.Errorf("%w: v2/v3 extended header missing", ErrTruncatedImage)
	}
	extLen := int(binary.LittleEndian.Uint16(data[30:32]))
	if len(data) < 32+extLen {
		return fmt.Errorf("%w: extended header truncated", ErrTruncatedImage)
	}
	ext := data[32 : 32+extLen]
	if len(ext) < 2 {
		return fmt.Errorf("%w: extended header too short", ErrUnsupportedFormat)
	}
	cpu.PC = binary.LittleEndian.Uint16(ext[0:2])

	return loadZ80V2Pages(m, data[32+extLen:])
}

// loadZ80V1Body decompresses (if needed) and writes a single flat 48KiB
// image, mirroring .sna's layout.
func loadZ80V1Body(m *machine.Machine, body []byte, compressed bool) error {
	plain := body
	if compressed {
		plain = decompressZ80(body)
	}
	limit := 48 * 1024
	if len(plain) < limit {
		limit = len(plain)
	}
	for i := 0; i < limit; i++ {
		m.WriteByte(uint16(0x4000+i), plain[i])
	}
	return nil
}

// z80PageBank maps a .z80 v2/v3 page number to a bank index for the 48K
// memory map (128K page numbers map through the bank-select port paging
// instead and are out of scope here).
var z80PageBank = map[byte]int{4: 2, 5: 0, 8: 5}

func loadZ80V2Pages(m *machine.Machine, data []byte) error {
	for len(data) >= 3 {
		length := int(binary.LittleEndian.Uint16(data[0:2]))
		page := data[2]
		data = data[3:]
		if length == 0xFFFF {
			length = 0x4000
		}
		if len(data) < length {
			return fmt.Errorf("%w: page %d truncated", ErrTruncatedImage, page)
		}
		chunk := data[:length]
		data = data[length:]

		plain := chunk
		if length != 0x4000 {
			plain = decompressZ80(chunk)
		}

		bankStart, ok := z80PageBank[page]
		if !ok {
			continue
		}
		base := 0x4000 + bankStart*0x4000 - 0x8000 // pages 8/4/5 are placed at 0x4000/0x8000/0xC000 just below
		if page == 8 {
			base = 0x4000
		} else if page == 4 {
			base = 0x8000
		} else if page == 5 {
			base = 0xC000
		}
		limit := len(plain)
		if limit > 0x4000 {
			limit = 0x4000
		}
		for i := 0; i < limit; i++ {
			m.WriteByte(uint16(base+i), plain[i])
		}
	}
	return nil
}

// decompressZ80 expands the .z80 RLE scheme: the byte sequence
// ED ED <count> <value> repeats value count times; everything else is
// copied literally.
func decompressZ80(in []byte) []byte {
	out := make([]byte, 0, len(in)*2)
	for i := 0; i < len(in); {
		if i+4 <= len(in) && in[i] == 0xED && in[i+1] == 0xED {
			count := int(in[i+2])
			value := in[i+3]
			for n := 0; n < count; n++ {
				out = append(out, value)
			}
			i += 4
			continue
		}
		out = append(out, in[i])
		i++
	}
	return out
}

// Detect inspects the first few bytes of data and reports which loader
// applies; snapshot files carry no common magic, so this relies on the
// .z80 format's header being exactly 30/32+ bytes of plausible register
// values versus .sna's fixed 49179-byte 48K size.
func Detect(data []byte) (format string, err error) {
	switch len(data) {
	case sna48KSize:
		return "sna", nil
	default:
		if len(data) >= 30 {
			return "z80", nil
		}
		return "", fmt.Errorf("%w: %d bytes is too short for either format", ErrUnsupportedFormat, len(data))
	}
}

// Load auto-detects and loads data into m.
func Load(m *machine.Machine, data []byte) error {
	format, err := Detect(data)
	if err != nil {
		return err
	}
	switch format {
	case "sna":
		return LoadSNA(m, data)
	case "z80":
		return LoadZ80(m, data)
	default:
		return ErrUnsupportedFormat
	}
}
