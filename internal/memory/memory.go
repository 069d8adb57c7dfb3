// Package memory implements the ZX Spectrum's banked address space: four
// 16KiB slots mapped onto up to eight 16KiB banks, contended according to
// the ULA's beam position, plus the 128K/+2/+3 paging ports.
package memory

import "sync"

// Model selects the hardware variant being emulated, which determines
// whether paging is writable, which banks are contended, and the frame
// length SamplesPerFrame is derived from.
type Model int

const (
	Model48K Model = iota
	Model128K
	ModelPlus2
	ModelPlus2A
	ModelPlus3
)

const (
	slotSize  = 0x4000
	slotCount = 4
)

// SamplesPerFrame returns the model's T-states per frame divided by 16:
// 4368 for the 48K and 4431 for the other models, whose frame is slightly
// longer. It does not depend on any host sample rate.
func (m Model) SamplesPerFrame() int {
	switch m {
	case Model48K:
		return 69888 * 1 / 16 // 48K frame of 69888 T-states
	default:
		return 70908 * 1 / 16
	}
}

// bankCount is 8 for every model: the 48K machine only ever pages banks
// 0, 2, and 5 into its slots, but bank numbering (screen at 5, paging
// port values up to 7) is shared hardware convention across all models,
// so the bank store must be sized for the full range regardless of how
// many of those banks a given model actually uses.
func (m Model) bankCount() int {
	return 8
}

// Controller owns the bank store and the four-slot paging arrangement. It
// implements z80.Bus's memory half once wrapped by the machine package's
// bus adapter; the ULA keeps its own copy of screen memory, which that
// adapter updates alongside the Controller on CPU writes.
type Controller struct {
	mu    sync.RWMutex
	model Model
	banks [][]byte
	slots [slotCount]int // bank index currently paged into each 16K slot
	rom   [][]byte

	romPage    int
	pagingLock bool // +3/+2A/128K: set once paging is disabled until reset
	screenBank int  // which bank the ULA reads for the display (5 normally, 7 when paged)
}

// New builds a Controller for model, with roms supplying one or more 16KiB
// ROM images (index 0 is the 48K/128K editor ROM, index 1 the 128K syntax
// checker ROM where applicable).
func New(model Model, roms [][]byte) *Controller {
	c := &Controller{
		model: model,
		banks: make([][]byte, model.bankCount()),
		rom:   roms,
	}
	for i := range c.banks {
		c.banks[i] = make([]byte, slotSize)
	}
	c.screenBank = 5
	c.Reset()
	return c
}

// Reset restores the power-on paging arrangement: ROM 0 in slot 0, banks
// 5/2/0 in slots 1-3 (the 48K layout, also valid as 128K's default).
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.romPage = 0
	c.pagingLock = false
	c.screenBank = 5
	c.slots = [slotCount]int{0, 5, 2, 0}
}

func (c *Controller) slotFor(addr uint16) (slot int, offset uint16) {
	slot = int(addr / slotSize)
	offset = addr % slotSize
	return
}

// ReadByte reads addr through the current slot mapping. Slot 0 reads ROM;
// slots 1-3 read their paged RAM bank.
func (c *Controller) ReadByte(addr uint16) byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	slot, offset := c.slotFor(addr)
	if slot == 0 {
		if c.romPage < len(c.rom) {
			return c.rom[c.romPage][offset]
		}
		return 0xFF
	}
	bank := c.slots[slot]
	return c.banks[bank][offset]
}

// WriteByte writes addr if it falls in a RAM-backed slot. Writes to ROM
// (slot 0) are silently dropped, matching real hardware.
func (c *Controller) WriteByte(addr uint16, value byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, offset := c.slotFor(addr)
	if slot == 0 {
		return
	}
	bank := c.slots[slot]
	c.banks[bank][offset] = value
}

func (c *Controller) ReadWord(addr uint16) uint16 {
	low := c.ReadByte(addr)
	high := c.ReadByte(addr + 1)
	return uint16(high)<<8 | uint16(low)
}

// ScreenBytes returns a copy of the whole 16KiB bank currently selected as
// the screen (bitmap + attributes in its first 6912 bytes): bank 5, or
// bank 7 on 128K machines when bit 3 of 0x7FFD selects the shadow screen.
func (c *Controller) ScreenBytes() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bank := c.banks[c.screenBank]
	out := make([]byte, len(bank))
	copy(out, bank)
	return out
}

// PortOut handles writes to the 128K/+2/+3 paging ports. Port 0x7FFD (bit
// pattern A15=0,A1=0) selects the RAM bank in slot 3, the ROM page, the
// screen bank, and can permanently lock further paging until reset.
func (c *Controller) PortOut(port uint16, value byte) {
	if c.model == Model48K {
		return
	}
	if port&0x8002 != 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pagingLock {
		return
	}
	c.slots[3] = int(value & 0x07)
	if value&0x08 != 0 {
		c.screenBank = 7
	} else {
		c.screenBank = 5
	}
	if value&0x10 != 0 {
		c.romPage = 1
	} else {
		c.romPage = 0
	}
	if value&0x20 != 0 {
		c.pagingLock = true
	}
}

// PortIn returns the open-bus default (0xFF) for reads of the paging port,
// which the 128K hardware does not support reading back.
func (c *Controller) PortIn(port uint16) (value byte, handled bool) {
	return 0xFF, false
}

// contentionTable is the classic 48K ULA delay pattern for the eight
// T-states of each 8-pixel column while the beam is inside the contended
// display or attribute fetch window: 6,5,4,3,2,1,0,0.
var contentionTable = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

// ContentionDelay returns the extra T-states a memory access to addr pays
// if it falls in a contended bank (bank 5 on the 48K; any odd bank on the
// other models) during cycleInFrame, the ULA's current position counted in
// T-states since the start of the display frame. Addresses outside the
// contended window, or in uncontended banks, pay nothing.
func (c *Controller) ContentionDelay(addr uint16, cycleInFrame int) int {
	c.mu.RLock()
	slot, _ := c.slotFor(addr)
	contended := slot != 0 && c.isContendedBank(c.slots[slot])
	c.mu.RUnlock()
	if !contended {
		return 0
	}
	return contentionDelayAt(cycleInFrame)
}

func (c *Controller) isContendedBank(bank int) bool {
	switch c.model {
	case Model48K:
		return bank == 5
	default:
		return bank%2 == 1 // odd banks (1,3,5,7) are contended on 128K+
	}
}

const (
	firstContendedTState = 14335
	lastContendedTState  = 57247
	tStatesPerLine       = 224
)

func contentionDelayAt(cycleInFrame int) int {
	if cycleInFrame < firstContendedTState || cycleInFrame > lastContendedTState {
		return 0
	}
	offset := (cycleInFrame - firstContendedTState) % tStatesPerLine
	if offset >= 128 {
		return 0
	}
	return contentionTable[offset%8]
}
