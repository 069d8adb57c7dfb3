package z80

func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opEDUnimplemented
	}

	inCOpcodes := map[byte]byte{0x40: 0, 0x48: 1, 0x50: 2, 0x58: 3, 0x60: 4, 0x68: 5, 0x78: 7}
	for opcode, reg := range inCOpcodes {
		op, dest := opcode, reg
		c.edOps[op] = func(cpu *CPU) { cpu.opINRegC(dest) }
	}
	c.edOps[0x70] = (*CPU).opINFlagsC

	outCOpcodes := map[byte]byte{0x41: 0, 0x49: 1, 0x51: 2, 0x59: 3, 0x61: 4, 0x69: 5, 0x79: 7}
	for opcode, reg := range outCOpcodes {
		op, src := opcode, reg
		c.edOps[op] = func(cpu *CPU) { cpu.opOUTCReg(src) }
	}
	c.edOps[0x71] = (*CPU).opOUTCZero

	sbcOpcodes := map[byte]byte{0x42: 0, 0x52: 1, 0x62: 2, 0x72: 3}
	for opcode, pair := range sbcOpcodes {
		op, p := opcode, pair
		c.edOps[op] = func(cpu *CPU) { cpu.opSBCHLReg(p) }
	}
	adcOpcodes := map[byte]byte{0x4A: 0, 0x5A: 1, 0x6A: 2, 0x7A: 3}
	for opcode, pair := range adcOpcodes {
		op, p := opcode, pair
		c.edOps[op] = func(cpu *CPU) { cpu.opADCHLReg(p) }
	}

	ldNNOpcodes := map[byte]byte{0x43: 0, 0x53: 1, 0x63: 2, 0x73: 3}
	for opcode, pair := range ldNNOpcodes {
		op, p := opcode, pair
		c.edOps[op] = func(cpu *CPU) { cpu.opLDNNReg(p) }
	}
	ldRegNNOpcodes := map[byte]byte{0x4B: 0, 0x5B: 1, 0x6B: 2, 0x7B: 3}
	for opcode, pair := range ldRegNNOpcodes {
		op, p := opcode, pair
		c.edOps[op] = func(cpu *CPU) { cpu.opLDRegNN(p) }
	}

	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		c.edOps[op] = (*CPU).opNEG
	}
	for _, op := range []byte{0x45, 0x4D, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D} {
		c.edOps[op] = (*CPU).opRETN
	}
	c.edOps[0x46] = (*CPU).opIM0
	c.edOps[0x4E] = (*CPU).opIM0
	c.edOps[0x66] = (*CPU).opIM0
	c.edOps[0x6E] = (*CPU).opIM0
	c.edOps[0x56] = (*CPU).opIM1
	c.edOps[0x76] = (*CPU).opIM1
	c.edOps[0x5E] = (*CPU).opIM2
	c.edOps[0x7E] = (*CPU).opIM2

	c.edOps[0x47] = (*CPU).opLDIA
	c.edOps[0x4F] = (*CPU).opLDRA
	c.edOps[0x57] = (*CPU).opLDAI
	c.edOps[0x5F] = (*CPU).opLDAR
	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xBB] = (*CPU).opOTDR
}

func (c *CPU) opEDUnimplemented() {}

func (c *CPU) opINRegC(dest byte) {
	value := c.in(c.BC())
	c.writeReg8Plain(dest, value)
	c.updateInFlags(value)
	c.WZ = c.BC() + 1
}

func (c *CPU) opINFlagsC() {
	value := c.in(c.BC())
	c.updateInFlags(value)
	c.WZ = c.BC() + 1
}

func (c *CPU) opOUTCReg(src byte) {
	c.out(c.BC(), c.readReg8Plain(src))
	c.WZ = c.BC() + 1
}

func (c *CPU) opOUTCZero() {
	c.out(c.BC(), 0)
	c.WZ = c.BC() + 1
}

func (c *CPU) regPair(code byte) uint16 {
	switch code {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setRegPair(code byte, v uint16) {
	switch code {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

func (c *CPU) opSBCHLReg(pair byte) {
	c.WZ = c.HL() + 1
	c.sbcHL(c.regPair(pair))
	c.tick(7)
}

func (c *CPU) opADCHLReg(pair byte) {
	c.WZ = c.HL() + 1
	c.adcHL(c.regPair(pair))
	c.tick(7)
}

func (c *CPU) opLDNNReg(pair byte) {
	addr := c.fetchWord()
	v := c.regPair(pair)
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
	c.WZ = addr + 1
}

func (c *CPU) opLDRegNN(pair byte) {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.setRegPair(pair, uint16(high)<<8|uint16(low))
	c.WZ = addr + 1
}

func (c *CPU) opNEG() {
	value := c.A
	c.A = 0
	c.subA(value, 0, true)
}

func (c *CPU) opRETN() {
	c.PC = c.popWord()
	c.WZ = c.PC
	c.IFF1 = c.IFF2
}

func (c *CPU) opIM0() { c.IM = 0 }
func (c *CPU) opIM1() { c.IM = 1 }
func (c *CPU) opIM2() { c.IM = 2 }

func (c *CPU) opLDIA() { c.I = c.A; c.tick(1) }
func (c *CPU) opLDRA() { c.R = c.A; c.tick(1) }

func (c *CPU) opLDAI() {
	c.A = c.I
	c.tick(1)
	c.updateLDAIRFlags()
}

func (c *CPU) opLDAR() {
	c.A = c.R
	c.tick(1)
	c.updateLDAIRFlags()
}

func (c *CPU) opRRD() {
	addr := c.HL()
	mem := c.read(addr)
	a := c.A
	newMem := (a << 4) | (mem >> 4)
	newA := (a & 0xF0) | (mem & 0x0F)
	c.tick(4)
	c.write(addr, newMem)
	c.A = newA
	c.updateAParityFlagsPreserveCarry()
	c.WZ = addr + 1
}

func (c *CPU) opRLD() {
	addr := c.HL()
	mem := c.read(addr)
	a := c.A
	newMem := (mem << 4) | (a & 0x0F)
	newA := (a & 0xF0) | (mem >> 4)
	c.tick(4)
	c.write(addr, newMem)
	c.A = newA
	c.updateAParityFlagsPreserveCarry()
	c.WZ = addr + 1
}

func (c *CPU) opLDI() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.tick(2)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)
	c.updateLDIFlags(value, c.BC())
}

func (c *CPU) opLDD() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.tick(2)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	c.SetBC(c.BC() - 1)
	c.updateLDIFlags(value, c.BC())
}

func (c *CPU) opLDIR() {
	c.opLDI()
	if c.BC() != 0 {
		c.tick(5)
		c.PC -= 2
		c.WZ = c.PC + 1
	}
}

func (c *CPU) opLDDR() {
	c.opLDD()
	if c.BC() != 0 {
		c.tick(5)
		c.PC -= 2
		c.WZ = c.PC + 1
	}
}

func (c *CPU) cpStep(step int16) {
	value := c.read(c.HL())
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetBC(c.BC() - 1)
	c.tick(5)

	diff := c.A - value
	carry := c.F & flagC
	c.F = flagN | carry
	if diff == 0 {
		c.F |= flagZ
	}
	if diff&0x80 != 0 {
		c.F |= flagS
	}
	if (c.A & 0x0F) < (value & 0x0F) {
		c.F |= flagH
	}
	if c.Flag(flagH) {
		diff--
	}
	if c.BC() != 0 {
		c.F |= flagPV
	}
	c.F |= diff & flagX
	if diff&0x02 != 0 {
		c.F |= flagY
	}
}

func (c *CPU) opCPI() { c.cpStep(1); c.WZ++ }
func (c *CPU) opCPD() { c.cpStep(-1); c.WZ-- }

func (c *CPU) opCPIR() {
	c.opCPI()
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.tick(5)
		c.PC -= 2
	}
}

func (c *CPU) opCPDR() {
	c.opCPD()
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.tick(5)
		c.PC -= 2
	}
}

func (c *CPU) opINI() {
	c.tick(1)
	value := c.in(c.BC())
	c.write(c.HL(), value)
	c.SetHL(c.HL() + 1)
	c.B--
	c.updateBlockIOFlags()
}

func (c *CPU) opIND() {
	c.tick(1)
	value := c.in(c.BC())
	c.write(c.HL(), value)
	c.SetHL(c.HL() - 1)
	c.B--
	c.updateBlockIOFlags()
}

func (c *CPU) opINIR() {
	c.opINI()
	if c.B != 0 {
		c.tick(5)
		c.PC -= 2
	}
}

func (c *CPU) opINDR() {
	c.opIND()
	if c.B != 0 {
		c.tick(5)
		c.PC -= 2
	}
}

func (c *CPU) opOUTI() {
	c.tick(1)
	value := c.read(c.HL())
	c.SetHL(c.HL() + 1)
	c.B--
	c.out(c.BC(), value)
	c.updateBlockIOFlags()
}

func (c *CPU) opOUTD() {
	c.tick(1)
	value := c.read(c.HL())
	c.SetHL(c.HL() - 1)
	c.B--
	c.out(c.BC(), value)
	c.updateBlockIOFlags()
}

func (c *CPU) opOTIR() {
	c.opOUTI()
	if c.B != 0 {
		c.tick(5)
		c.PC -= 2
	}
}

func (c *CPU) opOTDR() {
	c.opOUTD()
	if c.B != 0 {
		c.tick(5)
		c.PC -= 2
	}
}
