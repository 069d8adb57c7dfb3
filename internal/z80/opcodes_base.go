package z80

func (c *CPU) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*CPU).opUnimplemented
	}

	c.baseOps[0x00] = (*CPU).opNOP
	c.baseOps[0x76] = (*CPU).opHALT

	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		dest := byte((op >> 3) & 0x07)
		src := byte(op & 0x07)
		c.baseOps[op] = func(cpu *CPU) {
			cpu.opLDRegReg(dest, src)
		}
	}

	ldRegImmOpcodes := map[byte]byte{
		0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3,
		0x26: 4, 0x2E: 5, 0x36: 6, 0x3E: 7,
	}
	for opcode, reg := range ldRegImmOpcodes {
		op, dest := opcode, reg
		c.baseOps[op] = func(cpu *CPU) {
			cpu.opLDRegImm(dest)
		}
	}

	for opcode := 0x80; opcode <= 0x87; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluAdd, src) }
	}
	for opcode := 0x88; opcode <= 0x8F; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluAdc, src) }
	}
	for opcode := 0x90; opcode <= 0x97; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluSub, src) }
	}
	for opcode := 0x98; opcode <= 0x9F; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluSbc, src) }
	}
	for opcode := 0xA0; opcode <= 0xA7; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluAnd, src) }
	}
	for opcode := 0xA8; opcode <= 0xAF; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluXor, src) }
	}
	for opcode := 0xB0; opcode <= 0xB7; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluOr, src) }
	}
	for opcode := 0xB8; opcode <= 0xBF; opcode++ {
		op, src := opcode, byte(opcode&0x07)
		c.baseOps[op] = func(cpu *CPU) { cpu.opALUReg(aluCp, src) }
	}

	c.baseOps[0xC6] = (*CPU).opADDImm
	c.baseOps[0xCE] = (*CPU).opADCImm
	c.baseOps[0xD6] = (*CPU).opSUBImm
	c.baseOps[0xDE] = (*CPU).opSBCImm
	c.baseOps[0xE6] = (*CPU).opANDImm
	c.baseOps[0xEE] = (*CPU).opXORImm
	c.baseOps[0xF6] = (*CPU).opORImm
	c.baseOps[0xFE] = (*CPU).opCPImm

	c.baseOps[0x27] = (*CPU).opDAA
	c.baseOps[0x2F] = (*CPU).opCPL
	c.baseOps[0x37] = (*CPU).opSCF
	c.baseOps[0x3F] = (*CPU).opCCF

	c.baseOps[0x01] = (*CPU).opLDBCNN
	c.baseOps[0x11] = (*CPU).opLDDENN
	c.baseOps[0x21] = (*CPU).opLDHLImm
	c.baseOps[0x31] = (*CPU).opLDSPNN
	c.baseOps[0x09] = (*CPU).opADDHLBC
	c.baseOps[0x19] = (*CPU).opADDHLDE
	c.baseOps[0x29] = (*CPU).opADDHLHL
	c.baseOps[0x39] = (*CPU).opADDHLSP
	c.baseOps[0x03] = (*CPU).opINCBC
	c.baseOps[0x13] = (*CPU).opINCDE
	c.baseOps[0x23] = (*CPU).opINCHL
	c.baseOps[0x33] = (*CPU).opINCSP
	c.baseOps[0x0B] = (*CPU).opDECBC
	c.baseOps[0x1B] = (*CPU).opDECDE
	c.baseOps[0x2B] = (*CPU).opDECHL
	c.baseOps[0x3B] = (*CPU).opDECSP
	c.baseOps[0xC5] = (*CPU).opPUSHBC
	c.baseOps[0xD5] = (*CPU).opPUSHDE
	c.baseOps[0xE5] = (*CPU).opPUSHHL
	c.baseOps[0xF5] = (*CPU).opPUSHAF
	c.baseOps[0xC1] = (*CPU).opPOPBC
	c.baseOps[0xD1] = (*CPU).opPOPDE
	c.baseOps[0xE1] = (*CPU).opPOPHL
	c.baseOps[0xF1] = (*CPU).opPOPAF
	c.baseOps[0xC3] = (*CPU).opJPNN
	c.baseOps[0x18] = (*CPU).opJR
	c.baseOps[0x10] = (*CPU).opDJNZ
	c.baseOps[0xCD] = (*CPU).opCALLNN
	c.baseOps[0xC9] = (*CPU).opRET
	c.baseOps[0xE3] = (*CPU).opEXSPHL
	c.baseOps[0x08] = (*CPU).opEXAF
	c.baseOps[0xEB] = (*CPU).opEXDEHL
	c.baseOps[0xD9] = (*CPU).opEXX
	c.baseOps[0xE9] = (*CPU).opJPHL
	c.baseOps[0x22] = (*CPU).opLDNNHL
	c.baseOps[0x2A] = (*CPU).opLDHLNN
	c.baseOps[0x32] = (*CPU).opLDNNA
	c.baseOps[0x3A] = (*CPU).opLDANN
	c.baseOps[0x02] = (*CPU).opLDBCA
	c.baseOps[0x0A] = (*CPU).opLDABC
	c.baseOps[0x12] = (*CPU).opLDDEA
	c.baseOps[0x1A] = (*CPU).opLDABD
	c.baseOps[0xF9] = (*CPU).opLDSPHL
	c.baseOps[0xD3] = (*CPU).opOUTNA
	c.baseOps[0xDB] = (*CPU).opINAN
	c.baseOps[0x07] = (*CPU).opRLCA
	c.baseOps[0x0F] = (*CPU).opRRCA
	c.baseOps[0x17] = (*CPU).opRLA
	c.baseOps[0x1F] = (*CPU).opRRA
	c.baseOps[0xC7] = (*CPU).opRST00
	c.baseOps[0xCF] = (*CPU).opRST08
	c.baseOps[0xD7] = (*CPU).opRST10
	c.baseOps[0xDF] = (*CPU).opRST18
	c.baseOps[0xE7] = (*CPU).opRST20
	c.baseOps[0xEF] = (*CPU).opRST28
	c.baseOps[0xF7] = (*CPU).opRST30
	c.baseOps[0xFF] = (*CPU).opRST38
	c.baseOps[0x04] = (*CPU).opINCB
	c.baseOps[0x0C] = (*CPU).opINCC
	c.baseOps[0x14] = (*CPU).opINCD
	c.baseOps[0x1C] = (*CPU).opINCE
	c.baseOps[0x24] = (*CPU).opINCH
	c.baseOps[0x2C] = (*CPU).opINCL
	c.baseOps[0x34] = (*CPU).opINCHLMem
	c.baseOps[0x3C] = (*CPU).opINCA
	c.baseOps[0x05] = (*CPU).opDECB
	c.baseOps[0x0D] = (*CPU).opDECC
	c.baseOps[0x15] = (*CPU).opDECD
	c.baseOps[0x1D] = (*CPU).opDECE
	c.baseOps[0x25] = (*CPU).opDECH
	c.baseOps[0x2D] = (*CPU).opDECL
	c.baseOps[0x35] = (*CPU).opDECHLMem
	c.baseOps[0x3D] = (*CPU).opDECA
	c.baseOps[0xC2] = (*CPU).opJPNZ
	c.baseOps[0xCA] = (*CPU).opJPZ
	c.baseOps[0xD2] = (*CPU).opJPNC
	c.baseOps[0xDA] = (*CPU).opJPC
	c.baseOps[0xE2] = (*CPU).opJPPO
	c.baseOps[0xEA] = (*CPU).opJPPE
	c.baseOps[0xF2] = (*CPU).opJPNS
	c.baseOps[0xFA] = (*CPU).opJPS
	c.baseOps[0x20] = (*CPU).opJRNZ
	c.baseOps[0x28] = (*CPU).opJRZ
	c.baseOps[0x30] = (*CPU).opJRNC
	c.baseOps[0x38] = (*CPU).opJRC
	c.baseOps[0xC4] = (*CPU).opCALLNZ
	c.baseOps[0xCC] = (*CPU).opCALLZ
	c.baseOps[0xD4] = (*CPU).opCALLNC
	c.baseOps[0xDC] = (*CPU).opCALLC
	c.baseOps[0xE4] = (*CPU).opCALLPO
	c.baseOps[0xEC] = (*CPU).opCALLPE
	c.baseOps[0xF4] = (*CPU).opCALLNS
	c.baseOps[0xFC] = (*CPU).opCALLS
	c.baseOps[0xC0] = (*CPU).opRETNZ
	c.baseOps[0xC8] = (*CPU).opRETZ
	c.baseOps[0xD0] = (*CPU).opRETNC
	c.baseOps[0xD8] = (*CPU).opRETC
	c.baseOps[0xE0] = (*CPU).opRETPO
	c.baseOps[0xE8] = (*CPU).opRETPE
	c.baseOps[0xF0] = (*CPU).opRETNS
	c.baseOps[0xF8] = (*CPU).opRETS
	c.baseOps[0xCB] = (*CPU).opCBPrefix
	c.baseOps[0xDD] = (*CPU).opDDPrefix
	c.baseOps[0xFD] = (*CPU).opFDPrefix
	c.baseOps[0xED] = (*CPU).opEDPrefix
	c.baseOps[0xF3] = (*CPU).opDI
	c.baseOps[0xFB] = (*CPU).opEI
}

func (c *CPU) opUnimplemented() {}
func (c *CPU) opNOP()           {}

func (c *CPU) opHALT() {
	c.Halted = true
}

func (c *CPU) opLDRegReg(dest, src byte) {
	value := c.readReg8(src)
	c.writeReg8(dest, value)
}

func (c *CPU) opLDRegImm(dest byte) {
	value := c.fetchByte()
	c.writeReg8(dest, value)
}

func (c *CPU) opALUReg(op aluOp, src byte) {
	value := c.readReg8(src)
	c.performALU(op, value)
}

func (c *CPU) opADDImm() { c.performALU(aluAdd, c.fetchByte()) }
func (c *CPU) opADCImm() { c.performALU(aluAdc, c.fetchByte()) }
func (c *CPU) opSUBImm() { c.performALU(aluSub, c.fetchByte()) }
func (c *CPU) opSBCImm() { c.performALU(aluSbc, c.fetchByte()) }
func (c *CPU) opANDImm() { c.performALU(aluAnd, c.fetchByte()) }
func (c *CPU) opXORImm() { c.performALU(aluXor, c.fetchByte()) }
func (c *CPU) opORImm()  { c.performALU(aluOr, c.fetchByte()) }
func (c *CPU) opCPImm()  { c.performALU(aluCp, c.fetchByte()) }

func (c *CPU) opDAA() {
	a := c.A
	adj := byte(0)
	carry := c.Flag(flagC)
	if c.Flag(flagH) || (!c.Flag(flagN) && (a&0x0F) > 0x09) {
		adj |= 0x06
	}
	if carry || (!c.Flag(flagN) && a > 0x99) {
		adj |= 0x60
	}

	var res byte
	if c.Flag(flagN) {
		res = a - adj
	} else {
		res = a + adj
	}

	c.A = res
	c.F &^= flagS | flagZ | flagPV | flagH | flagC | flagX | flagY
	if res == 0 {
		c.F |= flagZ
	}
	if res&0x80 != 0 {
		c.F |= flagS
	}
	if parity8(res) {
		c.F |= flagPV
	}
	if c.Flag(flagN) {
		if (a^res)&0x10 != 0 {
			c.F |= flagH
		}
	} else if (a&0x0F)+(adj&0x0F) > 0x0F {
		c.F |= flagH
	}
	if adj >= 0x60 {
		c.F |= flagC
	}
	c.F |= res & (flagX | flagY)
}

func (c *CPU) opCPL() {
	c.A = ^c.A
	c.F = (c.F & (flagS | flagZ | flagPV | flagC)) | flagH | flagN
	c.F |= c.A & (flagX | flagY)
}

func (c *CPU) opSCF() {
	c.F = (c.F & (flagS | flagZ | flagPV)) | flagC
	c.F |= c.A & (flagX | flagY)
}

func (c *CPU) opCCF() {
	carry := c.Flag(flagC)
	c.F = (c.F & (flagS | flagZ | flagPV)) | (c.A & (flagX | flagY))
	if carry {
		c.F |= flagH
	} else {
		c.F |= flagC
	}
}

func (c *CPU) opLDBCNN()  { c.SetBC(c.fetchWord()) }
func (c *CPU) opLDDENN()  { c.SetDE(c.fetchWord()) }
func (c *CPU) opLDHLImm() { c.SetHL(c.fetchWord()) }
func (c *CPU) opLDSPNN()  { c.SP = c.fetchWord() }

func (c *CPU) opADDHLBC() { c.addHL(c.BC()); c.tick(7) }
func (c *CPU) opADDHLDE() { c.addHL(c.DE()); c.tick(7) }
func (c *CPU) opADDHLHL() { c.addHL(c.HL()); c.tick(7) }
func (c *CPU) opADDHLSP() { c.addHL(c.SP); c.tick(7) }

func (c *CPU) opINCBC() { c.SetBC(c.BC() + 1); c.tick(2) }
func (c *CPU) opINCDE() { c.SetDE(c.DE() + 1); c.tick(2) }
func (c *CPU) opINCHL() { c.SetHL(c.HL() + 1); c.tick(2) }
func (c *CPU) opINCSP() { c.SP++; c.tick(2) }
func (c *CPU) opDECBC() { c.SetBC(c.BC() - 1); c.tick(2) }
func (c *CPU) opDECDE() { c.SetDE(c.DE() - 1); c.tick(2) }
func (c *CPU) opDECHL() { c.SetHL(c.HL() - 1); c.tick(2) }
func (c *CPU) opDECSP() { c.SP--; c.tick(2) }

func (c *CPU) opPUSHBC() { c.tick(1); c.pushWord(c.BC()) }
func (c *CPU) opPUSHDE() { c.tick(1); c.pushWord(c.DE()) }
func (c *CPU) opPUSHHL() { c.tick(1); c.pushWord(c.HL()) }
func (c *CPU) opPUSHAF() { c.tick(1); c.pushWord(c.AF()) }
func (c *CPU) opPOPBC()  { c.SetBC(c.popWord()) }
func (c *CPU) opPOPDE()  { c.SetDE(c.popWord()) }
func (c *CPU) opPOPHL()  { c.SetHL(c.popWord()) }
func (c *CPU) opPOPAF()  { c.SetAF(c.popWord()) }

func (c *CPU) opJPNN() { addr := c.fetchWord(); c.PC = addr; c.WZ = addr }

func (c *CPU) opJR() {
	disp := int8(c.fetchByte())
	c.tick(5)
	c.PC = uint16(int32(c.PC) + int32(disp))
	c.WZ = c.PC
}

func (c *CPU) opDJNZ() {
	disp := int8(c.fetchByte())
	c.tick(1)
	c.B--
	if c.B != 0 {
		c.tick(5)
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.WZ = c.PC
	}
}

func (c *CPU) opCALLNN() {
	addr := c.fetchWord()
	c.WZ = addr
	c.tick(1)
	c.pushWord(c.PC)
	c.PC = addr
}

func (c *CPU) opRET() { c.PC = c.popWord(); c.WZ = c.PC }

func (c *CPU) opEXSPHL() {
	low := c.read(c.SP)
	high := c.read(c.SP + 1)
	memVal := uint16(high)<<8 | uint16(low)
	hl := c.HL()
	c.write(c.SP, byte(hl))
	c.tick(1)
	c.write(c.SP+1, byte(hl>>8))
	c.tick(2)
	c.SetHL(memVal)
	c.WZ = memVal
}

func (c *CPU) opEXAF()   { c.ExAF() }
func (c *CPU) opEXDEHL() { c.D, c.H = c.H, c.D; c.E, c.L = c.L, c.E }
func (c *CPU) opEXX()    { c.Exx() }
func (c *CPU) opJPHL()   { c.PC = c.HL() }

func (c *CPU) opLDNNHL() {
	addr := c.fetchWord()
	value := c.HL()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
}

func (c *CPU) opLDHLNN() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SetHL(uint16(high)<<8 | uint16(low))
	c.WZ = addr + 1
}

func (c *CPU) opLDNNA() {
	addr := c.fetchWord()
	c.write(addr, c.A)
	c.WZ = (uint16(c.A) << 8) | ((addr + 1) & 0xFF)
}

func (c *CPU) opLDANN() {
	addr := c.fetchWord()
	c.A = c.read(addr)
	c.WZ = addr + 1
}

func (c *CPU) opLDBCA() { c.write(c.BC(), c.A); c.WZ = (uint16(c.A) << 8) | ((c.BC() + 1) & 0xFF) }
func (c *CPU) opLDABC()  { c.A = c.read(c.BC()); c.WZ = c.BC() + 1 }
func (c *CPU) opLDDEA() { c.write(c.DE(), c.A); c.WZ = (uint16(c.A) << 8) | ((c.DE() + 1) & 0xFF) }
func (c *CPU) opLDABD()  { c.A = c.read(c.DE()); c.WZ = c.DE() + 1 }

func (c *CPU) opLDSPHL() { c.SP = c.HL(); c.tick(2) }

func (c *CPU) opOUTNA() {
	n := c.fetchByte()
	port := uint16(c.A)<<8 | uint16(n)
	c.out(port, c.A)
	c.WZ = (uint16(c.A) << 8) | ((port + 1) & 0xFF)
}

func (c *CPU) opINAN() {
	n := c.fetchByte()
	port := uint16(c.A)<<8 | uint16(n)
	c.A = c.in(port)
	c.updateInFlags(c.A)
	c.WZ = port + 1
}

func (c *CPU) opRLCA() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.updateRotateFlags(carry)
}

func (c *CPU) opRRCA() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.updateRotateFlags(carry)
}

func (c *CPU) opRLA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x80 != 0
	c.A = c.A << 1
	if carryIn {
		c.A |= 0x01
	}
	c.updateRotateFlags(carryOut)
}

func (c *CPU) opRRA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x01 != 0
	c.A = c.A >> 1
	if carryIn {
		c.A |= 0x80
	}
	c.updateRotateFlags(carryOut)
}

func (c *CPU) opRST00() { c.opRST(0x00) }
func (c *CPU) opRST08() { c.opRST(0x08) }
func (c *CPU) opRST10() { c.opRST(0x10) }
func (c *CPU) opRST18() { c.opRST(0x18) }
func (c *CPU) opRST20() { c.opRST(0x20) }
func (c *CPU) opRST28() { c.opRST(0x28) }
func (c *CPU) opRST30() { c.opRST(0x30) }
func (c *CPU) opRST38() { c.opRST(0x38) }

func (c *CPU) opRST(vector uint16) {
	c.tick(1)
	c.pushWord(c.PC)
	c.PC = vector
	c.WZ = vector
}

func (c *CPU) opCBPrefix() {
	opcode := c.fetchOpcode()
	c.cbOps[opcode](c)
}

func (c *CPU) opDDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefixMode
	c.prefixMode = prefixDD
	c.prefixOpcode = opcode
	c.ddOps[opcode](c)
	c.prefixMode = prev
}

func (c *CPU) opFDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefixMode
	c.prefixMode = prefixFD
	c.prefixOpcode = opcode
	c.fdOps[opcode](c)
	c.prefixMode = prev
}

func (c *CPU) opEDPrefix() {
	opcode := c.fetchOpcode()
	c.edOps[opcode](c)
}

func (c *CPU) opINCB() { c.B = c.inc8(c.B) }
func (c *CPU) opINCC() { c.C = c.inc8(c.C) }
func (c *CPU) opINCD() { c.D = c.inc8(c.D) }
func (c *CPU) opINCE() { c.E = c.inc8(c.E) }
func (c *CPU) opINCH() { c.writeReg8(4, c.inc8(c.readReg8(4))) }
func (c *CPU) opINCL() { c.writeReg8(5, c.inc8(c.readReg8(5))) }
func (c *CPU) opINCA() { c.A = c.inc8(c.A) }

func (c *CPU) opINCHLMem() {
	addr := c.HL()
	value := c.read(addr)
	value = c.inc8(value)
	c.tick(1)
	c.write(addr, value)
}

func (c *CPU) opDECB() { c.B = c.dec8(c.B) }
func (c *CPU) opDECC() { c.C = c.dec8(c.C) }
func (c *CPU) opDECD() { c.D = c.dec8(c.D) }
func (c *CPU) opDECE() { c.E = c.dec8(c.E) }
func (c *CPU) opDECH() { c.writeReg8(4, c.dec8(c.readReg8(4))) }
func (c *CPU) opDECL() { c.writeReg8(5, c.dec8(c.readReg8(5))) }
func (c *CPU) opDECA() { c.A = c.dec8(c.A) }

func (c *CPU) opDECHLMem() {
	addr := c.HL()
	value := c.read(addr)
	value = c.dec8(value)
	c.tick(1)
	c.write(addr, value)
}

func (c *CPU) opDI() {
	c.IFF1 = false
	c.IFF2 = false
	c.iffDelay = 0
}

func (c *CPU) opEI() { c.iffDelay = 2 }

func (c *CPU) opJPNZ() { c.jpCond(!c.Flag(flagZ)) }
func (c *CPU) opJPZ()  { c.jpCond(c.Flag(flagZ)) }
func (c *CPU) opJPNC() { c.jpCond(!c.Flag(flagC)) }
func (c *CPU) opJPC()  { c.jpCond(c.Flag(flagC)) }
func (c *CPU) opJPPO() { c.jpCond(!c.Flag(flagPV)) }
func (c *CPU) opJPPE() { c.jpCond(c.Flag(flagPV)) }
func (c *CPU) opJPNS() { c.jpCond(!c.Flag(flagS)) }
func (c *CPU) opJPS()  { c.jpCond(c.Flag(flagS)) }

func (c *CPU) opJRNZ() { c.jrCond(!c.Flag(flagZ)) }
func (c *CPU) opJRZ()  { c.jrCond(c.Flag(flagZ)) }
func (c *CPU) opJRNC() { c.jrCond(!c.Flag(flagC)) }
func (c *CPU) opJRC()  { c.jrCond(c.Flag(flagC)) }

func (c *CPU) opCALLNZ() { c.callCond(!c.Flag(flagZ)) }
func (c *CPU) opCALLZ()  { c.callCond(c.Flag(flagZ)) }
func (c *CPU) opCALLNC() { c.callCond(!c.Flag(flagC)) }
func (c *CPU) opCALLC()  { c.callCond(c.Flag(flagC)) }
func (c *CPU) opCALLPO() { c.callCond(!c.Flag(flagPV)) }
func (c *CPU) opCALLPE() { c.callCond(c.Flag(flagPV)) }
func (c *CPU) opCALLNS() { c.callCond(!c.Flag(flagS)) }
func (c *CPU) opCALLS()  { c.callCond(c.Flag(flagS)) }

func (c *CPU) opRETNZ() { c.retCond(!c.Flag(flagZ)) }
func (c *CPU) opRETZ()  { c.retCond(c.Flag(flagZ)) }
func (c *CPU) opRETNC() { c.retCond(!c.Flag(flagC)) }
func (c *CPU) opRETC()  { c.retCond(c.Flag(flagC)) }
func (c *CPU) opRETPO() { c.retCond(!c.Flag(flagPV)) }
func (c *CPU) opRETPE() { c.retCond(c.Flag(flagPV)) }
func (c *CPU) opRETNS() { c.retCond(!c.Flag(flagS)) }
func (c *CPU) opRETS()  { c.retCond(c.Flag(flagS)) }

func (c *CPU) jpCond(cond bool) {
	addr := c.fetchWord()
	c.WZ = addr
	if cond {
		c.PC = addr
	}
}

func (c *CPU) jrCond(cond bool) {
	disp := int8(c.fetchByte())
	if cond {
		c.tick(5)
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.WZ = c.PC
	}
}

func (c *CPU) callCond(cond bool) {
	addr := c.fetchWord()
	c.WZ = addr
	if cond {
		c.tick(1)
		c.pushWord(c.PC)
		c.PC = addr
	}
}

func (c *CPU) retCond(cond bool) {
	c.tick(1)
	if cond {
		c.PC = c.popWord()
		c.WZ = c.PC
	}
}
