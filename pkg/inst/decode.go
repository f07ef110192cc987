package inst

// Decode classifies a raw 32-bit IMEM word and extracts every field the
// matched Op needs. Decode never fails: an encoding this table doesn't
// recognize decodes to OpInvalid (SU, COP2 move, reserved LWC2/SWC2 opsel)
// or VNOP (COP2 compute) rather than
// raising a fault, matching real RSP silicon where every bit pattern is
// "valid" in the sense that it does *something*, even if that something is
// unspecified by the documented instruction set.
func Decode(word uint32) Instruction {
	major := uint8(word >> 26)

	switch major {
	case 0x12: // COP2 — either a vector move (bit25=0) or compute (bit25=1)
		if word&(1<<25) != 0 {
			return decodeVUCompute(word)
		}
		return decodeCOP2Move(word)
	case 0x32, 0x3A: // LWC2 / SWC2 — vector memory transfers
		return decodeVUMem(word, major == 0x3A)
	default:
		return decodeSU(word, major)
	}
}

func decodeSU(word uint32, major uint8) Instruction {
	in := Instruction{Word: word}
	rs := uint8(word>>21) & 0x1F
	rt := uint8(word>>16) & 0x1F
	rd := uint8(word>>11) & 0x1F
	sa := uint8(word>>6) & 0x1F
	funct := uint8(word) & 0x3F
	imm := uint16(word)

	in.Rs, in.Rt, in.Rd, in.Sa, in.Imm = rs, rt, rd, sa, imm

	switch major {
	case 0x00: // SPECIAL
		switch funct {
		case 0x20:
			in.Op = ADD
		case 0x21:
			in.Op = ADDU
		case 0x22:
			in.Op = SUB
		case 0x23:
			in.Op = SUBU
		case 0x24:
			in.Op = AND
		case 0x25:
			in.Op = OR
		case 0x26:
			in.Op = XOR
		case 0x27:
			in.Op = NOR
		case 0x2A:
			in.Op = SLT
		case 0x2B:
			in.Op = SLTU
		case 0x00:
			if word == 0 {
				in.Op = NOP
			} else {
				in.Op = SLL
			}
		case 0x02:
			in.Op = SRL
		case 0x03:
			in.Op = SRA
		case 0x04:
			in.Op = SLLV
		case 0x06:
			in.Op = SRLV
		case 0x07:
			in.Op = SRAV
		case 0x18:
			in.Op = MULT
		case 0x19:
			in.Op = MULTU
		case 0x1A:
			in.Op = DIV
		case 0x1B:
			in.Op = DIVU
		case 0x08:
			in.Op = JR
		case 0x09:
			in.Op = JALR
		case 0x0D:
			in.Op = BREAK
		default:
			in.Op = OpInvalid
		}
	case 0x01: // REGIMM: BLTZ/BGEZ/BLTZAL/BGEZAL selected by rt
		switch rt {
		case 0x00:
			in.Op = BLTZ
		case 0x01:
			in.Op = BGEZ
		case 0x10:
			in.Op = BLTZAL
		case 0x11:
			in.Op = BGEZAL
		default:
			in.Op = OpInvalid
		}
	case 0x02:
		in.Op = J
	case 0x03:
		in.Op = JAL
	case 0x04:
		in.Op = BEQ
	case 0x05:
		in.Op = BNE
	case 0x06:
		in.Op = BLEZ
	case 0x07:
		in.Op = BGTZ
	case 0x08:
		in.Op = ADDI
	case 0x09:
		in.Op = ADDIU
	case 0x0A:
		in.Op = SLTI
	case 0x0B:
		in.Op = SLTIU
	case 0x0C:
		in.Op = ANDI
	case 0x0D:
		in.Op = ORI
	case 0x0E:
		in.Op = XORI
	case 0x0F:
		in.Op = LUI
	case 0x10: // COP0
		switch rs {
		case 0x00:
			in.Op = MFC0
		case 0x04:
			in.Op = MTC0
		default:
			in.Op = OpInvalid
		}
	case 0x20:
		in.Op = LB
	case 0x21:
		in.Op = LH
	case 0x23:
		in.Op = LW
	case 0x24:
		in.Op = LBU
	case 0x25:
		in.Op = LHU
	case 0x27:
		in.Op = LWU
	case 0x28:
		in.Op = SB
	case 0x29:
		in.Op = SH
	case 0x2B:
		in.Op = SW
	default:
		in.Op = OpInvalid
	}
	return in
}

// decodeCOP2Move handles the bit25=0 COP2 encoding space: MFC2/MTC2/CFC2/CTC2,
// selected by the rs field the same way MFC0/MTC0 are selected under COP0.
func decodeCOP2Move(word uint32) Instruction {
	rs := uint8(word>>21) & 0x1F
	rt := uint8(word>>16) & 0x1F
	rd := uint8(word>>11) & 0x1F
	element := uint8(word>>7) & 0xF

	in := Instruction{Word: word, Rt: rt, Vs: rd, Element: element}
	switch rs {
	case 0x00:
		in.Op = MFC2
	case 0x04:
		in.Op = MTC2
	case 0x02:
		in.Op = CFC2
	case 0x06:
		in.Op = CTC2
	default:
		in.Op = OpInvalid
	}
	return in
}

// decodeVUCompute handles bit25=1 COP2 instructions: the func field (low 6
// bits) selects the compute op; vs/vt/vd/e are the three vector register
// operands plus the element/broadcast selector.
func decodeVUCompute(word uint32) Instruction {
	vs := uint8(word>>11) & 0x1F
	vt := uint8(word>>16) & 0x1F
	vd := uint8(word>>6) & 0x1F
	element := uint8(word>>21) & 0xF
	funct := uint8(word) & 0x3F

	in := Instruction{Word: word, Vs: vs, Vt: vt, Vd: vd, Element: element}

	switch funct {
	case 0x00:
		in.Op = VMULF
	case 0x01:
		in.Op = VMULU
	case 0x04:
		in.Op = VMUDL
	case 0x05:
		in.Op = VMUDM
	case 0x06:
		in.Op = VMUDN
	case 0x07:
		in.Op = VMUDH
	case 0x08:
		in.Op = VMACF
	case 0x09:
		in.Op = VMACU
	case 0x0C:
		in.Op = VMADL
	case 0x0D:
		in.Op = VMADM
	case 0x0E:
		in.Op = VMADN
	case 0x0F:
		in.Op = VMADH
	case 0x10:
		in.Op = VADD
	case 0x14:
		in.Op = VADDC
	case 0x11:
		in.Op = VSUB
	case 0x15:
		in.Op = VSUBC
	case 0x1D:
		in.Op = VSAR
	case 0x20:
		in.Op = VLT
	case 0x21:
		in.Op = VEQ
	case 0x22:
		in.Op = VNE
	case 0x23:
		in.Op = VGE
	case 0x24:
		in.Op = VCL
	case 0x25:
		in.Op = VCH
	case 0x26:
		in.Op = VCR
	case 0x27:
		in.Op = VMRG
	case 0x28:
		in.Op = VAND
	case 0x29:
		in.Op = VNAND
	case 0x2A:
		in.Op = VOR
	case 0x2B:
		in.Op = VNOR
	case 0x2C:
		in.Op = VXOR
	case 0x2D:
		in.Op = VNXOR
	case 0x30:
		in.Op = VRCP
	case 0x31:
		in.Op = VRCPL
	case 0x32:
		in.Op = VRCPH
	case 0x33:
		in.Op = VMOV
	case 0x34:
		in.Op = VRSQ
	case 0x35:
		in.Op = VRSQL
	case 0x36:
		in.Op = VRSQH
	case 0x37:
		in.Op = VNOP
	default:
		in.Op = VNOP // reserved func codes are silicon no-ops, not faults
	}
	return in
}

// decodeVUMem handles LWC2 (load, store=false) and SWC2 (store, store=true).
// The 5-bit "rd" field selects the transfer op per spec.md §4.3's table.
func decodeVUMem(word uint32, store bool) Instruction {
	base := uint8(word>>21) & 0x1F
	vt := uint8(word>>16) & 0x1F
	opsel := uint8(word>>11) & 0x1F
	del := uint8(word>>7) & 0xF
	off7 := int32(int8(uint8(word)&0x7F) << 1 >> 1) // sign-extend 7 bits

	in := Instruction{Word: word, Base: base, Vt: vt, Del: del}

	op, size := vuMemOp(opsel, store)
	in.Op = op
	in.Offset = off7 * int32(size)
	return in
}

// vuMemTable maps the 5-bit opsel field to its {load, store} Op pair and
// base access size, per spec.md §4.3.
var vuMemTable = []struct {
	opsel       uint8
	load, store Op
	size        int
}{
	{0x00, LBV, SBV, 1},
	{0x01, LSV, SSV, 2},
	{0x02, LLV, SLV, 4},
	{0x03, LDV, SDV, 8},
	{0x04, LQV, SQV, 16},
	{0x05, LRV, SRV, 16},
	{0x06, LPV, SPV, 8},
	{0x07, LUV, SUV, 8},
	{0x08, LHV, SHV, 8},
	{0x09, LFV, SFV, 8},
	{0x0B, LTV, STV, 16},
}

func vuMemOp(opsel uint8, store bool) (Op, int) {
	for _, e := range vuMemTable {
		if e.opsel == opsel {
			if store {
				return e.store, e.size
			}
			return e.load, e.size
		}
	}
	// opsel 0x0A and 0x0C-0x1F are reserved; they decode to OpInvalid, which
	// executes as a no-op, matching Decode's no-fault guarantee.
	return OpInvalid, 0
}
