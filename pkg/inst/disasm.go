package inst

import "strconv"

// Disassemble renders in as a single assembly-style line. It never panics
// or errors — an unrecognized Op still prints something, since Decode
// itself never fails.
func Disassemble(in Instruction) string {
	info := Catalog[in.Op]
	mnem := info.Mnemonic
	if mnem == "" {
		mnem = "???"
	}

	switch info.Class {
	case ClassSU:
		return disasmSU(in, mnem, info)
	case ClassVUMem:
		return disasmVUMem(in, mnem)
	case ClassVUComp:
		return disasmVUComp(in, mnem)
	default:
		return mnem
	}
}

func disasmSU(in Instruction, mnem string, info Info) string {
	switch in.Op {
	case NOP, BREAK:
		return mnem
	case JR, JALR:
		return mnem + " " + reg(in.Rs)
	case J, JAL:
		return mnem + " 0x" + strconv.FormatUint(uint64(in.Imm)<<2, 16)
	case BEQ, BNE:
		return mnem + " " + reg(in.Rs) + ", " + reg(in.Rt) + ", " + immHex(in.Imm)
	case BLEZ, BGTZ, BLTZ, BGEZ, BLTZAL, BGEZAL:
		return mnem + " " + reg(in.Rs) + ", " + immHex(in.Imm)
	case LUI:
		return mnem + " " + reg(in.Rt) + ", " + immHex(in.Imm)
	case MFC0, MFC2:
		return mnem + " " + reg(in.Rt) + ", $" + strconv.Itoa(int(in.Vs))
	case MTC0, MTC2:
		return mnem + " " + reg(in.Rt) + ", $" + strconv.Itoa(int(in.Vs))
	case CFC2, CTC2:
		return mnem + " " + reg(in.Rt) + ", $" + strconv.Itoa(int(in.Vs))
	}
	if info.IsLoad || info.IsStore {
		reg2 := in.Rt
		return mnem + " " + reg(reg2) + ", " + immHex(in.Imm) + "(" + reg(in.Rs) + ")"
	}
	if info.HasImm {
		return mnem + " " + reg(in.Rt) + ", " + reg(in.Rs) + ", " + immHex(in.Imm)
	}
	if in.Op == SLL || in.Op == SRL || in.Op == SRA {
		return mnem + " " + reg(in.Rd) + ", " + reg(in.Rt) + ", " + strconv.Itoa(int(in.Sa))
	}
	return mnem + " " + reg(in.Rd) + ", " + reg(in.Rs) + ", " + reg(in.Rt)
}

func disasmVUMem(in Instruction, mnem string) string {
	return mnem + " v" + strconv.Itoa(int(in.Vt)) + "[" + strconv.Itoa(int(in.Del)) + "], " +
		offsetHex(in.Offset) + "(" + reg(in.Base) + ")"
}

func disasmVUComp(in Instruction, mnem string) string {
	switch in.Op {
	case VRCP, VRCPL, VRCPH, VMOV, VRSQ, VRSQL, VRSQH:
		return mnem + " v" + strconv.Itoa(int(in.Vd)) + "[" + strconv.Itoa(int(in.Element&0x7)) +
			"], v" + strconv.Itoa(int(in.Vt)) + "[" + strconv.Itoa(int(in.Element&0x7)) + "]"
	}
	return mnem + " v" + strconv.Itoa(int(in.Vd)) + ", v" + strconv.Itoa(int(in.Vs)) +
		", v" + strconv.Itoa(int(in.Vt)) + elementSuffix(in.Element)
}

func elementSuffix(e uint8) string {
	if e == 0 {
		return ""
	}
	return "[e" + strconv.Itoa(int(e)) + "]"
}

func reg(n uint8) string {
	return "r" + strconv.Itoa(int(n))
}

func immHex(v uint16) string {
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

func offsetHex(v int32) string {
	if v < 0 {
		return "-0x" + strconv.FormatUint(uint64(-v), 16)
	}
	return "0x" + strconv.FormatUint(uint64(v), 16)
}
