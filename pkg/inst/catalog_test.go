package inst

import "testing"

func TestCatalogCompleteness(t *testing.T) {
	for op := Op(1); op < Op(OpCodeCount); op++ {
		if op == VNOP {
			continue // reserved-encoding sentinel, mnemonic is legitimately "VNOP" but not catalogued per-func
		}
		if Catalog[op].Mnemonic == "" {
			t.Errorf("op %d has no catalog mnemonic", op)
		}
	}
}

func TestDecodeSUArith(t *testing.T) {
	// ADD $t0, $t1, $t2 -> 000000 01001 01010 01000 00000 100000
	word := uint32(0x00)
	word |= 9 << 21  // rs = t1 = 9
	word |= 10 << 16 // rt = t2 = 10
	word |= 8 << 11  // rd = t0 = 8
	word |= 0x20     // funct = ADD

	in := Decode(word)
	if in.Op != ADD {
		t.Fatalf("got op %v, want ADD", in.Op)
	}
	if in.Rs != 9 || in.Rt != 10 || in.Rd != 8 {
		t.Errorf("fields: rs=%d rt=%d rd=%d, want 9,10,8", in.Rs, in.Rt, in.Rd)
	}
}

func TestDecodeNOP(t *testing.T) {
	in := Decode(0)
	if in.Op != NOP {
		t.Fatalf("word 0 decoded to %v, want NOP", in.Op)
	}
}

func TestDecodeImmediate(t *testing.T) {
	// ADDIU $t0, $zero, 0x1234 -> opcode 0x09
	word := uint32(0x09)<<26 | 0<<21 | 8<<16 | 0x1234
	in := Decode(word)
	if in.Op != ADDIU {
		t.Fatalf("got op %v, want ADDIU", in.Op)
	}
	if in.Imm != 0x1234 {
		t.Errorf("imm = 0x%x, want 0x1234", in.Imm)
	}
}

func TestDecodeVUComputeVADD(t *testing.T) {
	// COP2 compute: major=0x12, bit25=1, funct=0x10 (VADD)
	word := uint32(0x12)<<26 | 1<<25 | 0x10
	word |= 5 << 11 // vs
	word |= 6 << 16 // vt
	word |= 7 << 6  // vd
	in := Decode(word)
	if in.Op != VADD {
		t.Fatalf("got op %v, want VADD", in.Op)
	}
	if in.Vs != 5 || in.Vt != 6 || in.Vd != 7 {
		t.Errorf("fields: vs=%d vt=%d vd=%d", in.Vs, in.Vt, in.Vd)
	}
}

func TestDecodeVUMemLQV(t *testing.T) {
	// LWC2, opsel=0x04 (LQV)
	word := uint32(0x32)<<26 | 4<<21 | 3<<16 | 0x04<<11
	in := Decode(word)
	if in.Op != LQV {
		t.Fatalf("got op %v, want LQV", in.Op)
	}
	if in.Base != 4 || in.Vt != 3 {
		t.Errorf("fields: base=%d vt=%d", in.Base, in.Vt)
	}
}

func TestDecodeReservedCOP2FunctIsVNOP(t *testing.T) {
	word := uint32(0x12)<<26 | 1<<25 | 0x3F // reserved funct
	in := Decode(word)
	if in.Op != VNOP {
		t.Fatalf("reserved COP2 func decoded to %v, want VNOP", in.Op)
	}
}

func TestDisassembleSmoke(t *testing.T) {
	in := Decode(0)
	if got := Disassemble(in); got != "NOP" {
		t.Errorf("Disassemble(NOP word) = %q, want NOP", got)
	}
}

func TestMnemonicOutOfRange(t *testing.T) {
	if got := Mnemonic(Op(OpCodeCount + 100)); got != "???" {
		t.Errorf("Mnemonic(out of range) = %q, want ???", got)
	}
}
