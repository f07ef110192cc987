package rsp

import "testing"

func asmVUCompute(funct uint32, vs, vt, vd, element uint8) uint32 {
	return 0x12<<26 | 1<<25 | uint32(element)<<21 | uint32(vt)<<16 | uint32(vs)<<11 | uint32(vd)<<6 | funct
}

func asmVUMem(store bool, opsel, base, vt, del uint8, off7 int8) uint32 {
	major := uint32(0x32)
	if store {
		major = 0x3A
	}
	return major<<26 | uint32(base)<<21 | uint32(vt)<<16 | uint32(opsel)<<11 | uint32(del)<<7 | uint32(uint8(off7)&0x7F)
}

func TestVMULFSmoke(t *testing.T) {
	var s State
	s.VPR[1] = VReg{100, 0, 0, 0, 0, 0, 0, 0}
	s.VPR[2] = VReg{200, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 0, asmVUCompute(0x00, 1, 2, 3, 0)) // VMULF vd=3, vs=1, vt=2
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	// The +0x8000 VD rounding bias never reaches the accumulator (see the
	// vmulf seed test below), so ACC holds the unrounded doubled product.
	want := int64(100) * int64(200) * 2
	if s.ACC[0] != want {
		t.Errorf("ACC[0] = %d, want %d", s.ACC[0], want)
	}
	if s.VPR[3][0] == 0 {
		t.Error("VD lane 0 unexpectedly zero after VMULF of nonzero operands")
	}
}

// TestVMULFSeedValue pins spec.md §8's literal vmulf scenario: V0=V1=[0x4000,
// 0...], vmulf v2,v0,v1[e0] must leave V2<0>=0x2000, ACC_MD<0>=0x2000, and
// ACC_LO<0>=0x0000 — the last of which only holds if VMULF's rounding bias
// is applied when VD is extracted from ACC, not folded into ACC itself.
func TestVMULFSeedValue(t *testing.T) {
	var s State
	s.VPR[1] = VReg{0x4000, 0, 0, 0, 0, 0, 0, 0}
	s.VPR[2] = VReg{0x4000, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 0, asmVUCompute(0x00, 1, 2, 3, 0)) // VMULF vd=3, vs=1, vt=2
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.VPR[3][0] != 0x2000 {
		t.Errorf("V3<0> = 0x%04x, want 0x2000", s.VPR[3][0])
	}
	if accMD := uint16(s.ACC[0] >> 16); accMD != 0x2000 {
		t.Errorf("ACC_MD<0> = 0x%04x, want 0x2000", accMD)
	}
	if accLO := uint16(s.ACC[0]); accLO != 0x0000 {
		t.Errorf("ACC_LO<0> = 0x%04x, want 0x0000", accLO)
	}
}

// TestVRCPZero pins spec.md §8's VRCP(0) boundary case: a zero dividend
// reads back as the full 0xFFFFFFFF quotient, so VD sees 0xFFFF and DivOut
// sees the matching 0xFFFF high half.
func TestVRCPZero(t *testing.T) {
	var s State
	s.VPR[5] = VReg{0, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 0, asmVUCompute(0x30, 0, 5, 6, 0)) // VRCP vd=6, vt=5
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.VPR[6][0] != 0xFFFF {
		t.Errorf("V6<0> = 0x%04x, want 0xFFFF", s.VPR[6][0])
	}
	if s.DivOut != 0xFFFF {
		t.Errorf("DivOut = 0x%04x, want 0xFFFF", s.DivOut)
	}
}

// TestVRCPHThenVRCPL pins spec.md §8.4's literal VRCPH/VRCPL pairing:
// VRCPH(0x0002) stages DivIn and returns the previous DivOut, then
// VRCPL(0x0000) concatenates (DivIn<<16)|0x0000 and must produce V2<0> =
// 0x8000 with DivOut left at 0x0000 and DivInLoaded cleared.
func TestVRCPHThenVRCPL(t *testing.T) {
	var s State
	s.VPR[5] = VReg{0x0002, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 0, asmVUCompute(0x32, 0, 5, 10, 0)) // VRCPH vd=10, vt=5
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if !s.DivInLoaded {
		t.Fatal("expected DivInLoaded after VRCPH")
	}
	if s.DivIn != 0x0002 {
		t.Errorf("DivIn = 0x%04x, want 0x0002", s.DivIn)
	}

	s.VPR[6] = VReg{0x0000, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 4, asmVUCompute(0x31, 0, 6, 11, 0)) // VRCPL vd=11, vt=6
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.DivInLoaded {
		t.Error("expected DivInLoaded cleared after VRCPL consumes the latch")
	}
	if s.VPR[11][0] != 0x8000 {
		t.Errorf("V11<0> = 0x%04x, want 0x8000", s.VPR[11][0])
	}
	if s.DivOut != 0x0000 {
		t.Errorf("DivOut = 0x%04x, want 0x0000", s.DivOut)
	}
}

func TestLQVUnalignedPartialTransfer(t *testing.T) {
	var s State
	for i := 0; i < 32; i++ {
		s.DMEM[0x100+i] = byte(0x100 + i)
	}
	s.GPR[4] = 0x101 // base register holds unaligned address
	// LQV v1, 0($a0), del=0 -> opsel 0x04
	putWord(&s, 0, asmVUMem(false, 0x04, 4, 1, 0, 0))
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	got := s.VPR[1].toBytes()
	// ea=0x101, quadword boundary at 0x110, so 15 bytes transfer (0x101..0x10F)
	for i := 0; i < 15; i++ {
		if got[i] != s.DMEM[0x101+i] {
			t.Errorf("byte %d = 0x%02x, want 0x%02x", i, got[i], s.DMEM[0x101+i])
		}
	}
	if got[15] != 0 {
		t.Errorf("byte 15 should be untouched (zero), got 0x%02x", got[15])
	}
}

func TestLFVOffsetZero(t *testing.T) {
	var s State
	for i := 0; i < 16; i++ {
		s.DMEM[i] = byte(i + 1)
	}
	s.GPR[4] = 0
	putWord(&s, 0, asmVUMem(false, 0x09, 4, 1, 0, 0)) // LFV v1, 0($a0)
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.VPR[1][0] == 0 {
		t.Error("expected nonzero lane 0 after LFV with nonzero DMEM content")
	}
}

func TestVADDAccumulatesAndClamps(t *testing.T) {
	var s State
	s.VPR[1] = VReg{30000, 0, 0, 0, 0, 0, 0, 0}
	s.VPR[2] = VReg{30000, 0, 0, 0, 0, 0, 0, 0}
	putWord(&s, 0, asmVUCompute(0x10, 1, 2, 3, 0)) // VADD vd=3
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.VPR[3][0] != 32767 {
		t.Errorf("VADD overflow clamp: got %d, want 32767", int16(s.VPR[3][0]))
	}
	if accLO := uint16(s.ACC[0]); accLO != 0xEA60 {
		t.Errorf("ACC_LO<0> = 0x%04x, want 0xEA60 (unclamped sum 60000)", accLO)
	}
}
