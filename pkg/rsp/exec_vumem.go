package rsp

import "github.com/retrocore/rsp/pkg/inst"

// vuMemFunc implements one vector-memory transfer op against DMEM.
type vuMemFunc func(s *State, in inst.Instruction, ea uint32)

// vuMemHandlers is indexed by inst.Op, following the table-driven dispatch
// the vector-memory class uses instead of a one-off function per op,
// because the element/offset addressing modes are shared by pairs of
// load/store ops and a dense array keeps that sharing explicit.
var vuMemHandlers [inst.OpCodeCount]vuMemFunc

func init() {
	reg := func(op inst.Op, fn vuMemFunc) { vuMemHandlers[op] = fn }

	reg(inst.LBV, vuLoadScalar(1))
	reg(inst.SBV, vuStoreScalar(1))
	reg(inst.LSV, vuLoadScalar(2))
	reg(inst.SSV, vuStoreScalar(2))
	reg(inst.LLV, vuLoadScalar(4))
	reg(inst.SLV, vuStoreScalar(4))
	reg(inst.LDV, vuLoadScalar(8))
	reg(inst.SDV, vuStoreScalar(8))

	reg(inst.LQV, vuLoadQuad)
	reg(inst.SQV, vuStoreQuad)
	reg(inst.LRV, vuLoadRest)
	reg(inst.SRV, vuStoreRest)

	reg(inst.LPV, vuLoadPacked(false))
	reg(inst.SPV, vuStorePacked(false))
	reg(inst.LUV, vuLoadPacked(true))
	reg(inst.SUV, vuStorePacked(true))

	reg(inst.LHV, vuLoadHalf)
	reg(inst.SHV, vuStoreHalf)
	reg(inst.LFV, vuLoadFourth)
	reg(inst.SFV, vuStoreFourth)

	reg(inst.LTV, vuLoadTranspose)
	reg(inst.STV, vuStoreTranspose)
}

// execVUMem computes the effective address and dispatches through the
// handler table. ea is GPR[base] plus the pre-scaled offset; individual
// handlers apply their own per-byte addressing from there.
func (s *State) execVUMem(in inst.Instruction) {
	ea := uint32(int32(s.GPR[in.Base]) + in.Offset)
	if fn := vuMemHandlers[in.Op]; fn != nil {
		fn(s, in, ea)
	}
}

// vuLoadScalar/vuStoreScalar implement LBV/LSV/LLV/LDV and their stores:
// size contiguous bytes starting at element in.Del within VPR[vt], copied
// to/from DMEM starting at ea (itself already scaled by size via
// Instruction.Offset, per spec.md §4.3).
func vuLoadScalar(size int) vuMemFunc {
	return func(s *State, in inst.Instruction, ea uint32) {
		b := s.VPR[in.Vt&0x1F].toBytes()
		for i := 0; i < size; i++ {
			b[(int(in.Del)+i)&0xF] = s.ReadDMEMByte(ea + uint32(i))
		}
		s.VPR[in.Vt&0x1F] = vregFromBytes(b)
	}
}

func vuStoreScalar(size int) vuMemFunc {
	return func(s *State, in inst.Instruction, ea uint32) {
		b := s.VPR[in.Vt&0x1F].toBytes()
		for i := 0; i < size; i++ {
			s.WriteDMEMByte(ea+uint32(i), b[(int(in.Del)+i)&0xF])
		}
	}
}

// vuLoadQuad/vuStoreQuad (LQV/SQV) transfer from element Del up to the next
// 16-byte DMEM boundary, leaving the rest of the register untouched — the
// "partial" transfer spec.md §4.3 describes.
func vuLoadQuad(s *State, in inst.Instruction, ea uint32) {
	qwEnd := (ea &^ 0xF) + 16
	n := int(qwEnd - ea)
	if n > 16-int(in.Del) {
		n = 16 - int(in.Del)
	}
	b := s.VPR[in.Vt&0x1F].toBytes()
	for i := 0; i < n; i++ {
		b[(int(in.Del)+i)&0xF] = s.ReadDMEMByte(ea + uint32(i))
	}
	s.VPR[in.Vt&0x1F] = vregFromBytes(b)
}

func vuStoreQuad(s *State, in inst.Instruction, ea uint32) {
	qwEnd := (ea &^ 0xF) + 16
	n := int(qwEnd - ea)
	if n > 16-int(in.Del) {
		n = 16 - int(in.Del)
	}
	b := s.VPR[in.Vt&0x1F].toBytes()
	for i := 0; i < n; i++ {
		s.WriteDMEMByte(ea+uint32(i), b[(int(in.Del)+i)&0xF])
	}
}

// vuLoadRest/vuStoreRest (LRV/SRV) transfer the bytes LQV/SQV at the same
// address would have skipped: the DMEM bytes from the 16-byte boundary below
// ea up to (not including) ea, paired with the last ea mod 16 bytes of the
// register.
func vuLoadRest(s *State, in inst.Instruction, ea uint32) {
	qwStart := ea &^ 0xF
	n := int(ea - qwStart)
	skip := 16 - n
	b := s.VPR[in.Vt&0x1F].toBytes()
	for i := 0; i < n; i++ {
		b[(skip+i)&0xF] = s.ReadDMEMByte(qwStart + uint32(i))
	}
	s.VPR[in.Vt&0x1F] = vregFromBytes(b)
}

func vuStoreRest(s *State, in inst.Instruction, ea uint32) {
	qwStart := ea &^ 0xF
	n := int(ea - qwStart)
	skip := 16 - n
	b := s.VPR[in.Vt&0x1F].toBytes()
	for i := 0; i < n; i++ {
		s.WriteDMEMByte(qwStart+uint32(i), b[(skip+i)&0xF])
	}
}

// vuLoadPacked/vuStorePacked implement LPV/LUV (and their stores): 8 bytes
// from DMEM become the 8 lanes of VPR[vt], each scaled into a fixed-point
// value (<<8 for signed/LPV, <<7 for unsigned/LUV per the documented scale
// difference between the two).
func vuLoadPacked(unsigned bool) vuMemFunc {
	shift := uint(8)
	if unsigned {
		shift = 7
	}
	return func(s *State, in inst.Instruction, ea uint32) {
		var v VReg
		for lane := 0; lane < Lanes; lane++ {
			byteAddr := (ea &^ 0xF) + uint32((int(in.Del)+lane)&0xF)
			v[lane] = uint16(s.ReadDMEMByte(byteAddr)) << shift
		}
		s.VPR[in.Vt&0x1F] = v
	}
}

func vuStorePacked(unsigned bool) vuMemFunc {
	shift := uint(8)
	if unsigned {
		shift = 7
	}
	return func(s *State, in inst.Instruction, ea uint32) {
		v := s.VPR[in.Vt&0x1F]
		for lane := 0; lane < Lanes; lane++ {
			byteAddr := (ea &^ 0xF) + uint32((int(in.Del)+lane)&0xF)
			s.WriteDMEMByte(byteAddr, uint8(v[lane]>>shift))
		}
	}
}

// vuLoadHalf/vuStoreHalf (LHV/SHV) read/write every other byte starting at
// ea, spaced 2 bytes apart, into the 8 lanes scaled by <<7.
func vuLoadHalf(s *State, in inst.Instruction, ea uint32) {
	var v VReg
	base := ea &^ 0xF
	for lane := 0; lane < Lanes; lane++ {
		off := (int(ea&0xF) + int(in.Del) + lane*2) & 0xF
		v[lane] = uint16(s.ReadDMEMByte(base+uint32(off))) << 7
	}
	s.VPR[in.Vt&0x1F] = v
}

func vuStoreHalf(s *State, in inst.Instruction, ea uint32) {
	v := s.VPR[in.Vt&0x1F]
	base := ea &^ 0xF
	for lane := 0; lane < Lanes; lane++ {
		off := (int(ea&0xF) + int(in.Del) + lane*2) & 0xF
		s.WriteDMEMByte(base+uint32(off), uint8(v[lane]>>7))
	}
}

// vuLoadFourth/vuStoreFourth (LFV/SFV) implement the texture-coordinate
// transfer mode: 4 bytes per half of the register, each scaled by <<7. This
// is the least-documented transfer mode in the public record; the offset
// arithmetic here follows the commonly cited behavior but has not been
// checked against silicon and may need correction.
func vuLoadFourth(s *State, in inst.Instruction, ea uint32) {
	var v VReg
	base := ea &^ 0xF
	for i := 0; i < 4; i++ {
		off := (int(in.Del) + i) & 0xF
		v[i] = uint16(s.ReadDMEMByte(base+uint32(off))) << 7
		v[i+4] = uint16(s.ReadDMEMByte(base+uint32((off+8)&0xF))) << 7
	}
	s.VPR[in.Vt&0x1F] = v
}

func vuStoreFourth(s *State, in inst.Instruction, ea uint32) {
	v := s.VPR[in.Vt&0x1F]
	base := ea &^ 0xF
	for i := 0; i < 4; i++ {
		off := (int(in.Del) + i) & 0xF
		s.WriteDMEMByte(base+uint32(off), uint8(v[i]>>7))
		s.WriteDMEMByte(base+uint32((off+8)&0xF), uint8(v[i+4]>>7))
	}
}

// vuLoadTranspose/vuStoreTranspose (LTV/STV) move one diagonal of an 8x8
// matrix formed by 8 consecutive vector registers starting at a register
// index aligned to 8: register r (0-7 within the group) is touched at lane
// l = (diag+r) mod 8, where diag is element[3:1] of the instruction and the
// per-lane source byte offset within the 16-byte DMEM window is l*2 — the
// "(l-r) mod 8" diagonal spec.md §4.3 tables, solved for l given a fixed
// diag per instruction.
func vuLoadTranspose(s *State, in inst.Instruction, ea uint32) {
	base := ea &^ 0xF
	vtBase := in.Vt &^ 0x7
	diag := int(in.Del>>1) & 0x7
	for r := 0; r < Lanes; r++ {
		l := (diag + r) % Lanes
		reg := (vtBase + uint8(r)) & 0x1F
		b := s.VPR[reg].toBytes()
		off := (l * 2) & 0xF
		b[off] = s.ReadDMEMByte(base + uint32(off))
		b[(off+1)&0xF] = s.ReadDMEMByte(base + uint32((off+1)&0xF))
		s.VPR[reg] = vregFromBytes(b)
	}
}

func vuStoreTranspose(s *State, in inst.Instruction, ea uint32) {
	base := ea &^ 0xF
	vtBase := in.Vt &^ 0x7
	diag := int(in.Del>>1) & 0x7
	for r := 0; r < Lanes; r++ {
		l := (diag + r) % Lanes
		reg := (vtBase + uint8(r)) & 0x1F
		b := s.VPR[reg].toBytes()
		off := (l * 2) & 0xF
		s.WriteDMEMByte(base+uint32(off), b[off])
		s.WriteDMEMByte(base+uint32((off+1)&0xF), b[(off+1)&0xF])
	}
}
